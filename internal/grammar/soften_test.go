package grammar

import "testing"

func TestSoften(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"git", "gid"},
		{"yap", "yab"},
		{"aç", "ac"},
		{"bırak", "bırağ"},
		{"ol", ""},  // l does not soften
		{"gel", ""}, // l does not soften
		{"", ""},
	}
	for _, tt := range tests {
		if got := Soften(tt.root); got != tt.want {
			t.Errorf("Soften(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}

func TestContainsVerbForm(t *testing.T) {
	// Full form present.
	if !ContainsVerbForm("Ben mutlu oluyorum.", "ol", "oluyorum") {
		t.Error("full form should match")
	}
	// Softened root: git -> gid in "gidiyorum".
	if !ContainsVerbForm("Okula gidiyorum.", "git", "gitiyorum") {
		t.Error("softened root should match")
	}
	// Case-insensitive.
	if !ContainsVerbForm("OLUYORUM ben.", "ol", "oluyorum") {
		t.Error("match should be case-insensitive")
	}
	// Neither root nor full form present.
	if ContainsVerbForm("Kedi uyuyor.", "git", "gidiyorum") {
		t.Error("unrelated sentence should not match")
	}
}
