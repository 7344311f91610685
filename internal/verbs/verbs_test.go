package verbs

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `Rank; English; Russian; Turkish
1; to be; быть; olmak
2; to do; делать; yapmak
3; to go; идти; gitmek
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbs.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 verbs, got %d", len(got))
	}
	want := Verb{Rank: 1, English: "to be", Russian: "быть", Turkish: "olmak"}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbs.csv")
	if err := os.WriteFile(path, []byte("Rank;English\n1;to be\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestLoad_BadRank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbs.csv")
	if err := os.WriteFile(path, []byte("Rank;English;Russian;Turkish\nx;to be;быть;olmak\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-numeric rank")
	}
}
