package grammar

import "testing"

func TestExpectedPairs_Full(t *testing.T) {
	pairs := ExpectedPairs(SimdikiZaman)
	if len(pairs) != 12 {
		t.Fatalf("expected 12 pairs for a full-category tense, got %d", len(pairs))
	}
	seen := map[PronounPolarity]bool{}
	for _, p := range pairs {
		if p.Pronoun == "" {
			t.Errorf("full-category pair has empty pronoun: %v", p)
		}
		if seen[p] {
			t.Errorf("duplicate pair %v", p)
		}
		seen[p] = true
	}
}

func TestExpectedPairs_Imperative(t *testing.T) {
	pairs := ExpectedPairs(EmirKipi)
	if len(pairs) != 8 {
		t.Fatalf("expected 8 pairs for imperative, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.Pronoun == Ben || p.Pronoun == Biz {
			t.Errorf("imperative must not include first person, got %v", p)
		}
	}
}

func TestExpectedPairs_None(t *testing.T) {
	pairs := ExpectedPairs(SifatFiil)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs for impersonal tense, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.Pronoun != "" {
			t.Errorf("impersonal pair must have empty pronoun, got %v", p)
		}
	}
}

func TestLevelAtMost(t *testing.T) {
	if !A1.AtMost(A2) {
		t.Error("A1 should be at most A2")
	}
	if B2.AtMost(B1) {
		t.Error("B2 should not be at most B1")
	}
	if !B1.AtMost(B1) {
		t.Error("a level should be at most itself")
	}
}

func TestFormFor_AllTensesPresent(t *testing.T) {
	for _, f := range Forms {
		got, ok := FormFor(f.Tense)
		if !ok {
			t.Fatalf("FormFor(%s) not found", f.Tense)
		}
		if got != f {
			t.Errorf("FormFor(%s) = %+v, want %+v", f.Tense, got, f)
		}
	}
	if _, ok := FormFor(Tense("yok_böyle_zaman")); ok {
		t.Error("unknown tense should not resolve")
	}
}

func TestPronounPolarityString(t *testing.T) {
	p := PronounPolarity{Pronoun: Ben, Polarity: Negative}
	if p.String() != "(ben, negative)" {
		t.Errorf("got %q", p.String())
	}
	n := PronounPolarity{Polarity: Positive}
	if n.String() != "(none, positive)" {
		t.Errorf("got %q", n.String())
	}
}
