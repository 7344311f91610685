package dataset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/verbs"
)

func olmakExample() *examplegen.TrainingExample {
	return &examplegen.TrainingExample{
		VerbRank:       1,
		VerbEnglish:    "to be",
		VerbRussian:    "быть",
		VerbInfinitive: "olmak",
		TurkishVerb: examplegen.TurkishVerbForm{
			VerbFull:        "oluyorum",
			Root:            "ol",
			TenseAffix:      "uyor",
			VerbTense:       grammar.SimdikiZaman,
			PersonalPronoun: grammar.Ben,
			PersonalAffix:   "um",
			Polarity:        grammar.Positive,
		},
		LanguageLevel:                   grammar.A1,
		EnglishExampleSentence:          "I am becoming happy.",
		RussianExampleSentence:          "Я становлюсь счастливым.",
		TurkishExampleSentence:          "Ben mutlu oluyorum.",
		TurkishExampleSentenceWithBlank: "Ben mutlu ______.",
		GeneratedByModel:                "claude-haiku-4-5",
		GeneratedAt:                     "2026-03-01T12:00:00Z",
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "ben_olmak_şimdiki_zaman.json",
		FileName(grammar.Ben, "olmak", grammar.SimdikiZaman, grammar.Positive))
	assert.Equal(t, "ben_olmak_şimdiki_zaman_olumsuz.json",
		FileName(grammar.Ben, "olmak", grammar.SimdikiZaman, grammar.Negative))
	assert.Equal(t, "none_yapmak_sıfat_fiil.json",
		FileName("", "yapmak", grammar.SifatFiil, grammar.Positive))
	assert.Equal(t, "ben_fark_etmek_şimdiki_zaman.json",
		FileName(grammar.Ben, "fark etmek", grammar.SimdikiZaman, grammar.Positive))
}

func TestFolderName(t *testing.T) {
	assert.Equal(t, "be", FolderName("to be"))
	assert.Equal(t, "give_up", FolderName("to give up"))
	assert.Equal(t, "think", FolderName("think"))
	assert.Equal(t, "be_able_to", FolderName("to be able to"))
}

func TestStoreSaveAndExists(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	path, err := store.Save(olmakExample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Root(), "be", "ben_olmak_şimdiki_zaman.json"), path)

	got, err := readExample(path)
	require.NoError(t, err)
	assert.Equal(t, "oluyorum", got.TurkishVerb.VerbFull)
	assert.Equal(t, "claude-haiku-4-5", got.GeneratedByModel)

	form, _ := grammar.FormFor(grammar.SimdikiZaman)
	unit := examplegen.Unit{
		Verb:     verbs.Verb{Rank: 1, English: "to be", Russian: "быть", Turkish: "olmak"},
		Form:     form,
		Pronoun:  grammar.Ben,
		Polarity: grammar.Positive,
	}
	assert.True(t, store.Exists(unit), "saved unit must be detected for skip-existing")

	unit.Polarity = grammar.Negative
	assert.False(t, store.Exists(unit), "negative variant was not saved")
}

func TestStoreSaveRejectsInconsistent(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	ex := olmakExample()
	ex.TurkishExampleSentence = "Bugün hava çok güzel."
	_, err := store.Save(ex)

	var perr *PersistenceValidationError
	require.ErrorAs(t, err, &perr)

	entries, _ := os.ReadDir(store.Root())
	assert.Empty(t, entries, "nothing may be written on rejection")
}

func TestStoreSaveRejectsPolarityMismatch(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	ex := olmakExample()
	ex.TurkishVerb.Polarity = grammar.Negative

	_, err := store.Save(ex)
	var perr *PersistenceValidationError
	require.True(t, errors.As(err, &perr))
}

func TestStoreExistsBatchNeedsAllPairs(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	_, err := store.Save(olmakExample())
	require.NoError(t, err)

	form, _ := grammar.FormFor(grammar.SimdikiZaman)
	unit := examplegen.Unit{
		Verb:  verbs.Verb{Rank: 1, English: "to be", Russian: "быть", Turkish: "olmak"},
		Form:  form,
		Batch: true,
	}
	assert.False(t, store.Exists(unit), "one of twelve files is not a complete batch")
}

func saveVariant(t *testing.T, store *Store, pronoun grammar.Pronoun, polarity grammar.Polarity) {
	t.Helper()
	ex := olmakExample()
	ex.TurkishVerb.PersonalPronoun = pronoun
	if polarity == grammar.Negative {
		ex.TurkishVerb.Polarity = grammar.Negative
		ex.TurkishVerb.NegativeAffix = "mu"
		ex.TurkishVerb.VerbFull = "olmuyorum"
		ex.TurkishExampleSentence = "Ben mutlu olmuyorum."
		ex.TurkishExampleSentenceWithBlank = "Ben mutlu ______."
	}
	_, err := store.Save(ex)
	require.NoError(t, err)
}

func TestBuildIndexes(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	saveVariant(t, store, grammar.Ben, grammar.Positive)
	saveVariant(t, store, grammar.Ben, grammar.Negative)
	saveVariant(t, store, grammar.Sen, grammar.Positive)

	indexDir := t.TempDir()
	main, err := BuildIndexes(store.Root(), indexDir, nil)
	require.NoError(t, err)

	require.Equal(t, 1, main.TotalVerbs)
	assert.Equal(t, "be", main.Verbs[0].FolderName)
	assert.Equal(t, "olmak", main.Verbs[0].VerbInfinitive)

	assert.FileExists(t, filepath.Join(indexDir, "verbs_index.json"))

	var verbIndex VerbIndex
	data, err := os.ReadFile(filepath.Join(indexDir, "verb_indexes", "be.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &verbIndex))
	require.Len(t, verbIndex.Examples, 3)

	// Sorted by tense, polarity, pronoun.
	assert.Equal(t, "negative", verbIndex.Examples[0].Polarity)
	assert.Equal(t, "ben", verbIndex.Examples[1].Pronoun)
	assert.Equal(t, "sen", verbIndex.Examples[2].Pronoun)
	assert.Equal(t, filepath.Join("be", "ben_olmak_şimdiki_zaman.json"), verbIndex.Examples[1].FilePath)
}

func TestConsolidate(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	saveVariant(t, store, grammar.Ben, grammar.Positive)
	saveVariant(t, store, grammar.Ben, grammar.Negative)

	list := []verbs.Verb{
		{Rank: 1, English: "to be", Russian: "быть", Turkish: "olmak"},
		{Rank: 2, English: "to do", Russian: "делать", Turkish: "yapmak"}, // nothing saved
	}
	outPath := filepath.Join(t.TempDir(), "consolidated.json")
	got, err := Consolidate(store.Root(), list, outPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Metadata.TotalVerbs)
	assert.Equal(t, []string{"to be", "to do"}, got.Metadata.Verbs)
	assert.Equal(t, 2, got.Metadata.TotalExamples)
	assert.FileExists(t, outPath)
}

func TestValidateFiles(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	saveVariant(t, store, grammar.Ben, grammar.Positive)

	// Plant a file that bypassed the save-time gate.
	bad := olmakExample()
	bad.TurkishVerb.PersonalPronoun = grammar.Sen
	bad.TurkishExampleSentenceWithBlank = ""
	path := filepath.Join(store.Root(), "be", "sen_olmak_şimdiki_zaman.json")
	require.NoError(t, writeJSON(path, bad))

	report, err := ValidateFiles(store.Root())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 1, report.TotalErrors)
	require.Len(t, report.ErrorsByType["BLANK_MISSING"], 1)
	assert.Contains(t, report.Summary(), "BLANK_MISSING=1")
}
