package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"fiilgen/internal/examplegen"
)

// VerbSummary is one row of the lightweight main index.
type VerbSummary struct {
	Rank           int    `json:"rank"`
	VerbEnglish    string `json:"verb_english"`
	VerbRussian    string `json:"verb_russian"`
	VerbInfinitive string `json:"verb_infinitive"`
	FolderName     string `json:"folder_name"`
}

// VerbsIndex is the main navigation index: all verbs with persisted
// examples, sorted by frequency rank.
type VerbsIndex struct {
	TotalVerbs int           `json:"total_verbs"`
	Verbs      []VerbSummary `json:"verbs"`
}

// IndexEntry points at one persisted example file.
type IndexEntry struct {
	Tense    string `json:"tense"`
	Pronoun  string `json:"pronoun"`
	Polarity string `json:"polarity"`
	FilePath string `json:"file_path"`
}

// VerbIndex is the per-verb detailed index, loaded on demand by consumers.
type VerbIndex struct {
	VerbEnglish    string       `json:"verb_english"`
	VerbRussian    string       `json:"verb_russian"`
	VerbInfinitive string       `json:"verb_infinitive"`
	VerbRank       int          `json:"verb_rank"`
	FolderName     string       `json:"folder_name"`
	Examples       []IndexEntry `json:"examples"`
}

// BuildIndexes scans the dataset tree and writes the two-tier navigation
// structure under indexDir: verbs_index.json plus one
// verb_indexes/{folder}.json per verb. Unreadable files are logged and
// skipped; example metadata comes from the file contents, not the file
// name, since the contents are authoritative.
func BuildIndexes(root, indexDir string, logger *zap.Logger) (*VerbsIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}

	main := &VerbsIndex{}
	perVerb := map[string]*VerbIndex{}

	for _, dir := range entries {
		if !dir.IsDir() {
			continue
		}
		index, err := scanVerbFolder(root, dir.Name(), logger)
		if err != nil {
			return nil, err
		}
		if len(index.Examples) == 0 {
			continue
		}
		main.Verbs = append(main.Verbs, VerbSummary{
			Rank:           index.VerbRank,
			VerbEnglish:    index.VerbEnglish,
			VerbRussian:    index.VerbRussian,
			VerbInfinitive: index.VerbInfinitive,
			FolderName:     index.FolderName,
		})
		perVerb[dir.Name()] = index
	}

	sort.Slice(main.Verbs, func(i, j int) bool { return main.Verbs[i].Rank < main.Verbs[j].Rank })
	main.TotalVerbs = len(main.Verbs)

	if err := os.MkdirAll(filepath.Join(indexDir, "verb_indexes"), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	if err := writeJSON(filepath.Join(indexDir, "verbs_index.json"), main); err != nil {
		return nil, err
	}
	for folder, index := range perVerb {
		if err := writeJSON(filepath.Join(indexDir, "verb_indexes", folder+".json"), index); err != nil {
			return nil, err
		}
	}

	logger.Info("navigation indexes written",
		zap.Int("verbs", main.TotalVerbs),
		zap.String("dir", indexDir))
	return main, nil
}

func scanVerbFolder(root, folder string, logger *zap.Logger) (*VerbIndex, error) {
	index := &VerbIndex{FolderName: folder}

	files, err := filepath.Glob(filepath.Join(root, folder, "*.json"))
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		ex, err := readExample(path)
		if err != nil {
			logger.Warn("skipping unreadable example", zap.String("path", path), zap.Error(err))
			continue
		}
		if index.VerbEnglish == "" {
			index.VerbRank = ex.VerbRank
			index.VerbEnglish = ex.VerbEnglish
			index.VerbRussian = ex.VerbRussian
			index.VerbInfinitive = ex.VerbInfinitive
		}
		pronoun := string(ex.TurkishVerb.PersonalPronoun)
		if pronoun == "" {
			pronoun = "none"
		}
		index.Examples = append(index.Examples, IndexEntry{
			Tense:    string(ex.TurkishVerb.VerbTense),
			Pronoun:  pronoun,
			Polarity: string(ex.TurkishVerb.Polarity),
			FilePath: filepath.Join(folder, filepath.Base(path)),
		})
	}

	sort.Slice(index.Examples, func(i, j int) bool {
		a, b := index.Examples[i], index.Examples[j]
		if a.Tense != b.Tense {
			return a.Tense < b.Tense
		}
		if a.Polarity != b.Polarity {
			return a.Polarity < b.Polarity
		}
		return a.Pronoun < b.Pronoun
	})
	return index, nil
}

func readExample(path string) (*examplegen.TrainingExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ex examplegen.TrainingExample
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
