package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/verbs"
)

// ConsolidatedMetadata describes the merged corpus.
type ConsolidatedMetadata struct {
	TotalVerbs    int      `json:"total_verbs"`
	Verbs         []string `json:"verbs"`
	TotalExamples int      `json:"total_examples"`
}

// Consolidated is the single-file corpus merging every per-combination
// file for the selected verbs.
type Consolidated struct {
	Metadata ConsolidatedMetadata         `json:"metadata"`
	Examples []examplegen.TrainingExample `json:"examples"`
}

// Consolidate merges the persisted examples of the given verbs into one
// JSON file at outPath. A verb with no folder contributes nothing; that is
// reported through the logger, not an error, since partial runs are
// normal.
func Consolidate(root string, list []verbs.Verb, outPath string, logger *zap.Logger) (*Consolidated, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := &Consolidated{
		Metadata: ConsolidatedMetadata{TotalVerbs: len(list)},
		Examples: []examplegen.TrainingExample{},
	}
	for _, v := range list {
		out.Metadata.Verbs = append(out.Metadata.Verbs, v.English)

		files, err := filepath.Glob(filepath.Join(root, FolderName(v.English), "*.json"))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			logger.Warn("no examples for verb", zap.String("verb", v.English))
			continue
		}
		sort.Strings(files)
		for _, path := range files {
			ex, err := readExample(path)
			if err != nil {
				logger.Warn("skipping unreadable example", zap.String("path", path), zap.Error(err))
				continue
			}
			out.Examples = append(out.Examples, *ex)
		}
	}
	out.Metadata.TotalExamples = len(out.Examples)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(outPath, out); err != nil {
		return nil, err
	}

	logger.Info("consolidated corpus written",
		zap.Int("verbs", out.Metadata.TotalVerbs),
		zap.Int("examples", out.Metadata.TotalExamples),
		zap.String("path", outPath))
	return out, nil
}
