package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fiilgen/internal/examplegen"
	"fiilgen/internal/grammar"
	"fiilgen/internal/verbs"
)

// FileError is one finding of the offline validation pass.
type FileError struct {
	File     string `json:"file"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Report groups offline validation findings by error type.
type Report struct {
	TotalFiles   int                    `json:"total_files"`
	TotalErrors  int                    `json:"total_errors"`
	ErrorsByType map[string][]FileError `json:"errors_by_type"`
}

// ValidateFiles re-runs the domain checks over every persisted example
// under root and returns a grouped report. Findings never stop the scan;
// an unreadable file becomes a PARSE_ERROR entry.
func ValidateFiles(root string) (*Report, error) {
	report := &Report{ErrorsByType: map[string][]FileError{}}

	files, err := filepath.Glob(filepath.Join(root, "*", "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	for _, path := range files {
		report.TotalFiles++
		name := filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))

		ex, err := readExample(path)
		if err != nil {
			report.add(FileError{File: name, Type: "PARSE_ERROR", Severity: "ERROR", Message: err.Error()})
			continue
		}
		for _, fe := range checkExample(ex) {
			fe.File = name
			report.add(fe)
		}
	}
	return report, nil
}

// WriteReport saves the report as indented JSON.
func (r *Report) WriteReport(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return writeJSON(path, r)
}

// Summary renders a one-line overview for the CLI.
func (r *Report) Summary() string {
	if r.TotalErrors == 0 {
		return fmt.Sprintf("%d files validated, no problems found", r.TotalFiles)
	}
	types := make([]string, 0, len(r.ErrorsByType))
	for t, errs := range r.ErrorsByType {
		types = append(types, fmt.Sprintf("%s=%d", t, len(errs)))
	}
	sort.Strings(types)
	return fmt.Sprintf("%d files validated, %d problems (%s)", r.TotalFiles, r.TotalErrors, strings.Join(types, ", "))
}

func (r *Report) add(fe FileError) {
	r.ErrorsByType[fe.Type] = append(r.ErrorsByType[fe.Type], fe)
	r.TotalErrors++
}

// checkExample runs the persisted-data checks: polarity/affix agreement,
// verb presence, blank placeholder, and affix reconstruction. The
// reconstruction finding is a warning; vowel harmony produces legitimate
// forms the simple concatenation rule cannot cover.
func checkExample(ex *examplegen.TrainingExample) []FileError {
	var out []FileError
	unit := unitFor(ex)

	if verr := (examplegen.AffixAgreementValidator{}).Validate(ex, unit); verr != nil {
		out = append(out, FileError{Type: "POLARITY_MISMATCH", Severity: "ERROR", Message: verr.Message})
	}
	if verr := (examplegen.VerbPresenceValidator{}).Validate(ex, unit); verr != nil {
		out = append(out, FileError{Type: "VERB_ROOT_MISMATCH", Severity: "ERROR", Message: verr.Message})
	}
	if verr := (examplegen.ReconstructionValidator{}).Validate(ex, unit); verr != nil {
		out = append(out, FileError{Type: "VERB_CONSTRUCTION", Severity: "WARNING", Message: verr.Message})
	}

	blank := ex.TurkishExampleSentenceWithBlank
	switch {
	case blank == "":
		out = append(out, FileError{Type: "BLANK_MISSING", Severity: "ERROR", Message: "missing turkish_example_sentence_with_blank"})
	case !strings.Contains(blank, "___"):
		out = append(out, FileError{Type: "BLANK_MISSING", Severity: "ERROR", Message: fmt.Sprintf("no blank placeholder in %q", blank)})
	case blank == ex.TurkishExampleSentence:
		out = append(out, FileError{Type: "BLANK_MISSING", Severity: "ERROR", Message: fmt.Sprintf("blank sentence identical to full sentence: %q", blank)})
	}
	return out
}

func unitFor(ex *examplegen.TrainingExample) examplegen.Unit {
	form, _ := grammar.FormFor(ex.TurkishVerb.VerbTense)
	return examplegen.Unit{
		Verb:     verbs.Verb{Rank: ex.VerbRank, English: ex.VerbEnglish, Russian: ex.VerbRussian, Turkish: ex.VerbInfinitive},
		Form:     form,
		Pronoun:  ex.TurkishVerb.PersonalPronoun,
		Polarity: ex.TurkishVerb.Polarity,
	}
}
