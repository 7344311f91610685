// Package runlog is the run bookkeeping: in-memory statistics for the
// end-of-run summary and a SQLite event log for post-hoc analysis. Both
// are fire-and-forget observers; their failures never abort generation.
package runlog

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fiilgen/internal/llm"
)

// Stats accumulates per-run counters. It implements llm.CallRecorder so it
// can sit in the provider decorator chain, and it is safe for concurrent
// use even though the generator is single-threaded today.
type Stats struct {
	mu         sync.Mutex
	started    time.Time
	generated  int
	skipped    int
	failed     int
	calls      int
	callErrors int
	perModel   map[string]*modelUsage
	perVerb    map[string]int
}

type modelUsage struct {
	calls            int
	promptTokens     int
	completionTokens int
}

// NewStats starts a fresh counter set.
func NewStats() *Stats {
	return &Stats{
		started:  time.Now(),
		perModel: map[string]*modelUsage{},
		perVerb:  map[string]int{},
	}
}

// RecordCall tallies one provider call, successful or not.
func (s *Stats) RecordCall(model string, promptTokens, completionTokens int, _ time.Duration, callErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if callErr != nil {
		s.callErrors++
	}
	mu := s.perModel[model]
	if mu == nil {
		mu = &modelUsage{}
		s.perModel[model] = mu
	}
	mu.calls++
	mu.promptTokens += promptTokens
	mu.completionTokens += completionTokens
}

// RecordUnit tallies a processed unit: generated on success, failed when
// the unit was given up on (validation exhausted, persistence rejected).
func (s *Stats) RecordUnit(verb string, generated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generated {
		s.generated++
		s.perVerb[verb]++
	} else {
		s.failed++
	}
}

// RecordSkipped tallies a unit whose output already existed on disk.
func (s *Stats) RecordSkipped(verb string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped++
}

// ModelStat is per-model usage for the summary.
type ModelStat struct {
	Model            string
	Calls            int
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
	Priced           bool
}

// Summary is a consistent snapshot of the counters.
type Summary struct {
	Duration         time.Duration
	Generated        int
	Skipped          int
	Failed           int
	Calls            int
	CallErrors       int
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
	FullyPriced      bool
	VerbsCompleted   int
	PerModel         []ModelStat
}

// Snapshot captures the current totals plus a cost estimate from the
// pricing table. Models without a known price leave FullyPriced false.
func (s *Stats) Snapshot() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Summary{
		Duration:       time.Since(s.started),
		Generated:      s.generated,
		Skipped:        s.skipped,
		Failed:         s.failed,
		Calls:          s.calls,
		CallErrors:     s.callErrors,
		FullyPriced:    true,
		VerbsCompleted: len(s.perVerb),
	}
	for model, mu := range s.perModel {
		stat := ModelStat{
			Model:            model,
			Calls:            mu.calls,
			PromptTokens:     mu.promptTokens,
			CompletionTokens: mu.completionTokens,
		}
		if cost := llm.LookupCost(model); cost != nil {
			stat.CostUSD = cost.Cost(mu.promptTokens, mu.completionTokens)
			stat.Priced = true
			out.CostUSD += stat.CostUSD
		} else {
			out.FullyPriced = false
		}
		out.PromptTokens += mu.promptTokens
		out.CompletionTokens += mu.completionTokens
		out.PerModel = append(out.PerModel, stat)
	}
	sort.Slice(out.PerModel, func(i, j int) bool { return out.PerModel[i].Model < out.PerModel[j].Model })
	return out
}

// String renders the end-of-run summary block.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run finished in %s\n", s.Duration.Round(time.Second))
	fmt.Fprintf(&b, "units: %d generated, %d skipped, %d failed (%d verbs)\n",
		s.Generated, s.Skipped, s.Failed, s.VerbsCompleted)
	fmt.Fprintf(&b, "calls: %d total, %d errored\n", s.Calls, s.CallErrors)
	fmt.Fprintf(&b, "tokens: %d prompt + %d completion = %d\n",
		s.PromptTokens, s.CompletionTokens, s.PromptTokens+s.CompletionTokens)
	for _, m := range s.PerModel {
		fmt.Fprintf(&b, "  %s: %d calls, %d/%d tokens", m.Model, m.Calls, m.PromptTokens, m.CompletionTokens)
		if m.Priced {
			fmt.Fprintf(&b, ", $%.4f", m.CostUSD)
		}
		b.WriteString("\n")
	}
	if s.FullyPriced {
		fmt.Fprintf(&b, "estimated cost: $%.4f", s.CostUSD)
	} else {
		fmt.Fprintf(&b, "estimated cost: $%.4f (some models unpriced)", s.CostUSD)
	}
	return b.String()
}
