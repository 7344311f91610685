package runlog

import (
	"time"

	"fiilgen/internal/llm"
)

// Tee fans one call record out to several recorders, so the in-memory
// stats and the event log can both sit behind the provider chain.
func Tee(recs ...llm.CallRecorder) llm.CallRecorder {
	return teeRecorder(recs)
}

type teeRecorder []llm.CallRecorder

func (t teeRecorder) RecordCall(model string, promptTokens, completionTokens int, duration time.Duration, callErr error) {
	for _, r := range t {
		r.RecordCall(model, promptTokens, completionTokens, duration, callErr)
	}
}
