package recorder

import (
	"time"

	"TrendScope/internal/model"
)

// AnalysisEvent holds the outcome of one analysis request.
type AnalysisEvent struct {
	Source   string
	Symbol   string
	Period   model.Period
	Rows     int
	Trend    model.Trend // empty unless the analysis succeeded
	Duration time.Duration
	Outcome  string // "ok", "no_data", "insufficient_data", ...
}

// Recorder observes analysis requests.
type Recorder interface {
	RecordAnalysis(evt *AnalysisEvent) error
	Close() error
}
