package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"TrendScope/internal/indicator"
	"TrendScope/internal/model"
	"TrendScope/internal/recorder"
	"TrendScope/internal/report"
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	Pipeline *indicator.Pipeline
	Recorder recorder.Recorder
}

// NewCollector creates a new Collector. A nil recorder records nothing.
func NewCollector(fetcher Fetcher, pipeline *indicator.Pipeline, rec recorder.Recorder) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Fetcher: fetcher, Pipeline: pipeline, Recorder: rec}
}

// Analyze runs one request end to end: sanitize, fetch, compute, summarize.
// Failures are terminal and wrap the model error taxonomy.
func (c *Collector) Analyze(ctx context.Context, rawSymbol string, period model.Period) (*model.Analysis, error) {
	start := time.Now()
	evt := &recorder.AnalysisEvent{
		Source: c.Fetcher.Name(),
		Symbol: rawSymbol,
		Period: period,
	}

	analysis, err := c.analyze(ctx, rawSymbol, period, evt)
	evt.Duration = time.Since(start)
	evt.Outcome = report.Outcome(err)
	if err != nil {
		log.Printf("[WARN] analysis of %s (%s) via %s failed: %v", rawSymbol, period, evt.Source, err)
	} else {
		log.Printf("[INFO] analysis of %s (%s) via %s: %d rows, %s", evt.Symbol, period, evt.Source, evt.Rows, evt.Trend)
	}
	if recErr := c.Recorder.RecordAnalysis(evt); recErr != nil {
		log.Printf("[WARN] record analysis event: %v", recErr)
	}
	return analysis, err
}

func (c *Collector) analyze(ctx context.Context, rawSymbol string, period model.Period, evt *recorder.AnalysisEvent) (*model.Analysis, error) {
	symbol, err := SanitizeSymbol(rawSymbol)
	if err != nil {
		return nil, err
	}
	evt.Symbol = symbol
	if period == "" {
		period = model.DefaultPeriod
		evt.Period = period
	}
	if _, err := model.ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	series, err := c.Fetcher.FetchSeries(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	evt.Rows = series.Len()

	rows, err := c.Pipeline.Run(series)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}
	summary, err := report.Summarize(symbol, rows, c.Pipeline.Policy)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	evt.Trend = summary.Prediction

	return &model.Analysis{
		Symbol:  symbol,
		Period:  period,
		Source:  c.Fetcher.Name(),
		Series:  rows,
		Summary: summary,
	}, nil
}
