package collector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"TrendScope/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, period model.Period) (model.PriceSeries, error)
	Name() string
}

// tradingDays estimates how many daily bars a period spans.
func tradingDays(p model.Period, now time.Time) int {
	return p.Days(now)*5/7 + 1
}

// dayOf truncates t to its calendar date in UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validRecord(r model.PriceRecord) bool {
	for _, v := range []float64{r.Open, r.High, r.Low, r.Close} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.Volume >= 0 && !r.Date.IsZero()
}

// normalize drops unusable bars, sorts ascending by date and keeps the last
// bar seen for each date.
func normalize(records []model.PriceRecord) []model.PriceRecord {
	out := make([]model.PriceRecord, 0, len(records))
	for _, r := range records {
		if validRecord(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	deduped := out[:0]
	for i, r := range out {
		if i+1 < len(out) && out[i+1].Date.Equal(r.Date) {
			continue
		}
		deduped = append(deduped, r)
	}
	return deduped
}

// newSeries wraps normalized records; an empty result is ErrNoData.
func newSeries(symbol string, period model.Period, records []model.PriceRecord, now time.Time) (model.PriceSeries, error) {
	records = normalize(records)
	if len(records) == 0 {
		return model.PriceSeries{}, fmt.Errorf("%w for %s (%s)", model.ErrNoData, symbol, period)
	}
	return model.PriceSeries{
		Symbol:    symbol,
		Period:    period,
		Records:   records,
		FetchedAt: now,
	}, nil
}
