package collector

import (
	"context"
	"math"
	"time"

	"TrendScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Records []model.PriceRecord
	Err     error
	Now     func() time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, period model.Period) (model.PriceSeries, error) {
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	records := m.Records
	if records == nil {
		records = generateMockBars(m.Price, tradingDays(period, now), now)
	}
	return newSeries(symbol, period, records, now)
}

// generateMockBars produces a gently rising series with a cyclical component
// so that every oscillator has a non-degenerate range.
func generateMockBars(basePrice float64, count int, now time.Time) []model.PriceRecord {
	if basePrice <= 0 {
		basePrice = 100
	}
	end := dayOf(now)
	bars := make([]model.PriceRecord, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.03*math.Sin(float64(i)/6))
		bars[i] = model.PriceRecord{
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
