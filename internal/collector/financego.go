package collector

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"TrendScope/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the finance-go chart iterator.
type FinanceGoFetcher struct {
	now   func() time.Time
	query func(params *chart.Params) ([]finance.ChartBar, error)
}

// NewFinanceGoFetcher creates a fetcher backed by finance-go.
func NewFinanceGoFetcher() *FinanceGoFetcher {
	return &FinanceGoFetcher{now: time.Now, query: queryChart}
}

func (f *FinanceGoFetcher) Name() string { return "financego" }

func queryChart(params *chart.Params) ([]finance.ChartBar, error) {
	iter := chart.Get(params)
	var bars []finance.ChartBar
	for iter.Next() {
		bars = append(bars, *iter.Bar())
	}
	return bars, iter.Err()
}

// FetchSeries loads daily bars between now minus the period span and now.
// The finance-go client has no context support, so cancellation is only
// checked before the call.
func (f *FinanceGoFetcher) FetchSeries(ctx context.Context, symbol string, period model.Period) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: %v", model.ErrSourceUnavailable, err)
	}
	end := f.now()
	start := end.AddDate(0, 0, -period.Days(end))
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	bars, err := f.query(params)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: finance-go %s: %v", model.ErrSourceUnavailable, symbol, err)
	}

	records := make([]model.PriceRecord, 0, len(bars))
	for _, b := range bars {
		open, _ := b.Open.Float64()
		high, _ := b.High.Float64()
		low, _ := b.Low.Float64()
		closePrice, _ := b.Close.Float64()
		records = append(records, model.PriceRecord{
			Date:   dayOf(time.Unix(int64(b.Timestamp), 0).UTC()),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: int64(b.Volume),
		})
	}
	return newSeries(symbol, period, records, end)
}
