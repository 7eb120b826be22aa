package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"TrendScope/internal/model"
)

// BarsAPIFetcher implements Fetcher using a generic daily-bars REST API.
type BarsAPIFetcher struct {
	client *resty.Client
	now    func() time.Time
}

// NewBarsAPIFetcher creates a new fetcher with optional proxy support.
func NewBarsAPIFetcher(baseURL, apiKey, proxyURL string) *BarsAPIFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BarsAPIFetcher{client: client, now: time.Now}
}

func (f *BarsAPIFetcher) Name() string { return "barsapi" }

// apiBar is the expected JSON shape of one bar.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *BarsAPIFetcher) FetchSeries(ctx context.Context, symbol string, period model.Period) (model.PriceSeries, error) {
	now := f.now()
	var bars []apiBar
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"limit":  strconv.Itoa(tradingDays(period, now)),
		}).
		SetResult(&bars).
		Get("/api/v1/bars/daily")
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: fetch bars: %v", model.ErrSourceUnavailable, err)
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return model.PriceSeries{}, fmt.Errorf("%w for %s", model.ErrNoData, symbol)
	case resp.StatusCode() != http.StatusOK:
		return model.PriceSeries{}, fmt.Errorf("%w: fetch bars: status %d, body: %s",
			model.ErrSourceUnavailable, resp.StatusCode(), resp.String())
	}

	records := make([]model.PriceRecord, len(bars))
	for i, b := range bars {
		records[i] = model.PriceRecord{
			Date:   dayOf(time.Unix(b.Timestamp, 0).UTC()),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		}
	}
	return newSeries(symbol, period, records, now)
}
