package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"TrendScope/internal/model"
)

// DefaultYahooURL is the public Yahoo Finance API host.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance v8 chart API.
type YahooFetcher struct {
	client    *resty.Client
	limiter   *rate.Limiter
	now       func() time.Time
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a Yahoo fetcher. An empty baseURL uses the public
// API, and requestsPerSecond <= 0 disables throttling.
func NewYahooFetcher(baseURL, proxyURL string, requestsPerSecond float64) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}

	f := &YahooFetcher{
		client: client,
		now:    time.Now,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
	if requestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return f
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// FetchSeries downloads daily bars for the period. Yahoo accepts the period
// names verbatim as its range parameter.
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol string, period model.Period) (model.PriceSeries, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return model.PriceSeries{}, fmt.Errorf("%w: yahoo throttle: %v", model.ErrSourceUnavailable, err)
		}
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("symbol", f.yahooSymbol(symbol)).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    period.String(),
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%w: yahoo fetch: %v", model.ErrSourceUnavailable, err)
	}

	records, err := parseYahooChart(resp.StatusCode(), resp.Body())
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("%s: %w", symbol, err)
	}
	return newSeries(symbol, period, records, f.now())
}

// parseYahooChart decodes a chart response body. Bars with a null field
// (holidays, halted sessions) are skipped.
func parseYahooChart(status int, body []byte) ([]model.PriceRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: yahoo: status %d, undecodable body", model.ErrSourceUnavailable, status)
	}
	if apiErr := gjson.GetBytes(body, "chart.error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		if apiErr.Get("code").String() == "Not Found" {
			return nil, fmt.Errorf("%w: %s", model.ErrNoData, apiErr.Get("description").String())
		}
		return nil, fmt.Errorf("%w: yahoo api error: %s", model.ErrSourceUnavailable, apiErr.Get("description").String())
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo: status %d", model.ErrSourceUnavailable, status)
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, nil
	}
	offset := result.Get("meta.gmtoffset").Int()
	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	field := func(arr []gjson.Result, i int) (gjson.Result, bool) {
		if i >= len(arr) || arr[i].Type == gjson.Null {
			return gjson.Result{}, false
		}
		return arr[i], true
	}

	records := make([]model.PriceRecord, 0, len(timestamps))
	for i, ts := range timestamps {
		o, ok1 := field(opens, i)
		h, ok2 := field(highs, i)
		l, ok3 := field(lows, i)
		c, ok4 := field(closes, i)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		var volume int64
		if v, ok := field(volumes, i); ok {
			volume = v.Int()
		}
		records = append(records, model.PriceRecord{
			Date:   dayOf(time.Unix(ts.Int()+offset, 0).UTC()),
			Open:   o.Float(),
			High:   h.Float(),
			Low:    l.Float(),
			Close:  c.Float(),
			Volume: volume,
		})
	}
	return records, nil
}
