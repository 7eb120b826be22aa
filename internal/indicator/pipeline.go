package indicator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
)

// Window lengths of the standard indicator set.
const (
	smaFastPeriod   = 20
	smaSlowPeriod   = 50
	rsiPeriod       = 14
	emaFastSpan     = 12
	emaSlowSpan     = 26
	signalSpan      = 9
	bollingerPeriod = 20
	bollingerWidth  = 2.0
	stochPeriod     = 14
	stochSmoothing  = 3
	atrPeriod       = 14
)

// Pipeline turns a PriceSeries into an AugmentedSeries.
// It holds no per-invocation state and is safe for concurrent use.
type Pipeline struct {
	Policy strategy.Policy
}

// NewPipeline creates a Pipeline labelling rows with the given trend policy.
func NewPipeline(policy strategy.Policy) *Pipeline {
	if policy == "" {
		policy = strategy.DefaultPolicy
	}
	return &Pipeline{Policy: policy}
}

// Run computes every indicator column and the per-row trend label.
// It fails with model.ErrNoData for an empty series and with
// model.ErrInsufficientData when some column has no value on any row.
func (p *Pipeline) Run(series model.PriceSeries) (model.AugmentedSeries, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w for %s", model.ErrNoData, series.Symbol)
	}
	rows := p.compute(series.Records)
	if col, ok := undefinedColumn(rows); ok {
		return nil, fmt.Errorf("%w: %s has no %s value in %d rows",
			model.ErrInsufficientData, series.Symbol, col, len(rows))
	}
	return rows, nil
}

// compute materialises all columns first and only then labels each row
// from values already present on that row.
func (p *Pipeline) compute(records []model.PriceRecord) model.AugmentedSeries {
	n := len(records)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	for i, r := range records {
		high[i], low[i], closes[i] = r.High, r.Low, r.Close
	}

	sma20 := SMA(closes, smaFastPeriod)
	sma50 := SMA(closes, smaSlowPeriod)
	rsi := RSI(closes, rsiPeriod)
	macd := MACD(closes, emaFastSpan, emaSlowSpan, signalSpan)
	middle, upper, lower := Bollinger(closes, bollingerPeriod, bollingerWidth)
	stochK, stochD := Stochastic(high, low, closes, stochPeriod, stochSmoothing)
	atr := ATR(high, low, closes, atrPeriod)

	rows := make(model.AugmentedSeries, n)
	for i, r := range records {
		rows[i] = model.IndicatorRow{
			PriceRecord: r,
			SMA20:       sma20[i],
			SMA50:       sma50[i],
			RSI:         rsi[i],
			EMA12:       null.FloatFrom(macd.FastEMA[i]),
			EMA26:       null.FloatFrom(macd.SlowEMA[i]),
			MACD:        null.FloatFrom(macd.MACD[i]),
			Signal:      null.FloatFrom(macd.Signal[i]),
			MiddleBand:  middle[i],
			UpperBand:   upper[i],
			LowerBand:   lower[i],
			StochK:      stochK[i],
			StochD:      stochD[i],
			ATR:         atr[i],
		}
	}
	for i := range rows {
		rows[i].Trend = strategy.Classify(p.Policy, &rows[i])
	}
	return rows
}

// undefinedColumn reports the first column that is missing on every row.
func undefinedColumn(rows model.AugmentedSeries) (model.Column, bool) {
	for _, col := range model.Columns {
		seen := false
		for i := range rows {
			if rows[i].Value(col).Valid {
				seen = true
				break
			}
		}
		if !seen {
			return col, true
		}
	}
	return "", false
}
