package report

import (
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
)

// displayPlaces is the rounding applied to every figure of a summary.
const displayPlaces = 2

// Summarize extracts the metrics of the last two rows of an augmented series.
// Each figure is rounded half away from zero to two decimals; indicator values
// missing on the last row stay invalid. policy must be the one that labelled the
// series, otherwise the explained signal would contradict the prediction.
func Summarize(symbol string, series model.AugmentedSeries, policy strategy.Policy) (*model.Summary, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: %s has %d rows", model.ErrInsufficientHistory, symbol, len(series))
	}
	last := series.Last()
	prev := series[len(series)-2]
	if prev.Close <= 0 {
		return nil, fmt.Errorf("%w: previous close of %s is %v", model.ErrInsufficientHistory, symbol, prev.Close)
	}

	signal := strategy.Evaluate(policy, last)
	if signal.Trend != last.Trend {
		return nil, fmt.Errorf("summarize %s: %s policy gives %s but the series is labelled %s",
			symbol, signal.Policy, signal.Trend, last.Trend)
	}

	latest := decimal.NewFromFloat(last.Close)
	previous := decimal.NewFromFloat(prev.Close)
	change := latest.Sub(previous)

	s := &model.Summary{
		Symbol:        symbol,
		Date:          last.Date,
		CurrentPrice:  last.Close,
		PreviousClose: prev.Close,
		PriceChange:   change.Round(displayPlaces),
		PercentChange: change.Div(previous).Mul(decimal.NewFromInt(100)).Round(displayPlaces),
		Indicators:    make(map[model.Column]decimal.NullDecimal, len(model.Columns)),
		Prediction:    last.Trend,
		Signal:        signal,
	}
	for _, col := range model.Columns {
		s.Indicators[col] = roundNull(last.Value(col))
	}
	return s, nil
}

func roundNull(v null.Float) decimal.NullDecimal {
	if !v.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v.Float64).Round(displayPlaces), Valid: true}
}

// FormatIndicator renders an indicator value with two decimals, or "n/a".
func FormatIndicator(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.StringFixed(displayPlaces)
}
