package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the metrics view of the last rows of an AugmentedSeries.
type Summary struct {
	Symbol        string                         `json:"symbol"`
	Date          time.Time                      `json:"date"`
	CurrentPrice  float64                        `json:"current_price"`
	PreviousClose float64                        `json:"previous_close"`
	PriceChange   decimal.Decimal                `json:"price_change"`
	PercentChange decimal.Decimal                `json:"percent_change"`
	Indicators    map[Column]decimal.NullDecimal `json:"indicators"`
	Prediction    Trend                          `json:"prediction"`
	Signal        TrendSignal                    `json:"signal"`
}

// Indicator returns the rounded last-row value of c.
func (s *Summary) Indicator(c Column) decimal.NullDecimal {
	return s.Indicators[c]
}

// Analysis is the complete result of one request.
type Analysis struct {
	Symbol  string
	Period  Period
	Source  string
	Series  AugmentedSeries
	Summary *Summary
}
