package model

import "github.com/guregu/null/v6"

// IndicatorRow is one PriceRecord plus its derived indicator fields.
// A derived field is invalid (null) until its window is filled.
type IndicatorRow struct {
	PriceRecord

	SMA20      null.Float `json:"sma_20"`
	SMA50      null.Float `json:"sma_50"`
	RSI        null.Float `json:"rsi"`
	EMA12      null.Float `json:"ema_12"`
	EMA26      null.Float `json:"ema_26"`
	MACD       null.Float `json:"macd"`
	Signal     null.Float `json:"signal_line"`
	MiddleBand null.Float `json:"middle_band"`
	UpperBand  null.Float `json:"upper_band"`
	LowerBand  null.Float `json:"lower_band"`
	StochK     null.Float `json:"stoch_k"`
	StochD     null.Float `json:"stoch_d"`
	ATR        null.Float `json:"atr"`

	Trend Trend `json:"trend"`
}

// AugmentedSeries has the same length and order as the PriceSeries it was derived from.
type AugmentedSeries []IndicatorRow

// Last returns the final row, or nil for an empty series.
func (s AugmentedSeries) Last() *IndicatorRow {
	if len(s) == 0 {
		return nil
	}
	return &s[len(s)-1]
}

// Column names a derived indicator field.
type Column string

const (
	ColSMA20      Column = "sma_20"
	ColSMA50      Column = "sma_50"
	ColRSI        Column = "rsi"
	ColEMA12      Column = "ema_12"
	ColEMA26      Column = "ema_26"
	ColMACD       Column = "macd"
	ColSignal     Column = "signal_line"
	ColMiddleBand Column = "middle_band"
	ColUpperBand  Column = "upper_band"
	ColLowerBand  Column = "lower_band"
	ColStochK     Column = "stoch_k"
	ColStochD     Column = "stoch_d"
	ColATR        Column = "atr"
)

// Columns lists every derived column in display order.
var Columns = []Column{
	ColSMA20, ColSMA50, ColRSI, ColEMA12, ColEMA26, ColMACD, ColSignal,
	ColMiddleBand, ColUpperBand, ColLowerBand, ColStochK, ColStochD, ColATR,
}

// Value returns the derived field named by c.
func (r *IndicatorRow) Value(c Column) null.Float {
	switch c {
	case ColSMA20:
		return r.SMA20
	case ColSMA50:
		return r.SMA50
	case ColRSI:
		return r.RSI
	case ColEMA12:
		return r.EMA12
	case ColEMA26:
		return r.EMA26
	case ColMACD:
		return r.MACD
	case ColSignal:
		return r.Signal
	case ColMiddleBand:
		return r.MiddleBand
	case ColUpperBand:
		return r.UpperBand
	case ColLowerBand:
		return r.LowerBand
	case ColStochK:
		return r.StochK
	case ColStochD:
		return r.StochD
	case ColATR:
		return r.ATR
	default:
		return null.Float{}
	}
}
