package report

import (
	"time"

	"github.com/guregu/null/v6"

	"TrendScope/internal/model"
)

// Panels group traces that share a y axis.
const (
	PanelPrice      = "price"
	PanelRSI        = "rsi"
	PanelMACD       = "macd"
	PanelStochastic = "stochastic"
	PanelATR        = "atr"
)

// Chart is a renderer-neutral description of the analysis figure.
type Chart struct {
	Title    string  `json:"title"`
	XAxis    string  `json:"xaxis_title"`
	YAxis    string  `json:"yaxis_title"`
	Template string  `json:"template"`
	Traces   []Trace `json:"traces"`
}

// Trace is either a candlestick (OHLC set) or a line overlay (Y set).
type Trace struct {
	Name  string       `json:"name"`
	Type  string       `json:"type"`
	Panel string       `json:"panel"`
	Color string       `json:"color,omitempty"`
	Dash  string       `json:"dash,omitempty"`
	X     []time.Time  `json:"x"`
	Open  []float64    `json:"open,omitempty"`
	High  []float64    `json:"high,omitempty"`
	Low   []float64    `json:"low,omitempty"`
	Close []float64    `json:"close,omitempty"`
	Y     []null.Float `json:"y,omitempty"`
}

type overlay struct {
	col   model.Column
	name  string
	panel string
	color string
	dash  string
}

var overlays = []overlay{
	{model.ColSMA20, "20 Day MA", PanelPrice, "blue", ""},
	{model.ColSMA50, "50 Day MA", PanelPrice, "red", ""},
	{model.ColEMA12, "12 Day EMA", PanelPrice, "cyan", "dot"},
	{model.ColEMA26, "26 Day EMA", PanelPrice, "magenta", "dot"},
	{model.ColMiddleBand, "Middle Bollinger Band", PanelPrice, "grey", ""},
	{model.ColUpperBand, "Upper Bollinger Band", PanelPrice, "grey", "dash"},
	{model.ColLowerBand, "Lower Bollinger Band", PanelPrice, "grey", "dash"},
	{model.ColRSI, "RSI", PanelRSI, "purple", ""},
	{model.ColMACD, "MACD", PanelMACD, "orange", ""},
	{model.ColSignal, "Signal Line", PanelMACD, "green", ""},
	{model.ColStochK, "%K", PanelStochastic, "yellow", ""},
	{model.ColStochD, "%D", PanelStochastic, "white", "dash"},
	{model.ColATR, "ATR", PanelATR, "brown", ""},
}

// BuildChart describes a candlestick of the series with one overlay per
// indicator column. Missing points stay null.
func BuildChart(symbol string, series model.AugmentedSeries) *Chart {
	n := len(series)
	x := make([]time.Time, n)
	candle := Trace{
		Name:  "Candlestick",
		Type:  "candlestick",
		Panel: PanelPrice,
		X:     x,
		Open:  make([]float64, n),
		High:  make([]float64, n),
		Low:   make([]float64, n),
		Close: make([]float64, n),
	}
	for i := range series {
		r := &series[i]
		x[i] = r.Date
		candle.Open[i], candle.High[i], candle.Low[i], candle.Close[i] = r.Open, r.High, r.Low, r.Close
	}

	c := &Chart{
		Title:    symbol + " Stock Price Analysis",
		XAxis:    "Date",
		YAxis:    "Price (USD)",
		Template: "plotly_dark",
		Traces:   make([]Trace, 0, len(overlays)+1),
	}
	c.Traces = append(c.Traces, candle)
	for _, o := range overlays {
		y := make([]null.Float, n)
		for i := range series {
			y[i] = series[i].Value(o.col)
		}
		c.Traces = append(c.Traces, Trace{
			Name:  o.name,
			Type:  "scatter",
			Panel: o.panel,
			Color: o.color,
			Dash:  o.dash,
			X:     x,
			Y:     y,
		})
	}
	return c
}
