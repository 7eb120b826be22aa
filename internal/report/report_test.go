package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
)

func row(day int, close float64) model.IndicatorRow {
	return model.IndicatorRow{
		PriceRecord: model.PriceRecord{
			Date:  time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Open:  close - 0.5,
			High:  close + 1,
			Low:   close - 1,
			Close: close,
		},
		Trend: model.Downtrend,
	}
}

func TestSummarize_PriceChange(t *testing.T) {
	series := model.AugmentedSeries{row(1, 100), row(2, 105)}
	s, err := Summarize("AAPL", series, strategy.PolicyMomentum)
	require.NoError(t, err)

	assert.Equal(t, "5.00", s.PriceChange.StringFixed(2))
	assert.Equal(t, "5.00", s.PercentChange.StringFixed(2))
	assert.Equal(t, 105.0, s.CurrentPrice)
	assert.Equal(t, 100.0, s.PreviousClose)
	assert.Equal(t, series[1].Date, s.Date)
	assert.Equal(t, model.Downtrend, s.Prediction)
}

func TestSummarize_RoundsIndependently(t *testing.T) {
	series := model.AugmentedSeries{row(1, 300), row(2, 297.125)}
	series[1].RSI = null.FloatFrom(63.456)
	series[1].MACD = null.FloatFrom(-1.005)
	series[1].ATR = null.FloatFrom(2.5)

	s, err := Summarize("MSFT", series, strategy.PolicyMomentum)
	require.NoError(t, err)

	assert.True(t, s.PriceChange.Equal(decimal.RequireFromString("-2.88")), "got %s", s.PriceChange)
	assert.True(t, s.PercentChange.Equal(decimal.RequireFromString("-0.96")), "got %s", s.PercentChange)
	assert.Equal(t, "63.46", FormatIndicator(s.Indicator(model.ColRSI)))
	assert.Equal(t, "-1.01", FormatIndicator(s.Indicator(model.ColMACD)))
	assert.Equal(t, "2.50", FormatIndicator(s.Indicator(model.ColATR)))
	assert.False(t, s.Indicator(model.ColSMA50).Valid)
	assert.Equal(t, "n/a", FormatIndicator(s.Indicator(model.ColSMA50)))
	assert.Len(t, s.Indicators, len(model.Columns))
	assert.Equal(t, model.Downtrend, s.Prediction)
}

func TestSummarize_ExplainsVerdict(t *testing.T) {
	series := model.AugmentedSeries{row(1, 100), row(2, 105)}
	series[1].RSI = null.FloatFrom(70)
	series[1].MACD = null.FloatFrom(2)
	series[1].Signal = null.FloatFrom(1)
	series[1].MiddleBand = null.FloatFrom(101)
	series[1].Trend = model.Uptrend

	s, err := Summarize("AAPL", series, strategy.PolicyMomentum)
	require.NoError(t, err)
	assert.Equal(t, string(strategy.PolicyMomentum), s.Signal.Policy)
	assert.Equal(t, model.Uptrend, s.Signal.Trend)
	assert.Equal(t, s.Prediction, s.Signal.Trend)
	assert.Len(t, s.Signal.Conditions, 3)
}

func TestSummarize_RejectsPolicyOtherThanTheLabellingOne(t *testing.T) {
	series := model.AugmentedSeries{row(1, 100), row(2, 105)}
	series[1].RSI = null.FloatFrom(70)
	series[1].MACD = null.FloatFrom(2)
	series[1].Signal = null.FloatFrom(1)
	series[1].MiddleBand = null.FloatFrom(101)
	series[1].SMA20 = null.FloatFrom(99)
	series[1].SMA50 = null.FloatFrom(100)
	series[1].Trend = model.Uptrend

	_, err := Summarize("AAPL", series, strategy.PolicyMACross)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ma_cross")

	s, err := Summarize("AAPL", series, strategy.PolicyMomentum)
	require.NoError(t, err)
	assert.Equal(t, model.Uptrend, s.Prediction)
}

func TestSummarize_NeedsTwoRows(t *testing.T) {
	_, err := Summarize("AAPL", model.AugmentedSeries{row(1, 100)}, "")
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)

	_, err = Summarize("AAPL", nil, "")
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestSummary_JSONKeepsMissingAsNull(t *testing.T) {
	series := model.AugmentedSeries{row(1, 100), row(2, 101)}
	series[1].SMA20 = null.FloatFrom(100.333)
	s, err := Summarize("IBM", series, "")
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	var decoded struct {
		Indicators map[string]*string `json:"indicators"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Indicators["sma_20"])
	assert.Equal(t, "100.33", *decoded.Indicators["sma_20"])
	assert.Nil(t, decoded.Indicators["sma_50"])
}

func TestBuildChart_Layout(t *testing.T) {
	series := model.AugmentedSeries{row(1, 100), row(2, 101), row(3, 102)}
	series[2].SMA20 = null.FloatFrom(101)
	before := append(model.AugmentedSeries(nil), series...)

	c := BuildChart("AAPL", series)
	assert.Equal(t, "AAPL Stock Price Analysis", c.Title)
	assert.Equal(t, "Date", c.XAxis)
	assert.Equal(t, "Price (USD)", c.YAxis)
	assert.Equal(t, "plotly_dark", c.Template)
	require.Len(t, c.Traces, len(model.Columns)+1)

	candle := c.Traces[0]
	assert.Equal(t, "candlestick", candle.Type)
	assert.Equal(t, []float64{100, 101, 102}, candle.Close)
	assert.Len(t, candle.X, 3)

	seen := map[string]bool{}
	for _, tr := range c.Traces[1:] {
		assert.Equal(t, "scatter", tr.Type)
		assert.Len(t, tr.Y, 3)
		seen[tr.Name] = true
	}
	assert.True(t, seen["20 Day MA"])
	assert.True(t, seen["Signal Line"])

	sma := c.Traces[1]
	assert.Equal(t, "20 Day MA", sma.Name)
	assert.False(t, sma.Y[0].Valid)
	assert.True(t, sma.Y[2].Valid)
	assert.Equal(t, before, series, "chart building must not mutate the series")
}

func TestBuildChart_PanelsCoverOscillators(t *testing.T) {
	c := BuildChart("X", model.AugmentedSeries{row(1, 10)})
	panels := map[string]int{}
	for _, tr := range c.Traces {
		panels[tr.Panel]++
	}
	assert.Equal(t, 8, panels[PanelPrice])
	assert.Equal(t, 1, panels[PanelRSI])
	assert.Equal(t, 2, panels[PanelMACD])
	assert.Equal(t, 2, panels[PanelStochastic])
	assert.Equal(t, 1, panels[PanelATR])
}

func TestUserMessageAndOutcome(t *testing.T) {
	tests := []struct {
		err     error
		msg     string
		outcome string
	}{
		{nil, "", "ok"},
		{fmt.Errorf("fetch: %w", model.ErrNoData), "No data found for the given symbol.", "no_data"},
		{fmt.Errorf("run: %w", model.ErrInsufficientData), "Insufficient data for analysis.", "insufficient_data"},
		{model.ErrInsufficientHistory, "Insufficient data for analysis.", "insufficient_data"},
		{fmt.Errorf("%w: timeout", model.ErrSourceUnavailable), "Error fetching data. Please try again later.", "source_unavailable"},
		{model.ErrInvalidSymbol, "Please enter a valid ticker symbol.", "invalid_input"},
		{errors.New("dial tcp 10.0.0.1:443: secret detail"), "Something went wrong while analysing the symbol.", "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.msg, UserMessage(tt.err), "%v", tt.err)
		assert.Equal(t, tt.outcome, Outcome(tt.err), "%v", tt.err)
	}
	assert.NotContains(t, UserMessage(errors.New("secret detail")), "secret")
}
