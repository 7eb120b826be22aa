package notifier

import (
	"fmt"
	"html"
	"strings"

	"TrendScope/internal/model"
	"TrendScope/internal/report"
)

// indicatorLabels are the display names of the summary indicators.
var indicatorLabels = map[model.Column]string{
	model.ColSMA20:      "MA20",
	model.ColSMA50:      "MA50",
	model.ColRSI:        "RSI(14)",
	model.ColEMA12:      "EMA12",
	model.ColEMA26:      "EMA26",
	model.ColMACD:       "MACD",
	model.ColSignal:     "Signal",
	model.ColMiddleBand: "BB middle",
	model.ColUpperBand:  "BB upper",
	model.ColLowerBand:  "BB lower",
	model.ColStochK:     "%K",
	model.ColStochD:     "%D",
	model.ColATR:        "ATR(14)",
}

// FormatAnalysis formats an analysis summary into a Telegram HTML message.
func FormatAnalysis(a *model.Analysis) string {
	s := a.Summary
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s Metrics</b> | %s (%s, %d rows)\n\n",
		html.EscapeString(s.Symbol), s.Date.Format("2006-01-02"), a.Period, len(a.Series)))

	arrow := "▲"
	if s.PriceChange.IsNegative() {
		arrow = "▼"
	}
	b.WriteString(fmt.Sprintf("Current price: %.2f\n", s.CurrentPrice))
	b.WriteString(fmt.Sprintf("Change: %s %s (%s%%)\n\n", arrow, s.PriceChange.StringFixed(2), s.PercentChange.StringFixed(2)))

	b.WriteString("📈 <b>Indicators:</b>\n")
	for _, col := range model.Columns {
		b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(indicatorLabels[col]), report.FormatIndicator(s.Indicator(col))))
	}

	icon := "🔻"
	if s.Prediction == model.Uptrend {
		icon = "🚀"
	}
	b.WriteString(fmt.Sprintf("\n%s <b>Prediction:</b> %s (%s)\n", icon, s.Prediction, s.Signal.Policy))
	for _, c := range s.Signal.Conditions {
		mark := "✗"
		if c.Met {
			mark = "✓"
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", mark, html.EscapeString(c.Name), html.EscapeString(c.Commentary)))
	}
	return b.String()
}

// FormatError formats a failed analysis without exposing internal details.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(symbol), report.UserMessage(err))
}
