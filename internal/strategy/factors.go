package strategy

import (
	"fmt"

	"github.com/guregu/null/v6"

	"TrendScope/internal/model"
)

// rsiThreshold separates bullish from bearish momentum.
const rsiThreshold = 50.0

// greater builds a condition a > b. Missing inputs make it fail with an "n/a" commentary.
func greater(name string, a, b null.Float, aLabel, bLabel string) model.Condition {
	if !a.Valid || !b.Valid {
		return model.Condition{Name: name, Met: false, Commentary: "n/a"}
	}
	return model.Condition{
		Name:       name,
		Met:        a.Float64 > b.Float64,
		Commentary: fmt.Sprintf("%s=%.2f %s=%.2f", aLabel, a.Float64, bLabel, b.Float64),
	}
}

func scoreRSI(row *model.IndicatorRow) model.Condition {
	return greater("RSI>50", row.RSI, null.FloatFrom(rsiThreshold), "RSI", "threshold")
}

func scoreMACD(row *model.IndicatorRow) model.Condition {
	return greater("MACD>Signal", row.MACD, row.Signal, "MACD", "Signal")
}

func scoreMiddleBand(row *model.IndicatorRow) model.Condition {
	return greater("Close>MiddleBand", null.FloatFrom(row.Close), row.MiddleBand, "Close", "Middle")
}

// scoreMACross is the bull alignment check of the moving averages.
func scoreMACross(row *model.IndicatorRow) model.Condition {
	return greater("SMA20>SMA50", row.SMA20, row.SMA50, "SMA20", "SMA50")
}
