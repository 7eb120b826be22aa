package strategy

import (
	"fmt"
	"strings"

	"TrendScope/internal/model"
)

// Policy selects the rule that turns a row's indicators into a trend label.
type Policy string

// PolicyMomentum requires RSI > 50, MACD > Signal and close > middle band.
// PolicyMACross is the legacy rule SMA20 > SMA50.
const (
	PolicyMomentum Policy = "momentum"
	PolicyMACross  Policy = "ma_cross"
)

// DefaultPolicy labels rows when no policy is configured.
const DefaultPolicy = PolicyMomentum

// ParsePolicy validates a configured policy name. An empty name yields DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPolicy, nil
	case PolicyMomentum, PolicyMACross:
		return p, nil
	default:
		return "", fmt.Errorf("unknown trend policy %q (want %q or %q)", s, PolicyMomentum, PolicyMACross)
	}
}

// conditions returns the checks a policy applies to a row.
func conditions(policy Policy, row *model.IndicatorRow) []model.Condition {
	if policy == PolicyMACross {
		return []model.Condition{scoreMACross(row)}
	}
	return []model.Condition{
		scoreRSI(row),
		scoreMACD(row),
		scoreMiddleBand(row),
	}
}

// Evaluate computes the trend verdict for one row together with the conditions behind it.
// The row is Uptrend only when every condition holds; a condition whose inputs
// are missing never holds.
func Evaluate(policy Policy, row *model.IndicatorRow) model.TrendSignal {
	if policy == "" {
		policy = DefaultPolicy
	}
	conds := conditions(policy, row)
	trend := model.Uptrend
	for _, c := range conds {
		if !c.Met {
			trend = model.Downtrend
			break
		}
	}
	return model.TrendSignal{
		Policy:     string(policy),
		Trend:      trend,
		Conditions: conds,
	}
}

// Classify returns only the trend label of Evaluate.
func Classify(policy Policy, row *model.IndicatorRow) model.Trend {
	return Evaluate(policy, row).Trend
}
