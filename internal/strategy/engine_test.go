package strategy

import (
	"testing"

	"github.com/guregu/null/v6"

	"TrendScope/internal/model"
)

func bullishRow() *model.IndicatorRow {
	return &model.IndicatorRow{
		PriceRecord: model.PriceRecord{Close: 105},
		SMA20:       null.FloatFrom(102),
		SMA50:       null.FloatFrom(98),
		RSI:         null.FloatFrom(62),
		MACD:        null.FloatFrom(1.4),
		Signal:      null.FloatFrom(0.9),
		MiddleBand:  null.FloatFrom(102),
	}
}

func TestEvaluate_MomentumUptrend(t *testing.T) {
	sig := Evaluate(PolicyMomentum, bullishRow())
	if sig.Trend != model.Uptrend {
		t.Fatalf("expected Uptrend, got %s", sig.Trend)
	}
	if len(sig.Conditions) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(sig.Conditions))
	}
	for _, c := range sig.Conditions {
		if !c.Met {
			t.Errorf("condition %s should hold: %s", c.Name, c.Commentary)
		}
	}
}

func TestEvaluate_MomentumEachConditionRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.IndicatorRow)
	}{
		{"rsi at threshold", func(r *model.IndicatorRow) { r.RSI = null.FloatFrom(50) }},
		{"rsi below", func(r *model.IndicatorRow) { r.RSI = null.FloatFrom(35) }},
		{"macd equals signal", func(r *model.IndicatorRow) { r.Signal = r.MACD }},
		{"macd below signal", func(r *model.IndicatorRow) { r.MACD = null.FloatFrom(0.1) }},
		{"close below middle", func(r *model.IndicatorRow) { r.Close = 100 }},
		{"close on middle", func(r *model.IndicatorRow) { r.Close = 102 }},
	}
	for _, tt := range tests {
		row := bullishRow()
		tt.mutate(row)
		if got := Classify(PolicyMomentum, row); got != model.Downtrend {
			t.Errorf("%s: expected Downtrend, got %s", tt.name, got)
		}
	}
}

func TestEvaluate_MissingFieldsAreDowntrend(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.IndicatorRow)
	}{
		{"rsi missing", func(r *model.IndicatorRow) { r.RSI = null.Float{} }},
		{"signal missing", func(r *model.IndicatorRow) { r.Signal = null.Float{} }},
		{"middle band missing", func(r *model.IndicatorRow) { r.MiddleBand = null.Float{} }},
	}
	for _, tt := range tests {
		row := bullishRow()
		tt.mutate(row)
		sig := Evaluate(PolicyMomentum, row)
		if sig.Trend != model.Downtrend {
			t.Errorf("%s: expected Downtrend, got %s", tt.name, sig.Trend)
		}
		var sawNA bool
		for _, c := range sig.Conditions {
			if c.Commentary == "n/a" {
				sawNA = true
			}
		}
		if !sawNA {
			t.Errorf("%s: expected an n/a condition", tt.name)
		}
	}

	if got := Classify(PolicyMomentum, &model.IndicatorRow{}); got != model.Downtrend {
		t.Errorf("empty row: expected Downtrend, got %s", got)
	}
}

func TestEvaluate_LegacyMACross(t *testing.T) {
	row := bullishRow()
	row.RSI = null.FloatFrom(10) // ignored by the legacy rule
	sig := Evaluate(PolicyMACross, row)
	if sig.Trend != model.Uptrend {
		t.Errorf("expected Uptrend for SMA20 > SMA50, got %s", sig.Trend)
	}
	if len(sig.Conditions) != 1 || sig.Conditions[0].Name != "SMA20>SMA50" {
		t.Errorf("unexpected conditions: %+v", sig.Conditions)
	}

	row.SMA50 = null.Float{}
	if got := Classify(PolicyMACross, row); got != model.Downtrend {
		t.Errorf("missing SMA50: expected Downtrend, got %s", got)
	}
}

func TestEvaluate_EmptyPolicyUsesDefault(t *testing.T) {
	sig := Evaluate("", bullishRow())
	if sig.Policy != string(DefaultPolicy) {
		t.Errorf("expected policy %q, got %q", DefaultPolicy, sig.Policy)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyMomentum, false},
		{"momentum", PolicyMomentum, false},
		{" MA_CROSS ", PolicyMACross, false},
		{"sma", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
