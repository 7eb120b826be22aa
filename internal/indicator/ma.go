package indicator

import "github.com/guregu/null/v6"

// SMA computes the simple moving average of values over the specified period.
// Rows before index period-1 are missing.
func SMA(values []float64, period int) []null.Float {
	return rollingMean(defined(values), period)
}

// EMA computes the recursive exponential moving average with alpha = 2/(span+1).
// It is seeded with the first value and defined from the first row on;
// no bias correction is applied.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDResult holds the moving-average convergence/divergence columns.
type MACDResult struct {
	FastEMA []float64
	SlowEMA []float64
	MACD    []float64
	Signal  []float64
}

// MACD computes EMA(fast) - EMA(slow) and its EMA(signal) smoothing.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	res := MACDResult{
		FastEMA: EMA(closes, fast),
		SlowEMA: EMA(closes, slow),
		MACD:    make([]float64, len(closes)),
	}
	for i := range closes {
		res.MACD[i] = res.FastEMA[i] - res.SlowEMA[i]
	}
	res.Signal = EMA(res.MACD, signal)
	return res
}

// Bollinger returns the middle (SMA), upper and lower bands, the outer bands
// sitting width population standard deviations away from the middle.
func Bollinger(closes []float64, period int, width float64) (middle, upper, lower []null.Float) {
	middle = SMA(closes, period)
	std := rollingStd(closes, period)
	upper = make([]null.Float, len(closes))
	lower = make([]null.Float, len(closes))
	for i := range closes {
		if !middle[i].Valid || !std[i].Valid {
			continue
		}
		upper[i] = null.FloatFrom(middle[i].Float64 + width*std[i].Float64)
		lower[i] = null.FloatFrom(middle[i].Float64 - width*std[i].Float64)
	}
	return middle, upper, lower
}
