package indicator

import "github.com/guregu/null/v6"

// RSI computes the relative strength index from trailing simple means of
// gains and losses over period close-to-close deltas. The first defined row
// is index period. A window with losses but no gains yields 0, one with gains
// but no losses saturates at 100, and a flat window is missing.
func RSI(closes []float64, period int) []null.Float {
	n := len(closes)
	out := make([]null.Float, n)
	if n == 0 {
		return out
	}

	gains := make([]null.Float, n)
	losses := make([]null.Float, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		gains[i] = null.FloatFrom(gain)
		losses[i] = null.FloatFrom(loss)
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)
	for i := range out {
		if !avgGain[i].Valid || !avgLoss[i].Valid {
			continue
		}
		if v, ok := rsiFromAverages(avgGain[i].Float64, avgLoss[i].Float64); ok {
			out[i] = null.FloatFrom(v)
		}
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) (float64, bool) {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 0, false
		}
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}
