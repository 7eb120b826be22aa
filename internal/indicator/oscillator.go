package indicator

import (
	"math"

	"github.com/guregu/null/v6"
)

// Stochastic computes %K against the trailing kPeriod low/high range and %D
// as the dPeriod simple mean of %K. %K is missing when the range is flat,
// and %D is missing while any %K in its window is missing.
func Stochastic(high, low, closes []float64, kPeriod, dPeriod int) (k, d []null.Float) {
	lowest := rollingMin(low, kPeriod)
	highest := rollingMax(high, kPeriod)
	k = make([]null.Float, len(closes))
	for i, c := range closes {
		if !lowest[i].Valid || !highest[i].Valid {
			continue
		}
		span := highest[i].Float64 - lowest[i].Float64
		if span == 0 {
			continue
		}
		k[i] = null.FloatFrom(100 * (c - lowest[i].Float64) / span)
	}
	return k, rollingMean(k, dPeriod)
}

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) per row;
// the first row has no previous close and uses high-low.
func TrueRange(high, low, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		tr := high[i] - low[i]
		if i > 0 {
			prev := closes[i-1]
			tr = math.Max(tr, math.Max(math.Abs(high[i]-prev), math.Abs(low[i]-prev)))
		}
		out[i] = tr
	}
	return out
}

// ATR is the trailing simple mean of the true range.
func ATR(high, low, closes []float64, period int) []null.Float {
	return SMA(TrueRange(high, low, closes), period)
}
