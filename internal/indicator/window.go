package indicator

import (
	"math"

	"github.com/guregu/null/v6"
)

// defined wraps a fully populated column.
func defined(values []float64) []null.Float {
	out := make([]null.Float, len(values))
	for i, v := range values {
		out[i] = null.FloatFrom(v)
	}
	return out
}

// compensatedSum is a running sum with Neumaier compensation, so values
// added and later removed leave no rounding residue behind.
type compensatedSum struct {
	sum, comp float64
}

func (c *compensatedSum) add(x float64) {
	t := c.sum + x
	if math.Abs(c.sum) >= math.Abs(x) {
		c.comp += (c.sum - t) + x
	} else {
		c.comp += (x - t) + c.sum
	}
	c.sum = t
}

func (c *compensatedSum) value() float64 { return c.sum + c.comp }

// rollingMean returns the trailing mean of period values ending at each row.
// A row is missing until the window is full and while any value in the window is missing.
// A window of identical values yields exactly that value.
func rollingMean(values []null.Float, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	var acc compensatedSum
	var prev float64
	missing, same := 0, 0
	for i, v := range values {
		if v.Valid {
			acc.add(v.Float64)
			if same > 0 && v.Float64 == prev {
				same++
			} else {
				same = 1
			}
			prev = v.Float64
		} else {
			missing++
			same = 0
		}
		if i >= period {
			if old := values[i-period]; old.Valid {
				acc.add(-old.Float64)
			} else {
				missing--
			}
		}
		if i < period-1 || missing > 0 {
			continue
		}
		if same >= period {
			out[i] = null.FloatFrom(prev)
		} else {
			out[i] = null.FloatFrom(acc.value() / float64(period))
		}
	}
	return out
}

// rollingStd returns the trailing population standard deviation over period values.
// Each window is evaluated in two passes, mean first and squared deviations second,
// so an outlier leaving the window does not disturb later rows.
func rollingStd(values []float64, period int) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		var acc compensatedSum
		flat := true
		for _, x := range window {
			acc.add(x)
			flat = flat && x == window[0]
		}
		if flat {
			out[i] = null.FloatFrom(0)
			continue
		}
		mean := acc.value() / float64(period)
		var m2 float64
		for _, x := range window {
			d := x - mean
			m2 += d * d
		}
		out[i] = null.FloatFrom(math.Sqrt(m2 / float64(period)))
	}
	return out
}

// rollingMax returns the highest value of the trailing window.
func rollingMax(values []float64, period int) []null.Float {
	return rollingExtreme(values, period, func(a, b float64) bool { return a > b })
}

// rollingMin returns the lowest value of the trailing window.
func rollingMin(values []float64, period int) []null.Float {
	return rollingExtreme(values, period, func(a, b float64) bool { return a < b })
}

// rollingExtreme keeps a monotonic deque of indices whose values are strictly
// better than every later value, so the front is always the window extreme.
func rollingExtreme(values []float64, period int, better func(a, b float64) bool) []null.Float {
	out := make([]null.Float, len(values))
	if period <= 0 {
		return out
	}
	deque := make([]int, 0, period)
	for i, x := range values {
		for len(deque) > 0 && !better(values[deque[len(deque)-1]], x) {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)
		if deque[0] <= i-period {
			deque = deque[1:]
		}
		if i >= period-1 {
			out[i] = null.FloatFrom(values[deque[0]])
		}
	}
	return out
}
