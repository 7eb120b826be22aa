package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func recordsFromCloses(closes []float64) []model.PriceRecord {
	out := make([]model.PriceRecord, len(closes))
	for i, c := range closes {
		out[i] = model.PriceRecord{
			Date:   day0.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return out
}

func increasingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func seriesOf(closes []float64) model.PriceSeries {
	return model.PriceSeries{Symbol: "TEST", Period: model.Period1y, Records: recordsFromCloses(closes)}
}

func TestRun_EmptySeries(t *testing.T) {
	_, err := NewPipeline("").Run(model.PriceSeries{Symbol: "NONE"})
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestRun_TooShortForSlowAverage(t *testing.T) {
	_, err := NewPipeline("").Run(seriesOf(increasingCloses(10)))
	require.ErrorIs(t, err, model.ErrInsufficientData)
	assert.Contains(t, err.Error(), string(model.ColSMA20))
}

func TestRun_PreservesLengthAndRecords(t *testing.T) {
	series := seriesOf(randomCloses(260, 21))
	rows, err := NewPipeline(strategy.PolicyMomentum).Run(series)
	require.NoError(t, err)
	require.Len(t, rows, series.Len())
	for i := range rows {
		assert.Equal(t, series.Records[i], rows[i].PriceRecord)
		assert.Contains(t, []model.Trend{model.Uptrend, model.Downtrend}, rows[i].Trend)
	}
	last := rows.Last()
	for _, col := range model.Columns {
		assert.True(t, last.Value(col).Valid, "last row should define %s", col)
	}
}

func TestCompute_IncreasingSeriesTurnsUpOnceBandsExist(t *testing.T) {
	p := NewPipeline(strategy.PolicyMomentum)
	rows := p.compute(recordsFromCloses(increasingCloses(30)))
	require.Len(t, rows, 30)
	for i, r := range rows {
		want := model.Downtrend
		if i >= 19 {
			want = model.Uptrend
		}
		assert.Equal(t, want, r.Trend, "row %d", i)
	}
	assert.Equal(t, 100.0, rows[29].RSI.Float64)
	assert.False(t, rows[29].SMA50.Valid)
}

func TestRun_LegacyPolicyFollowsAverageCross(t *testing.T) {
	rows, err := NewPipeline(strategy.PolicyMACross).Run(seriesOf(increasingCloses(80)))
	require.NoError(t, err)
	for i, r := range rows {
		want := model.Downtrend
		if i >= 49 {
			want = model.Uptrend
		}
		assert.Equal(t, want, r.Trend, "row %d", i)
	}
}

func TestCompute_IsCausal(t *testing.T) {
	records := recordsFromCloses(randomCloses(150, 22))
	p := NewPipeline("")
	full := p.compute(records)
	for _, k := range []int{1, 19, 20, 50, 99} {
		prefix := p.compute(records[:k])
		assert.Equal(t, full[:k], prefix, "prefix of length %d", k)
	}
}

func TestRun_EveryRowLabelMatchesPolicy(t *testing.T) {
	rows, err := NewPipeline(strategy.PolicyMomentum).Run(seriesOf(randomCloses(200, 23)))
	require.NoError(t, err)
	for i := range rows {
		r := &rows[i]
		up := r.RSI.Valid && r.RSI.Float64 > 50 &&
			r.Signal.Valid && r.MACD.Float64 > r.Signal.Float64 &&
			r.MiddleBand.Valid && r.Close > r.MiddleBand.Float64
		if up {
			assert.Equal(t, model.Uptrend, r.Trend, "row %d", i)
		} else {
			assert.Equal(t, model.Downtrend, r.Trend, "row %d", i)
		}
	}
}

func TestCompute_FlatMarketAfterVariedPricesIsDowntrend(t *testing.T) {
	for _, policy := range []strategy.Policy{strategy.PolicyMACross, strategy.PolicyMomentum} {
		for seed := int64(1); seed <= 40; seed++ {
			closes := append(randomCloses(300, seed), make([]float64, 80)...)
			for i := 300; i < len(closes); i++ {
				closes[i] = 123.45
			}
			rows := NewPipeline(policy).compute(recordsFromCloses(closes))
			for i := 350; i < len(rows); i++ {
				r := rows[i]
				require.Equal(t, r.SMA20.Float64, r.SMA50.Float64, "seed %d row %d", seed, i)
				require.Equal(t, r.Close, r.MiddleBand.Float64, "seed %d row %d", seed, i)
				require.Equal(t, model.Downtrend, r.Trend, "%s seed %d row %d", policy, seed, i)
			}
		}
	}
}
