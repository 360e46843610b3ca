package rankgo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rankgo/document"
	"github.com/hupe1980/rankgo/model"
	"github.com/hupe1980/rankgo/testutil"
)

func TestScalePercent(t *testing.T) {
	s := NewScale(100)

	assert.Equal(t, 100, s.Percent(100))
	assert.Equal(t, 50, s.Percent(50))
	assert.Equal(t, 49, s.Percent(49.999))
	assert.Equal(t, 0, s.Percent(0))
	assert.Equal(t, 0, s.Percent(-5))

	// The mapping floors, but a nonzero weight never reports 0%.
	assert.Equal(t, 1, s.Percent(0.0001))

	// Weights above the maximum clamp to 100.
	assert.Equal(t, 100, s.Percent(250))
}

func TestScaleInvalid(t *testing.T) {
	for _, max := range []float64{0, -1} {
		s := NewScale(max)
		assert.False(t, s.Valid())
		assert.Equal(t, 100, s.Percent(0))
		assert.Equal(t, 100, s.Percent(42))
		assert.Equal(t, 0.0, s.WeightThreshold(50))
	}
}

// WeightThreshold(p) must be the exact smallest weight reporting at least p%,
// so a weight filter and a percentage filter select the same documents.
func TestScaleWeightThresholdExact(t *testing.T) {
	maxes := []float64{100, 1, 0.003, 7.77, 12345.678}
	percents := []int{2, 3, 10, 33, 49, 50, 51, 90, 99, 100}

	for _, max := range maxes {
		s := NewScale(max)
		for _, p := range percents {
			th := s.WeightThreshold(p)
			require.GreaterOrEqual(t, s.Percent(th), p,
				"max=%g percent=%d threshold=%g", max, p, th)

			prev := math.Nextafter(th, math.Inf(-1))
			if prev > 0 {
				assert.Less(t, s.Percent(prev), p,
					"max=%g percent=%d: one ulp below the threshold still passes", max, p)
			}
		}
		// The maximum weight itself always reports 100%.
		assert.LessOrEqual(t, s.WeightThreshold(100), max)
	}
}

func TestScaleWeightThresholdOnePercent(t *testing.T) {
	s := NewScale(100)
	th := s.WeightThreshold(1)
	assert.Equal(t, math.SmallestNonzeroFloat64, th)
	assert.Equal(t, 1, s.Percent(th))
	assert.Equal(t, 0, s.Percent(0))
}

// Five documents straddling the 50% boundary by a single ulp. The cutoff must
// partition them exactly where the percentage scores flip.
func TestPercentCutoffBoundary(t *testing.T) {
	s := NewScale(100)
	th50 := s.WeightThreshold(50)
	below := math.Nextafter(th50, math.Inf(-1))
	require.Equal(t, 50, s.Percent(th50))
	require.Equal(t, 49, s.Percent(below))

	weights := []float64{100, 50, th50, below, 25}
	wantPercents := []int{100, 50, 50, 49, 25}

	src := document.NewMemorySource(1)
	stream := testutil.NewPairSource()
	for i, wt := range weights {
		did := model.DocID(i + 1)
		src.AddDocument(did, nil, nil)
		stream.Append(did, wt)
	}

	t.Run("percent scores", func(t *testing.T) {
		stream.Reset()
		enq := NewEnquire(src)
		mset, err := enq.Run(context.Background(), stream)
		require.NoError(t, err)
		require.Equal(t, len(weights), mset.Len())
		for i := range weights {
			assert.Equal(t, wantPercents[i], mset.Percent(i), "rank %d", i)
		}
	})

	cutoffs := []struct {
		cutoff int
		want   int
	}{
		{100, 1},
		{51, 1},
		{50, 3},
		{49, 4},
		{26, 4},
		{25, 5},
		{1, 5},
		{0, 5},
	}
	for _, tt := range cutoffs {
		stream.Reset()
		enq := NewEnquire(src, WithCutoff(tt.cutoff))
		mset, err := enq.Run(context.Background(), stream)
		require.NoError(t, err, "cutoff %d", tt.cutoff)
		assert.Equal(t, tt.want, mset.Len(), "cutoff %d", tt.cutoff)
	}
}

func TestMSetRankAndConvert(t *testing.T) {
	src := document.NewMemorySource(1)
	stream := testutil.NewPairSource()
	for i := 1; i <= 6; i++ {
		src.AddDocument(model.DocID(i), nil, nil)
		stream.Append(model.DocID(i), float64(70-10*i))
	}

	enq := NewEnquire(src, WithPaging(2, 3))
	mset, err := enq.Run(context.Background(), stream)
	require.NoError(t, err)

	require.Equal(t, 3, mset.Len())
	assert.Equal(t, 2, mset.Rank(0))
	assert.Equal(t, 4, mset.Rank(2))
	assert.Equal(t, model.DocID(3), mset.Items()[0].DocID)

	// The scale is fixed by the best weight seen (60), not by the window.
	assert.Equal(t, 60.0, mset.Scale().MaxWeight())
	assert.Equal(t, 100, mset.ConvertToPercent(60))
	assert.Equal(t, 50, mset.ConvertToPercent(30))
}

func TestMSetMaxWeightHint(t *testing.T) {
	src := document.NewMemorySource(1)
	src.AddDocument(1, nil, nil)
	stream := testutil.NewPairSource().Append(1, 40)

	enq := NewEnquire(src, WithMaxWeightHint(80))
	mset, err := enq.Run(context.Background(), stream)
	require.NoError(t, err)

	require.Equal(t, 1, mset.Len())
	assert.Equal(t, 80.0, mset.Scale().MaxWeight())
	assert.Equal(t, 50, mset.Percent(0))
}
