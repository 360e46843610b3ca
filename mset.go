package rankgo

import (
	"math"

	"github.com/hupe1980/rankgo/model"
)

// Scale converts raw weights into bounded integer percentages relative to a
// fixed maximum weight for the query.
//
// The mapping is a pure floor function of the weight and the maximum, so it is
// identical for any sub-window of the result set, monotonic in weight, and
// deterministic under floating-point rounding: a one-epsilon weight step
// crosses a percentage boundary at exactly the same weight on every platform.
type Scale struct {
	max float64
}

// NewScale creates a Scale against maxWeight. A non-positive maxWeight yields
// an invalid scale that reports 100% for everything.
func NewScale(maxWeight float64) Scale {
	return Scale{max: maxWeight}
}

// Valid reports whether the scale has a usable maximum.
func (s Scale) Valid() bool { return s.max > 0 }

// MaxWeight returns the maximum weight the scale is relative to.
func (s Scale) MaxWeight() float64 { return s.max }

// Percent maps wt into [0, 100]. A nonzero weight never reports 0%.
func (s Scale) Percent(wt float64) int {
	if s.max <= 0 {
		return 100
	}
	p := int(math.Floor(wt * 100 / s.max))
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	if p == 0 && wt > 0 {
		p = 1
	}
	return p
}

// WeightThreshold returns the smallest weight w with Percent(w) >= percent,
// so filtering by "percent >= p" and by "weight >= WeightThreshold(p)" select
// exactly the same documents.
func (s Scale) WeightThreshold(percent int) float64 {
	if percent <= 0 || !s.Valid() {
		return 0
	}
	if percent == 1 {
		// Any nonzero weight reports at least 1%.
		return math.SmallestNonzeroFloat64
	}
	w := s.max * float64(percent) / 100
	// The division above can land an ulp or two off the true boundary on
	// either side; walk to the exact smallest passing weight.
	for i := 0; i < 64 && s.Percent(w) < percent; i++ {
		w = math.Nextafter(w, math.Inf(1))
	}
	for i := 0; i < 64; i++ {
		prev := math.Nextafter(w, math.Inf(-1))
		if prev <= 0 || s.Percent(prev) < percent {
			break
		}
		w = prev
	}
	return w
}

// MSet is the outcome of one match run: the requested window of the ranked,
// collapsed, cutoff-filtered result set plus the match statistics.
type MSet struct {
	items []model.Result
	first int
	scale Scale

	matchesLowerBound uint32
	matchesEstimated  uint32
	matchesUpperBound uint32
}

// Items returns the result window, best first.
func (m *MSet) Items() []model.Result { return m.items }

// Len returns the number of items in the window.
func (m *MSet) Len() int { return len(m.items) }

// Rank returns the zero-based rank of item i within the full result set.
func (m *MSet) Rank(i int) int { return m.first + i }

// Percent returns the percentage score of item i.
func (m *MSet) Percent(i int) int { return m.scale.Percent(m.items[i].Weight) }

// ConvertToPercent maps an arbitrary weight onto this match's percentage
// scale.
func (m *MSet) ConvertToPercent(wt float64) int { return m.scale.Percent(wt) }

// Scale returns the percentage scale of this match.
func (m *MSet) Scale() Scale { return m.scale }

// MatchesLowerBound returns a lower bound on the true number of post-collapse
// matches.
func (m *MSet) MatchesLowerBound() uint32 { return m.matchesLowerBound }

// MatchesEstimated returns an estimate of the true number of post-collapse
// matches, always within the two bounds.
func (m *MSet) MatchesEstimated() uint32 { return m.matchesEstimated }

// MatchesUpperBound returns an upper bound on the true number of
// post-collapse matches.
func (m *MSet) MatchesUpperBound() uint32 { return m.matchesUpperBound }
