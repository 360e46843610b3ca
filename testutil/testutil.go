package testutil

import (
	"github.com/hupe1980/rankgo/model"
)

// PairSource is a CandidateSource over a fixed list of (docid, weight) pairs,
// yielded in the order they were appended. The caller is responsible for
// appending them in rank order.
type PairSource struct {
	items []model.Result
	pos   int
}

// NewPairSource creates an empty PairSource.
func NewPairSource() *PairSource {
	return &PairSource{}
}

// Append adds one candidate and returns the source for chaining.
func (s *PairSource) Append(did model.DocID, wt float64) *PairSource {
	s.items = append(s.items, model.Result{DocID: did, Weight: wt})
	return s
}

// AppendResult adds a fully-populated candidate and returns the source for
// chaining.
func (s *PairSource) AppendResult(item model.Result) *PairSource {
	s.items = append(s.items, item)
	return s
}

// Next implements rankgo.CandidateSource.
func (s *PairSource) Next() (model.Result, bool, error) {
	if s.pos >= len(s.items) {
		return model.Result{}, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item, true, nil
}

// Bounds implements rankgo.CandidateSource: the pair list is fully known, so
// all three bounds are its length.
func (s *PairSource) Bounds() (lower, estimated, upper uint32) {
	n := uint32(len(s.items))
	return n, n, n
}

// Reset rewinds the source so it can be run again.
func (s *PairSource) Reset() { s.pos = 0 }

// FailingSource yields the wrapped source's candidates until n have been
// consumed, then fails with err. Used to test error propagation out of the
// matching loop.
type FailingSource struct {
	Source  *PairSource
	After   int
	Err     error
	yielded int
}

// Next implements rankgo.CandidateSource.
func (s *FailingSource) Next() (model.Result, bool, error) {
	if s.yielded >= s.After {
		return model.Result{}, false, s.Err
	}
	s.yielded++
	return s.Source.Next()
}

// Bounds implements rankgo.CandidateSource.
func (s *FailingSource) Bounds() (lower, estimated, upper uint32) {
	return s.Source.Bounds()
}
