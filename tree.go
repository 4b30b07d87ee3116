package segtree

import (
	"fmt"
	"math"
)

// Tree is an array-backed segment tree over a fixed number of daily readings,
// supporting range queries for maximum, minimum and average, as well as point
// updates and lazy range updates.
//
// Nodes are addressed like in a binary heap: the root is node 0, children of
// node i are nodes 2i+1 and 2i+2. The range a node covers is implicit from
// recursively halving [0, N-1].
//
// Trees are built once with Build and are never resized.
type Tree struct {
	nodes []node
	n     int
}

// node caches the aggregates of a range of days.
//
// The summary of a node is always up to date with respect to its own pending
// update. A pending update means that the children's summaries are stale until
// the update has been pushed down.
type node struct {
	sum   Summary
	first int    // leftmost day below this node carrying a reading, or -1
	lazy  Update // pending update not yet applied to children
}

// MaxReading bounds the magnitude of readings. Sums over any number of
// readings within ±MaxReading stay finite.
const MaxReading = 1e15

// Build creates a tree for a sequence of daily readings, day 0 first.
// values may not be empty and must be finite numbers within ±MaxReading.
func Build(values []float64) (*Tree, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to build a tree from", ErrInvalidInput)
	}
	for day, v := range values {
		if err := checkReading(day, v); err != nil {
			return nil, err
		}
	}
	t := &Tree{
		nodes: make([]node, 4*len(values)),
		n:     len(values),
	}
	t.build(values, 0, 0, t.n-1)
	T().Debugf("segtree: built tree over %d days", t.n)
	return t, nil
}

// Len returns the number of days of the tree, including days without reading.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Present returns the number of days carrying a reading.
func (t *Tree) Present() int {
	if t == nil {
		return 0
	}
	return t.nodes[0].sum.Count
}

// SetValue sets the reading of a single day. If the reading for day had been
// removed, it will be recorded again.
func (t *Tree) SetValue(day int, value float64) error {
	if err := t.checkRange(day, day); err != nil {
		return err
	}
	if err := checkReading(day, value); err != nil {
		return err
	}
	t.setLeaf(0, 0, t.n-1, day, leaf(day, value))
	return nil
}

// Remove deletes the reading of a single day. The day will be excluded from
// every aggregate until a new reading is set with SetValue. Removing a day
// which has no reading is a no-op.
func (t *Tree) Remove(day int) error {
	if err := t.checkRange(day, day); err != nil {
		return err
	}
	t.setLeaf(0, 0, t.n-1, day, emptyLeaf())
	return nil
}

// ApplyRange applies an update to every day in [lo, hi] carrying a reading.
// Days without reading are left untouched. An update which would move a
// reading beyond ±MaxReading is rejected.
func (t *Tree) ApplyRange(lo, hi int, op Update) error {
	if err := t.checkRange(lo, hi); err != nil {
		return err
	}
	if !op.valid() {
		return fmt.Errorf("%w: cannot apply update %v", ErrInvalidInput, op)
	}
	if math.Abs(op.value) > MaxReading {
		return fmt.Errorf("%w: operand of %v exceeds ±%g", ErrInvalidInput, op, MaxReading)
	}
	if op.IsAdd() {
		s := t.query(0, 0, t.n-1, lo, hi)
		if !s.IsEmpty() && (math.Abs(s.Max+op.value) > MaxReading || math.Abs(s.Min+op.value) > MaxReading) {
			return fmt.Errorf("%w: %v moves readings of days %d…%d beyond ±%g",
				ErrInvalidInput, op, lo, hi, MaxReading)
		}
	}
	T().P("update", op).Debugf("segtree: apply to days %d…%d", lo, hi)
	t.applyRange(0, 0, t.n-1, lo, hi, op)
	return nil
}

// Query returns an aggregate over the readings of days [lo, hi].
// Average is the sum of the readings divided by the number of days carrying a
// reading.
func (t *Tree) Query(lo, hi int, metric Metric) (float64, error) {
	s, err := t.Summarize(lo, hi)
	if err != nil {
		return math.NaN(), err
	}
	return s.Metric(metric), nil
}

// Summarize returns the summary of days [lo, hi].
func (t *Tree) Summarize(lo, hi int) (Summary, error) {
	if err := t.checkRange(lo, hi); err != nil {
		return Monoid{}.Zero(), err
	}
	s := t.query(0, 0, t.n-1, lo, hi)
	if s.IsEmpty() {
		return s, fmt.Errorf("%w: days %d…%d", ErrNoData, lo, hi)
	}
	return s, nil
}

// Value returns the current reading of a day. If the reading has been removed,
// ok is false.
func (t *Tree) Value(day int) (value float64, ok bool, err error) {
	if err = t.checkRange(day, day); err != nil {
		return math.NaN(), false, err
	}
	s := t.query(0, 0, t.n-1, day, day)
	if s.IsEmpty() {
		return math.NaN(), false, nil
	}
	return s.Sum, true, nil
}

// Values returns the current readings of all days, with NaN for days without
// reading. This pushes every pending update down to the leaves and takes O(n).
func (t *Tree) Values() []float64 {
	if t == nil {
		return nil
	}
	values := make([]float64, t.n)
	t.collectLeaves(0, 0, t.n-1, values)
	return values
}

// --- Internals -------------------------------------------------------------

func (t *Tree) checkRange(lo, hi int) error {
	if t == nil || t.n == 0 {
		return fmt.Errorf("%w: tree is empty", ErrIndexOutOfRange)
	}
	if lo < 0 || hi >= t.n || lo > hi {
		return fmt.Errorf("%w: days %d…%d, valid days are 0…%d", ErrIndexOutOfRange, lo, hi, t.n-1)
	}
	return nil
}

func leaf(day int, value float64) node {
	return node{
		sum: Summary{
			Max:    value,
			MaxDay: day,
			Min:    value,
			MinDay: day,
			Sum:    value,
			Count:  1,
		},
		first: day,
	}
}

func emptyLeaf() node {
	return node{sum: Monoid{}.Zero(), first: -1}
}

func (t *Tree) build(values []float64, i, lo, hi int) {
	if lo == hi {
		t.nodes[i] = leaf(lo, values[lo])
		return
	}
	mid := lo + (hi-lo)/2
	t.build(values, 2*i+1, lo, mid)
	t.build(values, 2*i+2, mid+1, hi)
	t.pull(i)
}

// pull recomputes the summary of node i from its children. Node i must not
// carry a pending update.
func (t *Tree) pull(i int) {
	l, r := &t.nodes[2*i+1], &t.nodes[2*i+2]
	assert(t.nodes[i].lazy.IsEmpty(), "pull on node with pending update")
	t.nodes[i].sum = Monoid{}.Add(l.sum, r.sum)
	t.nodes[i].first = l.first
	if l.first < 0 {
		t.nodes[i].first = r.first
	}
}

// apply applies update u to node i covering [lo, hi]. The update is recorded as
// pending for the children of inner nodes.
func (t *Tree) apply(i, lo, hi int, u Update) {
	nd := &t.nodes[i]
	nd.sum = applied(nd.sum, nd.first, u)
	if lo < hi {
		nd.lazy = nd.lazy.then(u)
	}
}

// applied returns summary s of a range after applying u to every reading in the
// range. first is the leftmost day of the range carrying a reading.
func applied(s Summary, first int, u Update) Summary {
	if s.Count == 0 {
		return s
	}
	switch u.kind {
	case opAdd:
		s.Max += u.value
		s.Min += u.value
		s.Sum += u.value * float64(s.Count)
	case opAssign:
		s.Max, s.MaxDay = u.value, first
		s.Min, s.MinDay = u.value, first
		s.Sum = u.value * float64(s.Count)
	}
	return s
}

// push propagates a pending update of node i to both of its children.
func (t *Tree) push(i, lo, hi int) {
	u := t.nodes[i].lazy
	if u.IsEmpty() {
		return
	}
	mid := lo + (hi-lo)/2
	t.apply(2*i+1, lo, mid, u)
	t.apply(2*i+2, mid+1, hi, u)
	t.nodes[i].lazy = Update{}
}

func (t *Tree) setLeaf(i, lo, hi, day int, nd node) {
	if lo == hi {
		t.nodes[i] = nd
		return
	}
	t.push(i, lo, hi)
	mid := lo + (hi-lo)/2
	if day <= mid {
		t.setLeaf(2*i+1, lo, mid, day, nd)
	} else {
		t.setLeaf(2*i+2, mid+1, hi, day, nd)
	}
	t.pull(i)
}

func (t *Tree) applyRange(i, lo, hi, l, r int, u Update) {
	if r < lo || hi < l {
		return
	}
	if l <= lo && hi <= r {
		t.apply(i, lo, hi, u)
		return
	}
	t.push(i, lo, hi)
	mid := lo + (hi-lo)/2
	t.applyRange(2*i+1, lo, mid, l, r, u)
	t.applyRange(2*i+2, mid+1, hi, l, r, u)
	t.pull(i)
}

func (t *Tree) query(i, lo, hi, l, r int) Summary {
	if r < lo || hi < l {
		return Monoid{}.Zero()
	}
	if l <= lo && hi <= r {
		return t.nodes[i].sum
	}
	t.push(i, lo, hi)
	mid := lo + (hi-lo)/2
	return Monoid{}.Add(
		t.query(2*i+1, lo, mid, l, r),
		t.query(2*i+2, mid+1, hi, l, r),
	)
}

func (t *Tree) collectLeaves(i, lo, hi int, values []float64) {
	if lo == hi {
		if t.nodes[i].sum.IsEmpty() {
			values[lo] = math.NaN()
		} else {
			values[lo] = t.nodes[i].sum.Sum
		}
		return
	}
	t.push(i, lo, hi)
	mid := lo + (hi-lo)/2
	t.collectLeaves(2*i+1, lo, mid, values)
	t.collectLeaves(2*i+2, mid+1, hi, values)
}

func checkReading(day int, v float64) error {
	if !isFinite(v) {
		return fmt.Errorf("%w: value %v for day %d is not finite", ErrInvalidInput, v, day)
	}
	if math.Abs(v) > MaxReading {
		return fmt.Errorf("%w: value %g for day %d exceeds ±%g", ErrInvalidInput, v, day, MaxReading)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
