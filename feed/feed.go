package feed

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/segtree"
)

// Kind is the kind of a change to a feed.
type Kind int

// Kinds of changes
const (
	Set Kind = iota
	Removed
	RangeUpdate
)

func (k Kind) String() string {
	switch k {
	case Set:
		return "set"
	case Removed:
		return "remove"
	case RangeUpdate:
		return "range"
	}
	return "unknown"
}

// Change describes a successful update of the days [Lo, Hi].
// For Set, Op is an assignment of the new reading. For Removed, Op is empty.
type Change struct {
	Kind   Kind
	Lo, Hi int
	Op     segtree.Update
}

func (c Change) String() string {
	if c.Lo == c.Hi {
		return fmt.Sprintf("%v day %d %v", c.Kind, c.Lo, c.Op)
	}
	return fmt.Sprintf("%v days %d…%d %v", c.Kind, c.Lo, c.Hi, c.Op)
}

// Feed is a front for a segment tree. It serializes queries and updates and
// publishes a Change for every update which succeeded.
// Feed implements analysis.Source.
type Feed struct {
	mu     sync.RWMutex
	tree   *segtree.Tree
	cast   *caster.Caster // broadcaster for changes
	closed bool
}

// New creates a feed for tree. Clients must not access tree directly after
// handing it over to a feed.
func New(tree *segtree.Tree) (*Feed, error) {
	if tree == nil || tree.Len() == 0 {
		return nil, fmt.Errorf("%w: feed needs a tree", segtree.ErrInvalidInput)
	}
	return &Feed{
		tree: tree,
		cast: caster.New(nil),
	}, nil
}

// Subscribe registers a new subscriber for changes. capacity is the buffer size
// of the subscription channel. The returned func cancels the subscription.
// The channel is closed after cancelling or when the feed is closed.
func (f *Feed) Subscribe(capacity int) (<-chan Change, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Change, max(0, capacity))
	sub, ok := f.cast.Sub(ctx, uint(max(0, capacity)))
	if !ok {
		cancel()
		close(out)
		return out, func() {}
	}
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-sub:
				if !ok {
					return
				}
				c, isChange := m.(Change)
				if !isChange {
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, cancel
}

// Close closes all subscriptions. Updates on a closed feed return ErrClosed,
// while queries are still served.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.cast.Close()
}

// publish is called with f.mu held.
func (f *Feed) publish(c Change) {
	tracer().P("feed", c.Kind).Debugf("publish %v", c)
	f.cast.Pub(c)
}

// --- Updates ---------------------------------------------------------------

// SetValue records reading v for day.
func (f *Feed) SetValue(day int, v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.tree.SetValue(day, v); err != nil {
		return err
	}
	f.publish(Change{Kind: Set, Lo: day, Hi: day, Op: segtree.Assign(v)})
	return nil
}

// Remove deletes the reading of day.
func (f *Feed) Remove(day int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.tree.Remove(day); err != nil {
		return err
	}
	f.publish(Change{Kind: Removed, Lo: day, Hi: day})
	return nil
}

// ApplyRange applies op to every day with reading in [lo, hi].
func (f *Feed) ApplyRange(lo, hi int, op segtree.Update) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := f.tree.ApplyRange(lo, hi, op); err != nil {
		return err
	}
	f.publish(Change{Kind: RangeUpdate, Lo: lo, Hi: hi, Op: op})
	return nil
}

// --- Queries ---------------------------------------------------------------
//
// Queries push pending updates down the tree and therefore need the
// exclusive lock as well.

// Len returns the number of days.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tree.Len()
}

// Present returns the number of days with reading.
func (f *Feed) Present() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tree.Present()
}

// Query answers metric m for days [lo, hi].
func (f *Feed) Query(lo, hi int, m segtree.Metric) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Query(lo, hi, m)
}

// Summarize returns the summary of days [lo, hi].
func (f *Feed) Summarize(lo, hi int) (segtree.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Summarize(lo, hi)
}

// Value returns the reading of day.
func (f *Feed) Value(day int) (float64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Value(day)
}

// Values returns all readings, with NaN for days without reading.
func (f *Feed) Values() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Values()
}

// DaysAbove lists the days in [lo, hi] with reading strictly above threshold.
func (f *Feed) DaysAbove(lo, hi int, threshold float64) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.DaysAbove(lo, hi, threshold)
}

// DaysBelow lists the days in [lo, hi] with reading strictly below threshold.
func (f *Feed) DaysBelow(lo, hi int, threshold float64) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.DaysBelow(lo, hi, threshold)
}

// Check verifies the invariants of the underlying tree.
func (f *Feed) Check() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree.Check()
}

// Dot writes the underlying tree in GraphViz DOT format.
func (f *Feed) Dot(w io.Writer, depth int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return segtree.Tree2Dot(f.tree, w, depth)
}
