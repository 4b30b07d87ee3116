package segtree

import (
	"fmt"
	"math"
)

// Check validates the structural invariants of a tree: every inner node's
// summary has to equal the combination of its children's summaries, after
// applying the inner node's pending update to them.
//
// Check does not push down pending updates and leaves the tree unchanged.
// It is intended to be used in tests.
func (t *Tree) Check() error {
	if t == nil || t.n == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvariant)
	}
	if len(t.nodes) < 2*t.n-1 {
		return fmt.Errorf("%w: %d nodes cannot hold %d days", ErrInvariant, len(t.nodes), t.n)
	}
	_, err := t.checkNode(0, 0, t.n-1)
	return err
}

func (t *Tree) checkNode(i, lo, hi int) (Summary, error) {
	nd := t.nodes[i]
	if lo == hi {
		if !nd.lazy.IsEmpty() {
			return nd.sum, fmt.Errorf("%w: leaf for day %d has pending update %v", ErrInvariant, lo, nd.lazy)
		}
		switch nd.sum.Count {
		case 0:
			if nd.sum != (Monoid{}).Zero() || nd.first != -1 {
				return nd.sum, fmt.Errorf("%w: empty leaf for day %d is not neutral: %v", ErrInvariant, lo, nd.sum)
			}
		case 1:
			s := nd.sum
			if s.Max != s.Min || s.Max != s.Sum || s.MaxDay != lo || s.MinDay != lo || nd.first != lo {
				return nd.sum, fmt.Errorf("%w: inconsistent leaf for day %d: %v", ErrInvariant, lo, nd.sum)
			}
		default:
			return nd.sum, fmt.Errorf("%w: leaf for day %d counts %d readings", ErrInvariant, lo, nd.sum.Count)
		}
		return nd.sum, nil
	}
	mid := lo + (hi-lo)/2
	left, err := t.checkNode(2*i+1, lo, mid)
	if err != nil {
		return nd.sum, err
	}
	right, err := t.checkNode(2*i+2, mid+1, hi)
	if err != nil {
		return nd.sum, err
	}
	l, r := t.nodes[2*i+1], t.nodes[2*i+2]
	want := Monoid{}.Add(applied(left, l.first, nd.lazy), applied(right, r.first, nd.lazy))
	wantFirst := l.first
	if wantFirst < 0 {
		wantFirst = r.first
	}
	if nd.first != wantFirst {
		return nd.sum, fmt.Errorf("%w: node %d [%d,%d] has first day %d, children say %d",
			ErrInvariant, i, lo, hi, nd.first, wantFirst)
	}
	if !sameSummary(nd.sum, want, lo, hi) {
		return nd.sum, fmt.Errorf("%w: node %d [%d,%d] caches %v, children say %v",
			ErrInvariant, i, lo, hi, nd.sum, want)
	}
	return nd.sum, nil
}

// sameSummary compares two summaries of range [lo, hi], tolerating rounding
// differences from composing updates. Days of extremes are compared only if the
// extreme values match exactly.
func sameSummary(a, b Summary, lo, hi int) bool {
	if a.Count != b.Count {
		return false
	}
	if a.Count == 0 {
		return a == b
	}
	if !nearlyEqual(a.Max, b.Max) || !nearlyEqual(a.Min, b.Min) || !nearlyEqual(a.Sum, b.Sum) {
		return false
	}
	inRange := func(day int) bool { return lo <= day && day <= hi }
	if !inRange(a.MaxDay) || !inRange(a.MinDay) {
		return false
	}
	if a.Max == b.Max && a.MaxDay != b.MaxDay {
		return false
	}
	if a.Min == b.Min && a.MinDay != b.MinDay {
		return false
	}
	return true
}

func nearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return diff <= 1e-9*scale
}
