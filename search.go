package segtree

// DaysAbove returns the days in [lo, hi] with a reading strictly greater than
// threshold, in ascending order.
//
// Subtrees whose maximum does not exceed threshold are skipped, which makes the
// search O(k log n) for k matching days instead of a linear scan.
func (t *Tree) DaysAbove(lo, hi int, threshold float64) ([]int, error) {
	if err := t.checkRange(lo, hi); err != nil {
		return nil, err
	}
	keep := func(s Summary) bool { return s.Max > threshold }
	return t.collect(0, 0, t.n-1, lo, hi, keep, nil), nil
}

// DaysBelow returns the days in [lo, hi] with a reading strictly less than
// threshold, in ascending order. See DaysAbove.
func (t *Tree) DaysBelow(lo, hi int, threshold float64) ([]int, error) {
	if err := t.checkRange(lo, hi); err != nil {
		return nil, err
	}
	keep := func(s Summary) bool { return s.Min < threshold }
	return t.collect(0, 0, t.n-1, lo, hi, keep, nil), nil
}

// collect appends every day of [l, r] below node i to days, descending only into
// nodes where keep holds for the node's summary.
func (t *Tree) collect(i, lo, hi, l, r int, keep func(Summary) bool, days []int) []int {
	if r < lo || hi < l {
		return days
	}
	if s := t.nodes[i].sum; s.IsEmpty() || !keep(s) {
		return days
	}
	if lo == hi {
		return append(days, lo)
	}
	t.push(i, lo, hi)
	mid := lo + (hi-lo)/2
	days = t.collect(2*i+1, lo, mid, l, r, keep, days)
	return t.collect(2*i+2, mid+1, hi, l, r, keep, days)
}
