package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/segtree"
	"gonum.org/v1/gonum/stat"
)

func yearTree(t *testing.T) *segtree.Tree {
	t.Helper()
	tree, err := segtree.Build([]float64{12, 15, 9, 22, 18, 22, 7, 11, 14, 16})
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestExtremesAndClimate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree := yearTree(t)
	x, err := FindExtremes(tree)
	if err != nil {
		t.Fatal(err)
	}
	if x.Hottest != (Reading{Day: 3, Value: 22}) || x.Coldest != (Reading{Day: 6, Value: 7}) {
		t.Errorf("unexpected extremes %+v", x)
	}
	_ = tree.Remove(6)
	c, err := Climate(tree)
	if err != nil {
		t.Fatal(err)
	}
	if c.Records != 9 || c.Days != 10 || math.Abs(c.Average-139.0/9) > 1e-9 {
		t.Errorf("unexpected climate summary %+v", c)
	}
	x, _ = FindExtremes(tree)
	if x.Coldest.Day != 2 {
		t.Errorf("expected day 2 to be coldest after removing day 6, is %d", x.Coldest.Day)
	}
}

func TestNoDataReports(t *testing.T) {
	tree, _ := segtree.Build([]float64{1, 2})
	_ = tree.Remove(0)
	_ = tree.Remove(1)
	if _, err := FindExtremes(tree); !errors.Is(err, segtree.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if c, err := Climate(tree); !errors.Is(err, segtree.ErrNoData) || c.Days != 2 {
		t.Errorf("expected ErrNoData over 2 days, got %+v, %v", c, err)
	}
}

func TestRangeReport(t *testing.T) {
	tree := yearTree(t)
	r, err := Range(tree, 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if r.Summary.Max != 22 || r.Summary.MaxDay != 3 || r.Summary.Min != 9 || r.Average() != 71.0/4 {
		t.Errorf("unexpected range report %+v", r)
	}
	if _, err := Range(tree, 5, 2); !errors.Is(err, segtree.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestAlerts(t *testing.T) {
	tree := yearTree(t)
	hot, err := Alerts(tree, 16, Above)
	if err != nil {
		t.Fatal(err)
	}
	want := []Reading{{3, 22}, {4, 18}, {5, 22}}
	if len(hot) != len(want) {
		t.Fatalf("expected %v, got %v", want, hot)
	}
	for i := range want {
		if hot[i] != want[i] {
			t.Errorf("alert %d: expected %v, got %v", i, want[i], hot[i])
		}
	}
	cold, err := Alerts(tree, 10, Below)
	if err != nil {
		t.Fatal(err)
	}
	if len(cold) != 2 || cold[0].Day != 2 || cold[1].Day != 6 {
		t.Errorf("unexpected cold alerts %v", cold)
	}
	if _, err := ParseDirection("sideways"); !errors.Is(err, ErrBadDirection) {
		t.Errorf("expected ErrBadDirection, got %v", err)
	}
	if d, err := ParseDirection(" Below "); err != nil || d != Below {
		t.Errorf("expected Below, got %v, %v", d, err)
	}
}

func TestMovingAverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree := yearTree(t)
	_ = tree.Remove(8)
	values := tree.Values()
	k := 2
	got, err := MovingAverage(tree, k)
	if err != nil {
		t.Fatal(err)
	}
	for day := range values {
		var window []float64
		for d := max(0, day-k); d <= min(len(values)-1, day+k); d++ {
			if !math.IsNaN(values[d]) {
				window = append(window, values[d])
			}
		}
		want := stat.Mean(window, nil)
		if math.Abs(got[day]-want) > 1e-9 {
			t.Errorf("day %d: moving average %g, want %g", day, got[day], want)
		}
	}
	if _, err := MovingAverage(tree, -1); !errors.Is(err, ErrBadWindow) {
		t.Errorf("expected ErrBadWindow, got %v", err)
	}
	single, _ := segtree.Build([]float64{4, 5})
	_ = single.Remove(0)
	avgs, _ := MovingAverage(single, 0)
	if !math.IsNaN(avgs[0]) || avgs[1] != 5 {
		t.Errorf("expected [NaN 5], got %v", avgs)
	}
}
