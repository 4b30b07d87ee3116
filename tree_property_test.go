package segtree

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// How to run:
//   - Deterministic randomized property test:
//     go test . -run TestRandomizedAgainstModel -count=1
//   - Fuzz test for this file:
//     go test . -run '^$' -fuzz FuzzRandomizedAgainstModel -fuzztime=10s

// model is the naive reference: one reading per day, NaN for removed days.
type model []float64

func (m model) present(lo, hi int) []float64 {
	var vals []float64
	for _, v := range m[lo : hi+1] {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

func (m model) apply(lo, hi int, op Update) {
	for d := lo; d <= hi; d++ {
		if math.IsNaN(m[d]) {
			continue
		}
		if op.IsAdd() {
			m[d] += op.Value()
		} else {
			m[d] = op.Value()
		}
	}
}

func randomReadings(r *rand.Rand, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(r.Intn(61) - 20)
	}
	return values
}

func assertTreeMatchesModel(t *testing.T, tree *Tree, m model, lo, hi int) {
	t.Helper()
	vals := m.present(lo, hi)
	s, err := tree.Summarize(lo, hi)
	if len(vals) == 0 {
		if !errors.Is(err, ErrNoData) {
			t.Fatalf("days %d…%d: expected ErrNoData, got %v", lo, hi, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Summarize(%d, %d) failed: %v", lo, hi, err)
	}
	if want := floats.Max(vals); s.Max != want {
		t.Fatalf("days %d…%d: max mismatch: got=%g want=%g", lo, hi, s.Max, want)
	}
	if want := floats.Min(vals); s.Min != want {
		t.Fatalf("days %d…%d: min mismatch: got=%g want=%g", lo, hi, s.Min, want)
	}
	if want := floats.Sum(vals); s.Sum != want {
		t.Fatalf("days %d…%d: sum mismatch: got=%g want=%g", lo, hi, s.Sum, want)
	}
	if s.Count != len(vals) {
		t.Fatalf("days %d…%d: count mismatch: got=%d want=%d", lo, hi, s.Count, len(vals))
	}
	if m[s.MaxDay] != s.Max || m[s.MinDay] != s.Min {
		t.Fatalf("days %d…%d: extremes reported on wrong days: %v", lo, hi, s)
	}
	for d := lo; d < s.MaxDay; d++ {
		if m[d] == s.Max {
			t.Fatalf("days %d…%d: max %g occurs on day %d before reported day %d", lo, hi, s.Max, d, s.MaxDay)
		}
	}
	for d := lo; d < s.MinDay; d++ {
		if m[d] == s.Min {
			t.Fatalf("days %d…%d: min %g occurs on day %d before reported day %d", lo, hi, s.Min, d, s.MinDay)
		}
	}
	avg, err := tree.Query(lo, hi, Average)
	if err != nil {
		t.Fatal(err)
	}
	if want := floats.Sum(vals) / float64(len(vals)); math.Abs(avg-want) > 1e-9 {
		t.Fatalf("days %d…%d: average mismatch: got=%g want=%g", lo, hi, avg, want)
	}
}

func randomRange(r *rand.Rand, n int) (int, int) {
	lo := r.Intn(n)
	hi := lo + r.Intn(n-lo)
	return lo, hi
}

func runRandomSequence(t *testing.T, seed uint64, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	n := r.Intn(70) + 1
	values := randomReadings(r, n)
	tree, err := Build(values)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	m := model(append([]float64(nil), values...))

	for i := 0; i < steps; i++ {
		switch r.Intn(6) {
		case 0:
			day := r.Intn(n)
			v := float64(r.Intn(61) - 20)
			if err := tree.SetValue(day, v); err != nil {
				t.Fatalf("SetValue failed: %v", err)
			}
			m[day] = v
		case 1:
			day := r.Intn(n)
			if err := tree.Remove(day); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			m[day] = math.NaN()
		case 2, 3:
			lo, hi := randomRange(r, n)
			op := Add(float64(r.Intn(11) - 5))
			if r.Intn(3) == 0 {
				op = Assign(float64(r.Intn(61) - 20))
			}
			if err := tree.ApplyRange(lo, hi, op); err != nil {
				t.Fatalf("ApplyRange failed: %v", err)
			}
			m.apply(lo, hi, op)
		default:
			lo, hi := randomRange(r, n)
			assertTreeMatchesModel(t, tree, m, lo, hi)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	assertTreeMatchesModel(t, tree, m, 0, n-1)
	got := tree.Values()
	for day := range m {
		if math.IsNaN(m[day]) != math.IsNaN(got[day]) || (!math.IsNaN(m[day]) && m[day] != got[day]) {
			t.Fatalf("day %d: got=%g want=%g", day, got[day], m[day])
		}
	}
}

func TestBuildQueryConsistency(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	for _, n := range []int{1, 2, 3, 5, 8, 13, 64, 100} {
		values := randomReadings(r, n)
		tree, err := Build(values)
		if err != nil {
			t.Fatal(err)
		}
		if err := tree.Check(); err != nil {
			t.Fatal(err)
		}
		for lo := 0; lo < n; lo++ {
			for hi := lo; hi < n; hi++ {
				assertTreeMatchesModel(t, tree, model(values), lo, hi)
			}
		}
	}
}

func TestRangeAddAgainstPointQueries(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	values := randomReadings(r, 37)
	tree, err := Build(values)
	if err != nil {
		t.Fatal(err)
	}
	lo, hi, delta := 9, 23, 4.0
	if err := tree.ApplyRange(lo, hi, Add(delta)); err != nil {
		t.Fatal(err)
	}
	for day, before := range values {
		after, ok, err := tree.Value(day)
		if err != nil || !ok {
			t.Fatalf("Value(%d) failed: ok=%v err=%v", day, ok, err)
		}
		want := before
		if lo <= day && day <= hi {
			want += delta
		}
		if after != want {
			t.Errorf("day %d: got=%g want=%g", day, after, want)
		}
	}
}

func TestRandomizedAgainstModel(t *testing.T) {
	seeds := []uint64{1, 2, 3, 7, 42, 99, 31337, 123456789}
	for _, seed := range seeds {
		t.Run("seed_"+strconv.FormatUint(seed, 10), func(t *testing.T) {
			runRandomSequence(t, seed, 200)
		})
	}
}

func FuzzRandomizedAgainstModel(f *testing.F) {
	f.Add(uint64(1), uint8(32))
	f.Add(uint64(7), uint8(64))
	f.Add(uint64(42), uint8(96))
	f.Fuzz(func(t *testing.T, seed uint64, steps uint8) {
		runRandomSequence(t, seed, int(steps%120)+1)
	})
}
