package segtree

import (
	"fmt"
	"math"
	"strings"
)

// Summary aggregates the readings of a range of days.
//
// Max and Min carry the day they occur on. If more than one day carries the
// extreme value, the earliest one is reported. A Summary of a range without
// readings has Count == 0, Max = -Inf, Min = +Inf and days set to -1.
type Summary struct {
	Max    float64
	MaxDay int
	Min    float64
	MinDay int
	Sum    float64
	Count  int // number of days carrying a reading
}

// Average returns Sum/Count, or NaN for an empty summary.
func (s Summary) Average() float64 {
	if s.Count == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Count)
}

// IsEmpty is true if no day of the summarized range carries a reading.
func (s Summary) IsEmpty() bool {
	return s.Count == 0
}

// Metric returns the value of the summary for a query metric.
func (s Summary) Metric(m Metric) float64 {
	switch m {
	case Max:
		return s.Max
	case Min:
		return s.Min
	}
	return s.Average()
}

func (s Summary) String() string {
	if s.IsEmpty() {
		return "{no data}"
	}
	return fmt.Sprintf("{max=%g@%d min=%g@%d sum=%g n=%d}", s.Max, s.MaxDay,
		s.Min, s.MinDay, s.Sum, s.Count)
}

// Monoid aggregates summaries of adjacent ranges.
//
// For summaries s, t, u, Add is associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero is the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Add expects left to summarize days preceding the days of right.
type Monoid struct{}

// Zero returns the neutral summary value.
func (Monoid) Zero() Summary {
	return Summary{
		Max:    math.Inf(-1),
		MaxDay: -1,
		Min:    math.Inf(1),
		MinDay: -1,
	}
}

// Add combines two summaries.
func (Monoid) Add(left, right Summary) Summary {
	s := Summary{
		Max:    left.Max,
		MaxDay: left.MaxDay,
		Min:    left.Min,
		MinDay: left.MinDay,
		Sum:    left.Sum + right.Sum,
		Count:  left.Count + right.Count,
	}
	if right.Max > left.Max {
		s.Max, s.MaxDay = right.Max, right.MaxDay
	}
	if right.Min < left.Min {
		s.Min, s.MinDay = right.Min, right.MinDay
	}
	return s
}

// Metric selects the aggregate a range query reports.
type Metric uint8

// Query metrics
const (
	Max Metric = iota
	Min
	Average
)

func (m Metric) String() string {
	switch m {
	case Max:
		return "max"
	case Min:
		return "min"
	case Average:
		return "average"
	}
	return "<unknown metric>"
}

// ParseMetric finds a metric from a string, ignoring case.
// It recognizes "max", "min", "avg" and "average".
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximum":
		return Max, nil
	case "min", "minimum":
		return Min, nil
	case "avg", "average", "mean":
		return Average, nil
	}
	return Max, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, s)
}
