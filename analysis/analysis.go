package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/segtree"
)

// Source is a sequence of daily readings answering range queries.
// *segtree.Tree implements Source.
type Source interface {
	Len() int
	Summarize(lo, hi int) (segtree.Summary, error)
	Value(day int) (float64, bool, error)
	DaysAbove(lo, hi int, threshold float64) ([]int, error)
	DaysBelow(lo, hi int, threshold float64) ([]int, error)
}

// Reading is the reading of a single day.
type Reading struct {
	Day   int
	Value float64
}

// Extremes holds the hottest and the coldest day of a series.
type Extremes struct {
	Hottest Reading
	Coldest Reading
}

// FindExtremes reports the hottest and coldest day of all of src.
// On ties the earliest day is reported.
func FindExtremes(src Source) (Extremes, error) {
	s, err := src.Summarize(0, src.Len()-1)
	if err != nil {
		return Extremes{}, fmt.Errorf("analysis.FindExtremes could not be applied: %w", err)
	}
	return Extremes{
		Hottest: Reading{Day: s.MaxDay, Value: s.Max},
		Coldest: Reading{Day: s.MinDay, Value: s.Min},
	}, nil
}

// ClimateSummary summarizes all of a series.
type ClimateSummary struct {
	Average float64 // average over days with reading
	Records int     // number of days with reading
	Days    int     // number of days, including days without reading
}

// Climate reports the average reading of all of src.
func Climate(src Source) (ClimateSummary, error) {
	s, err := src.Summarize(0, src.Len()-1)
	if err != nil {
		return ClimateSummary{Days: src.Len()}, fmt.Errorf("analysis.Climate could not be applied: %w", err)
	}
	return ClimateSummary{
		Average: s.Average(),
		Records: s.Count,
		Days:    src.Len(),
	}, nil
}

// RangeReport holds the analytics for a range of days.
type RangeReport struct {
	Lo, Hi  int
	Summary segtree.Summary
}

// Average returns the average reading within the range.
func (r RangeReport) Average() float64 {
	return r.Summary.Average()
}

// Range reports max, min and average for days [lo, hi].
func Range(src Source, lo, hi int) (RangeReport, error) {
	s, err := src.Summarize(lo, hi)
	if err != nil {
		return RangeReport{Lo: lo, Hi: hi}, err
	}
	return RangeReport{Lo: lo, Hi: hi, Summary: s}, nil
}

// ---------------------------------------------------------------------------

// Direction selects days above or below a threshold.
type Direction int

// Threshold directions
const (
	Above Direction = iota
	Below
)

func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "above"
}

// ParseDirection finds a direction from "above" or "below", ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "above", "a", ">":
		return Above, nil
	case "below", "b", "<":
		return Below, nil
	}
	return Above, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Alerts returns every day with a reading strictly above (below) threshold,
// in ascending order of days.
func Alerts(src Source, threshold float64, dir Direction) ([]Reading, error) {
	var days []int
	var err error
	switch dir {
	case Above:
		days, err = src.DaysAbove(0, src.Len()-1, threshold)
	case Below:
		days, err = src.DaysBelow(0, src.Len()-1, threshold)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadDirection, dir)
	}
	if err != nil {
		return nil, err
	}
	alerts := make([]Reading, 0, len(days))
	for _, day := range days {
		v, ok, err := src.Value(day)
		if err != nil {
			return nil, err
		}
		if ok {
			alerts = append(alerts, Reading{Day: day, Value: v})
		}
	}
	tracer().Debugf("%d days %v %g", len(alerts), dir, threshold)
	return alerts, nil
}

// ---------------------------------------------------------------------------

// MovingAverage computes, for every day d, the average over the window of days
// [d-k, d+k], clipped to the span of src. Windows without any reading yield NaN.
func MovingAverage(src Source, k int) ([]float64, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWindow, k)
	}
	n := src.Len()
	averages := make([]float64, n)
	for day := 0; day < n; day++ {
		lo, hi := max(0, day-k), min(n-1, day+k)
		s, err := src.Summarize(lo, hi)
		if errors.Is(err, segtree.ErrNoData) {
			averages[day] = math.NaN()
			continue
		} else if err != nil {
			return nil, err
		}
		averages[day] = s.Average()
	}
	tracer().Debugf("moving average over %d days with window ±%d", n, k)
	return averages, nil
}
