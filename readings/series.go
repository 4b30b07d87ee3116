package readings

import (
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/segtree"
)

// Series is a sequence of daily readings starting at a calendar date.
type Series struct {
	Start   time.Time // date of day 0, at midnight UTC
	Values  []float64 // one reading per day; days listed in Missing hold 0
	Missing []int     // days without reading, ascending
}

// Len returns the number of days of the series.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Values)
}

// Tree builds a segment tree over the readings of s. Days without reading are
// removed from the tree.
func (s *Series) Tree() (*segtree.Tree, error) {
	if s.Len() == 0 {
		return nil, ErrNoReadings
	}
	t, err := segtree.Build(s.Values)
	if err != nil {
		return nil, err
	}
	for _, day := range s.Missing {
		if err := t.Remove(day); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Day translates a calendar date to a day index of s.
func (s *Series) Day(date time.Time) (int, error) {
	d := dayOf(date).Sub(s.Start).Hours() / 24
	day := int(math.Round(d))
	if day < 0 || day >= s.Len() {
		return -1, fmt.Errorf("%w: %s, series spans %s…%s", ErrDateOutside,
			date.Format(DateLayout), s.Start.Format(DateLayout), s.Date(s.Len()-1).Format(DateLayout))
	}
	return day, nil
}

// Date translates a day index of s to its calendar date.
func (s *Series) Date(day int) time.Time {
	return s.Start.AddDate(0, 0, day)
}

// dayOf normalizes t to midnight UTC of its calendar date.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
