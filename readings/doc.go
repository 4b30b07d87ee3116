/*
Package readings provides API helpers to load daily temperature readings as
segment trees.

Readings are expected as CSV, one row per day, day 0 first. Cells which are
blank or read "NA", "NaN", "null", "None" or "-" mark days without a reading;
these days keep their position in the sequence and are removed from the tree
built by Series.Tree.

	series, err := readings.Load("yearly_weather_data.csv", nil)
	...
	tree, err := series.Tree()
	day, err := series.Day(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package readings

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

var (
	// ErrNoReadings signals an input without any data rows.
	ErrNoReadings = errors.New("readings: no readings found")
	// ErrBadValue signals a cell which is neither a number nor a missing-value marker.
	ErrBadValue = errors.New("readings: malformed value")
	// ErrNoColumn signals that the requested value column does not exist.
	ErrNoColumn = errors.New("readings: no such column")
	// ErrDateOutside signals a calendar date outside of the span of a series.
	ErrDateOutside = errors.New("readings: date outside of series")
)
