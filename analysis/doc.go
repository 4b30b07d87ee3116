/*
Package analysis provides some pre-manufactured reports on daily readings.

Reports are computed on top of a Source, which is usually a *segtree.Tree or a
*feed.Feed. Every report but MovingAverage takes O(log n) steps (plus the size
of its result); MovingAverage takes O(n log n).

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package analysis

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

var (
	// ErrBadWindow signals a negative moving-average window.
	ErrBadWindow = errors.New("analysis: window must not be negative")
	// ErrBadDirection signals an unknown threshold direction.
	ErrBadDirection = errors.New("analysis: direction must be above or below")
)
