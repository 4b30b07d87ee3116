/*
Package report renders reports on daily readings for consoles and browsers.

Console output is meant for terminals with a fixed-width font. Columns are
aligned by display width (UAX#11), not by byte or rune count, so labels
containing characters like ‘°’ or East Asian wide characters still line up.
Readings at or above a hot threshold, and at or below a cold threshold, are
colored if the terminal supports it.

HTML output produces a self-contained document with a single table of
readings.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}
