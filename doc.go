/*
Package segtree offers range aggregates over a sequence of daily readings.

Segment Trees

A segment tree organizes a fixed sequence of values in a balanced binary tree,
where every node caches an aggregate of the contiguous range of values below it.
This package is aimed towards applications analysing a year (or any other span)
of daily temperature readings, where clients frequently ask questions like
"what was the hottest day in March?" and occasionally correct readings, either
for a single day or for a whole stretch of days ("add 3° to every day of the
heatwave").

Every node of a Tree caches the maximum, the minimum and the sum of its range,
together with the number of days carrying a reading. Range updates are applied
lazily: a node fully covered by an update adjusts its own aggregates and keeps
the update as a pending marker, which will be pushed down to its children only
when a later operation has to look below that node. This bounds both queries
and updates to O(log n) steps.

	t, err := segtree.Build([]float64{30, 32, 29, 35, 31})
	...
	hottest, _ := t.Query(1, 3, segtree.Max)        // 35
	_ = t.ApplyRange(0, 4, segtree.Add(2))          // heatwave
	s, _ := t.Summarize(0, 4)                       // s.Max == 37, s.MaxDay == 3

Day indices are zero-based offsets from a reference date chosen by the client.
Translating calendar dates to offsets is left to package readings.

A Tree is not safe for concurrent use. Clients sharing a tree between
goroutines should wrap it, for example with package feed.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package segtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the tracer selected with key 'segtree'.
func T() tracing.Trace {
	return tracing.Select("segtree")
}

// TreeError is an error type for the segtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrInvalidInput is flagged for malformed construction data or update operands,
// i.e. an empty sequence of values or values which are NaN or infinite.
const ErrInvalidInput = TreeError("invalid input")

// ErrIndexOutOfRange is flagged whenever a day index or a range bound lies
// outside of [0, N), or whenever a range has lo > hi.
const ErrIndexOutOfRange = TreeError("index out of range")

// ErrNoData is flagged by queries over a range where every day has had its
// reading removed.
const ErrNoData = TreeError("no data in range")

// ErrInvariant signals a broken internal tree invariant. It is reported by Check.
const ErrInvariant = TreeError("tree invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
