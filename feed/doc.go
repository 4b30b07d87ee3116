/*
Package feed serializes access to a tree of daily readings and broadcasts
every successful change to subscribers.

A Feed may be shared between goroutines. Updates are applied in the order in
which they acquire the feed, and subscribers receive changes in exactly this
order. Subscribers must drain their channel; a subscriber which stops reading
without cancelling its subscription will stall publishing.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package feed

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

// ErrClosed is returned for updates on a closed feed.
var ErrClosed = errors.New("feed: feed is closed")
