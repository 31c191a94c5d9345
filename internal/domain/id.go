package domain

import (
	"sync/atomic"
	"time"
)

// IDGenerator issues task identifiers derived from the creation time in
// milliseconds, the format browser clients already treat as an opaque
// number. Two calls within the same millisecond never collide: each id is
// max(now, last+1).
type IDGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

// NewIDGenerator creates an IDGenerator backed by the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Seed makes subsequent ids strictly greater than floor. Stores call this
// with their highest persisted id so a restarted process with a clock that
// went backwards cannot reissue an id.
func (g *IDGenerator) Seed(floor int64) {
	for {
		cur := g.last.Load()
		if floor <= cur || g.last.CompareAndSwap(cur, floor) {
			return
		}
	}
}

// Next returns a new unique identifier.
func (g *IDGenerator) Next() int64 {
	for {
		cur := g.last.Load()
		next := g.now().UnixMilli()
		if next <= cur {
			next = cur + 1
		}
		if g.last.CompareAndSwap(cur, next) {
			return next
		}
	}
}
