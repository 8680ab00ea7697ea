package mcts

import (
	"context"
	"sync/atomic"
)

// Limiter is the stop-condition check Driver.Run consults once per cycle:
// TreeNode depth, simulation count, wall-clock time, and an external stop
// flag (SetStop or context cancellation).
type Limiter struct {
	limits *Limits
	Timer  *_Timer
	stop   atomic.Bool
	ctx    context.Context
}

// NewLimiter builds a Limiter with DefaultLimits (unbounded except for an
// explicit stop).
func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		Timer:  _NewTimer(),
		ctx:    context.Background(),
	}
}

// Reset rearms the limiter for a fresh Driver.Run call: clears the stop
// flag and restarts the movetime clock from the current limits.
func (l *Limiter) Reset() {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()
	l.stop.Store(false)
}

// SetContext wires context cancellation into Stop; Driver.Run calls this
// with its own ctx before the first Reset.
func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

// SetStop requests the search stop as soon as the next Ok check runs.
func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

// Stop reports whether a stop was requested, via SetStop or the wired
// context being done.
func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Elapsed returns the milliseconds since the last Reset.
func (l *Limiter) Elapsed() uint32 {
	return uint32(l.Timer.Deltatime())
}

// Ok reports whether the search may continue: false once any bound is
// reached, regardless of Infinite, if a stop was requested.
func (l *Limiter) Ok(depth, cycles uint32) bool {
	if l.Stop() {
		return false
	}
	if l.limits.Infinite {
		return true
	}
	if l.Timer.IsEnd() {
		return false
	}
	if l.limits.Depth <= int(depth) {
		return false
	}
	if l.limits.Cycles <= cycles {
		return false
	}
	return true
}
