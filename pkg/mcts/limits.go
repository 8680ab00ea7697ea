package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Limits bounds one Driver.Run call: the search stops as soon as any
// non-default field is reached, or immediately on SetStop(true)/context
// cancellation regardless of Infinite.
type Limits struct {
	Depth    int
	Cycles   uint32
	Movetime int
	Infinite bool
	TopK     int
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = math.MaxInt
	DefaultMovetimeLimit int    = -1
	DefaultCyclesLimit   uint32 = math.MaxInt32*2 + 1
)

// DefaultLimits returns an unbounded search: only SetStop/context
// cancellation will end it.
func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		TopK:     1,
	}
}

// SetDepth bounds the search to TreeNode depths strictly below depth.
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// SetCycles bounds the number of simulations Driver.Run performs.
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// SetMovetime bounds wall-clock search time, in milliseconds.
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) {
	l.Infinite = infinite
}

// SetTopK sets how many of a node's highest-scoring sub-actions
// Driver.TopCandidates reports alongside the single GetBestSubaction choice.
func (l *Limits) SetTopK(k int) *Limits {
	l.TopK = max(1, k)
	return l
}
