package mcts

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when an action id falls outside
// [0, len(permissible_chars)). Callers must not mutate node state after
// receiving this error.
var ErrOutOfBounds = errors.New("mcts: action id out of bounds")

// ErrUnexploredEdge is returned by GetEdge when asked for the child of an
// action id the node has never selected (its child slot is still nil).
var ErrUnexploredEdge = errors.New("mcts: edge has not been explored")

// outOfBounds wraps ErrOutOfBounds with the offending index for diagnostics.
func outOfBounds(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfBounds, index, size)
}

func unexploredEdge(index int) error {
	return fmt.Errorf("%w: index %d", ErrUnexploredEdge, index)
}

// precondition panics with a PreconditionViolation-class message: scoring or
// selecting on an unexpanded/unevaluated node, or playing through a node
// with no recorded max index, are programmer errors and never recoverable.
func precondition(format string, args ...any) {
	panic("mcts: precondition violation: " + fmt.Sprintf(format, args...))
}

// invariantBreak panics with an InvariantBreak-class message: it indicates a
// backup call with no matching virtual-select, or a double-backup.
func invariantBreak(format string, args ...any) {
	panic("mcts: invariant break: " + fmt.Sprintf(format, args...))
}
