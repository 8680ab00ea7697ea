package mcts

import (
	"sync/atomic"

	"github.com/sequencemcts/core/pkg/state"
)

// fixedActionSpace is a test double for ActionSpace: it always offers the
// same branch factor of sub-actions, regardless of node or phase, with one
// affected position per action so Expand's bookkeeping has something to
// check against.
type fixedActionSpace struct {
	branch int
}

func (f fixedActionSpace) FindPermissibleActions(n *Node) ([]int, [][]AffectedPos) {
	ids := make([]int, f.branch)
	affected := make([][]AffectedPos, f.branch)
	for i := range ids {
		ids[i] = i
		affected[i] = []AffectedPos{{WordIndex: 0, Position: i}}
	}
	return ids, affected
}

// deadEndActionSpace always reports no permissible actions, forcing Expand
// to prune immediately.
type deadEndActionSpace struct{}

func (deadEndActionSpace) FindPermissibleActions(n *Node) ([]int, [][]AffectedPos) {
	return nil, nil
}

// uniformEvaluator is a test double for Evaluator returning a uniform
// distribution and a fixed value for every node.
type uniformEvaluator struct {
	size  int
	value float64
}

func (u uniformEvaluator) EvaluateBatch(nodes []*Node) []EvalResult {
	w := 1.0 / float64(u.size)
	uniform := make([]float64, u.size)
	for i := range uniform {
		uniform[i] = w
	}
	results := make([]EvalResult, len(nodes))
	for i := range results {
		var r EvalResult
		for p := 0; p < 5; p++ {
			r.MetaPriors[p] = append([]float64(nil), uniform...)
		}
		r.SpecialPriors = append([]float64(nil), uniform...)
		r.Value = u.value
		results[i] = r
	}
	return results
}

// chainEnv is a test double for Environment: Step always produces a fresh,
// distinct TreeNode (never transposes), with a constant reward.
type chainEnv struct {
	reward float64
	depth  int64
}

func (e *chainEnv) Step(from *Node, index int, action CompositeAction) (*Node, float64) {
	depth := atomic.AddInt64(&e.depth, 1)
	next := NewTreeNode(state.State{}, int(depth), false)
	next, _ = from.ConnectIfAbsent(index, func() *Node { return next })
	return next, e.reward
}

func newTestTreeRoot() *Node {
	return NewTreeNode(state.State{}, 0, false)
}
