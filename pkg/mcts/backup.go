package mcts

// PathStep is one (node, chosen index) hop recorded during selection, in
// root-to-leaf order. Backup walks it in reverse.
type PathStep struct {
	Node  *Node
	Index int
}

// VirtualSelect applies virtual-loss inflation at one hop of a selection
// path: it makes the edge look worse to concurrent selectors until Backup
// reverses the effect, which is what lets many goroutines walk the same
// tree region without repeatedly picking the identical leaf.
func (n *Node) VirtualSelect(index int, gameCount int32, virtualLoss float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 0 || index >= len(n.actionCounts) {
		panic(outOfBounds(index, len(n.actionCounts)))
	}
	n.actionCounts[index] += gameCount
	n.totalValues[index] -= float64(gameCount) * virtualLoss
	n.visitCount += gameCount
}

// Backup reverses the path's virtual-loss inflation and folds in the
// leaf's value V, walking from leaf-adjacent hop to root. TransitionNode
// hops additionally add their recorded per-child reward to the running
// value before it continues propagating upward, so an edge's reward is
// counted into every ancestor's statistics, not just the transition's own.
//
// It is an invariant violation for any hop's action_counts[index] to drop
// below 1 after reversal: that would mean Backup ran without a matching
// prior VirtualSelect, or ran twice for the same selection.
func Backup(path []PathStep, leafValue float64, gameCount int32, virtualLoss float64) {
	v := leafValue
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		n := step.Node

		n.mu.Lock()
		if n.kind == KindTransition && n.transition != nil && step.Index < len(n.transition.rewards) {
			v += n.transition.rewards[step.Index]
		}

		n.actionCounts[step.Index] -= gameCount - 1
		n.totalValues[step.Index] += float64(gameCount)*virtualLoss + v
		n.visitCount -= gameCount - 1

		if n.actionCounts[step.Index] < 1 {
			invariantBreak("action_counts[%d]=%d < 1 after backup on a %s", step.Index, n.actionCounts[step.Index], n.kind)
		}

		if v > n.maxValues[step.Index] {
			n.maxValues[step.Index] = v
		}
		if v > n.maxValue {
			n.maxValue = v
			n.maxIndex = step.Index
		}
		n.mu.Unlock()
	}
}
