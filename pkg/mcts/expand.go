package mcts

// SetEvaluation attaches an evaluator's output to a TreeNode. It must be
// called before Expand for any TreeNode, since Expand's prior gather reads
// from the slices recorded here. Calling it twice is a no-op after the
// first call: evaluation happens once per TreeNode, at first expansion.
func (n *Node) SetEvaluation(result EvalResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tree == nil {
		precondition("SetEvaluation called on a %s, not a TreeNode", n.kind)
	}
	if n.tree.evaluated {
		return
	}
	n.tree.metaPriors = result.MetaPriors
	n.tree.specialPriors = result.SpecialPriors
	n.tree.value = result.Value
	n.tree.evaluated = true
}

// Value returns the TreeNode's evaluator value estimate. Panics if the node
// hasn't been evaluated yet.
func (n *Node) Value() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tree == nil {
		precondition("Value() called on a %s, not a TreeNode", n.kind)
	}
	if !n.tree.evaluated {
		precondition("Value() called before SetEvaluation")
	}
	return n.tree.value
}

// Expand populates a node's permissible sub-actions and their priors. It is
// idempotent: a node that already has permissible_chars recorded returns
// immediately. TreeNodes must have been evaluated (SetEvaluation) first.
//
// A node with no permissible sub-actions is a dead end: each of its parents
// immediately prunes the edge leading to it (cascading further up as parents
// become fully pruned), since there is nothing further to explore past it.
// The dead-end node itself keeps no per-child arrays, so it still reports
// IsLeaf and not IsFullyPruned.
func (n *Node) Expand(actionSpace ActionSpace) {
	n.mu.Lock()
	if len(n.permissibleChars) > 0 {
		n.mu.Unlock()
		return
	}
	if n.tree != nil && !n.tree.evaluated {
		n.mu.Unlock()
		precondition("Expand called on an unevaluated TreeNode")
	}
	n.mu.Unlock()

	ids, affected := actionSpace.FindPermissibleActions(n)

	n.mu.Lock()
	if len(n.permissibleChars) > 0 {
		n.mu.Unlock()
		return
	}

	if len(ids) == 0 {
		n.numUnprunedActions = 0
		parents := append([]parentEdge(nil), n.parents...)
		n.mu.Unlock()
		for _, p := range parents {
			p.node.Prune(p.index)
		}
		return
	}

	size := len(ids)
	n.permissibleChars = ids
	n.affected = affected
	n.children = make([]*Node, size)
	n.pruned = make([]bool, size)
	n.actionCounts = make([]int32, size)
	n.totalValues = make([]float64, size)
	n.maxValues = make([]float64, size)
	for i := range n.maxValues {
		n.maxValues[i] = negInf
	}
	n.numUnprunedActions = size

	source := n.priorSource()
	n.priors = gatherNormalized(source, ids)
	n.checkInvariants()
	n.mu.Unlock()
}

// priorSource returns the full-alphabet prior distribution this node's own
// gather step reads from. Callers must hold n.mu.
func (n *Node) priorSource() []float64 {
	switch {
	case n.tree != nil:
		return n.tree.metaPriors[PhaseBefore]
	case n.phase == PhaseSpecialType:
		return n.owner.tree.specialPriors
	default:
		return n.owner.tree.metaPriors[n.phase]
	}
}

// gatherNormalized picks out source[id] for each id in ids and renormalizes
// the result to sum to 1. If every gathered weight is zero (or source is
// empty), it falls back to a uniform distribution over ids.
func gatherNormalized(source []float64, ids []int) []float64 {
	out := make([]float64, len(ids))
	sum := 0.0
	for i, id := range ids {
		if id >= 0 && id < len(source) {
			out[i] = source[id]
		}
		sum += out[i]
	}
	if sum <= 0 {
		uniform := 1.0 / float64(len(ids))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// AddNoise mixes Dirichlet-style root exploration noise into a TreeNode's
// own priors in place: priors[i] = (1-ratio)*priors[i] + ratio*noise[i].
// noise must have the same length as the node's current priors. Used only
// at the search root, per node, once per call.
func (n *Node) AddNoise(noise []float64, ratio float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.priors) == 0 {
		precondition("AddNoise called on an unevaluated node")
	}
	if len(noise) != len(n.priors) {
		precondition("AddNoise noise length %d does not match priors length %d", len(noise), len(n.priors))
	}
	for i := range n.priors {
		n.priors[i] = (1-ratio)*n.priors[i] + ratio*noise[i]
	}
}
