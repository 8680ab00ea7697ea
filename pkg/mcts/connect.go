package mcts

// GetEdge returns the child connected at index, or ErrUnexploredEdge if that
// sub-action has never been selected before.
func (n *Node) GetEdge(index int) (*Node, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 0 || index >= len(n.children) {
		return nil, outOfBounds(index, len(n.children))
	}
	child := n.children[index]
	if child == nil {
		return nil, unexploredEdge(index)
	}
	return child, nil
}

// ConnectIfAbsent links the result of build into n's children[index] slot,
// unless something else already claimed that slot first — in which case
// the existing child is returned and build's result (if any) is discarded.
// build may itself be a transposition-table lookup that returns an
// already-shared node with other parents, so the slot is claimed (with n
// locked) before the child is ever touched, and the back-edge is appended
// separately (with child locked) only by whichever caller actually won the
// race. n and child are never locked at the same time.
func (n *Node) ConnectIfAbsent(index int, build func() *Node) (child *Node, created bool) {
	n.mu.Lock()
	if existing := n.children[index]; existing != nil {
		n.mu.Unlock()
		return existing, false
	}
	n.mu.Unlock()

	child = build()

	n.mu.Lock()
	if existing := n.children[index]; existing != nil {
		n.mu.Unlock()
		return existing, false
	}
	n.children[index] = child
	n.mu.Unlock()

	child.mu.Lock()
	child.parents = append(child.parents, parentEdge{node: n, index: index})
	child.mu.Unlock()
	return child, true
}

// StepWithin advances from n at one of the five non-terminal phases
// (BEFORE..POST) to the next node in its composite-action subpath, via the
// sub-action chosen at index. If that edge hasn't been explored yet, a
// fresh MiniNode (or TransitionNode, if n's phase is POST) is created and
// connected; StepWithin never calls the Environment, since phases before
// SPECIAL_TYPE never change the underlying state.
//
// Precondition: n.Phase() must not be PhaseSpecialType (the terminal phase
// hands off to the Environment, not to StepWithin).
func (n *Node) StepWithin(index int) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	phase := n.phase
	if phase == PhaseSpecialType {
		precondition("StepWithin called on a SPECIAL_TYPE node; use the Environment instead")
	}
	if index < 0 || index >= len(n.permissibleChars) {
		panic(outOfBounds(index, len(n.permissibleChars)))
	}

	if existing := n.children[index]; existing != nil {
		return existing
	}

	actionID := n.permissibleChars[index]
	owner := n.owner
	if owner == nil {
		owner = n // n is itself the TreeNode starting this subpath
	}
	partial := n.partial.Set(phase, actionID)

	next, _ := phase.Next()
	child := newMiniNode(owner, next, partial)
	child.parents = append(child.parents, parentEdge{node: n, index: index})
	n.children[index] = child
	return child
}
