package mcts

import (
	"sync"

	"github.com/sequencemcts/core/pkg/state"
)

// NodeKind discriminates the three node shapes the search tree is built
// from. A single concrete struct carries every kind (see design notes): the
// kind-specific payload (tree or transition extras) hangs off an optional
// pointer rather than living in a separate embedded type, so that children,
// parents, and per-child statistic arrays are handled identically by every
// piece of code that doesn't care which kind it's looking at.
type NodeKind uint8

const (
	KindTree NodeKind = iota
	KindMini
	KindTransition
)

func (k NodeKind) String() string {
	switch k {
	case KindTree:
		return "TreeNode"
	case KindMini:
		return "MiniNode"
	case KindTransition:
		return "TransitionNode"
	default:
		return "UnknownNode"
	}
}

// AffectedPos is one (word_index, position) pair touched by a sub-action.
type AffectedPos struct {
	WordIndex int
	Position  int
}

// parentEdge is a back-edge to a parent and the index into that parent's
// per-child arrays this node occupies. Indices into parent arrays are used
// instead of pointers into the child so that pruning can walk upward
// without the child needing to know its own position from the inside.
type parentEdge struct {
	node  *Node
	index int
}

// treeExtra is the payload only TreeNodes carry.
type treeExtra struct {
	state state.State
	depth int

	evaluated     bool
	metaPriors    [5][]float64 // indexed by phase: Before, After, Pre, DPre, Post
	specialPriors []float64
	value         float64
}

// transitionExtra is the payload only TransitionNodes carry: the per-child
// reward the Environment computed when it produced each candidate next
// TreeNode.
type transitionExtra struct {
	rewards []float64
}

// Node is the single concrete node type backing BaseNode, MiniNode,
// TransitionNode, and TreeNode. All fields below the mutex are protected by
// it; callers outside this package never touch them directly, only through
// the exported methods in this file and scoring.go/expand.go/backup.go/
// prune.go/play.go.
type Node struct {
	mu sync.Mutex

	kind  NodeKind
	phase ActionPhase // phase whose sub-actions this node's children enumerate

	stopped    bool
	persistent bool
	played     bool

	// owner/partial are set on non-tree nodes only: owner is the TreeNode
	// whose subpath this node belongs to, and partial is the composite
	// action accumulated so far along that subpath (not including this
	// node's own phase, which is resolved by permissibleChars below).
	owner   *Node
	partial CompositeAction

	permissibleChars []int
	affected         [][]AffectedPos
	children         []*Node
	parents          []parentEdge

	priors       []float64
	pruned       []bool
	actionCounts []int32
	totalValues  []float64
	maxValues    []float64

	visitCount         int32
	maxIndex           int
	maxValue           float64
	numUnprunedActions int

	tree       *treeExtra
	transition *transitionExtra
}

// NewTreeNode creates a fresh, unexpanded TreeNode for st. persistent nodes
// (the search's start and end states) are exempt from subtree GC.
func NewTreeNode(st state.State, depth int, persistent bool) *Node {
	return &Node{
		kind:       KindTree,
		phase:      PhaseBefore,
		stopped:    false,
		persistent: persistent,
		maxIndex:   -1,
		maxValue:   negInf,
		tree:       &treeExtra{state: st, depth: depth},
	}
}

// newMiniNode creates a MiniNode or TransitionNode (phase ==
// PhaseSpecialType) owned by the given TreeNode's subpath, carrying the
// sub-actions chosen so far.
func newMiniNode(owner *Node, phase ActionPhase, partial CompositeAction) *Node {
	n := &Node{
		kind:     KindMini,
		phase:    phase,
		owner:    owner,
		partial:  partial,
		maxIndex: -1,
		maxValue: negInf,
	}
	if phase == PhaseSpecialType {
		n.kind = KindTransition
		n.transition = &transitionExtra{}
	}
	return n
}

// Persistent reports whether the node is exempt from subtree GC. Satisfies
// ttable.Node.
func (n *Node) Persistent() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.persistent
}

// Kind returns the node's discriminator.
func (n *Node) Kind() NodeKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.kind
}

// Phase returns the phase whose sub-actions this node's children enumerate.
func (n *Node) Phase() ActionPhase {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.phase
}

// State returns the TreeNode's state. Panics if called on a non-TreeNode.
func (n *Node) State() state.State {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tree == nil {
		precondition("State() called on a %s, not a TreeNode", n.kind)
	}
	return n.tree.state
}

// Depth returns the TreeNode's depth. Panics if called on a non-TreeNode.
func (n *Node) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tree == nil {
		precondition("Depth() called on a %s, not a TreeNode", n.kind)
	}
	return n.tree.depth
}

// PartialAction returns the sub-actions chosen so far along this node's
// subpath. For TreeNodes this is always the zero CompositeAction (a fresh
// subpath starts at phase BEFORE with nothing chosen).
func (n *Node) PartialAction() CompositeAction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.partial
}

// Owner returns the TreeNode whose subpath this node belongs to. Panics if
// called on a TreeNode itself (TreeNodes own themselves).
func (n *Node) Owner() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.owner == nil {
		precondition("Owner() called on a %s with no owning TreeNode", n.kind)
	}
	return n.owner
}

// Stopped reports whether this node's search is inhibited by a previously
// selected stop sub-action.
func (n *Node) Stopped() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stopped
}

// MarkStopped marks a TreeNode's search as inhibited: it has no further
// legal continuation the Environment is willing to explore (e.g. it is the
// designated end state). Called by the Environment after Step, never by
// pkg/mcts itself.
func (n *Node) MarkStopped() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
}

// IsExpanded reports whether ActionSpace has already populated
// permissible_chars for this node.
func (n *Node) IsExpanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.permissibleChars) > 0
}

// IsEvaluated reports whether priors have been attached.
func (n *Node) IsEvaluated() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.priors) > 0
}

// IsLeaf reports whether the node has no expanded children yet (the
// selection loop's stopping condition).
func (n *Node) IsLeaf() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.permissibleChars) == 0
}

// NumActions returns the number of permissible sub-actions at this node.
func (n *Node) NumActions() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.permissibleChars)
}

// VisitCount returns the node's visit count (including any outstanding
// virtual-loss inflation).
func (n *Node) VisitCount() int32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visitCount
}

// MaxIndex returns the index of the best observed child by max_value, or -1
// if no child has been backed up yet.
func (n *Node) MaxIndex() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.maxIndex
}

// AffectedAt returns the (word, position) sites the action space recorded
// for the sub-action at index.
func (n *Node) AffectedAt(index int) []AffectedPos {
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 0 || index >= len(n.affected) {
		panic(outOfBounds(index, len(n.affected)))
	}
	return n.affected[index]
}

// checkInvariants verifies the BaseNode per-child array length agreement
// and the num_unpruned_actions bookkeeping (spec.md §8 properties 1-2).
// Callers must hold n.mu. Panics (fatal assertion) on violation.
func (n *Node) checkInvariants() {
	size := len(n.permissibleChars)
	if len(n.affected) != size || len(n.children) != size || len(n.pruned) != size ||
		len(n.actionCounts) != size || len(n.totalValues) != size || len(n.maxValues) != size {
		invariantBreak("per-child array length mismatch on a %s (size=%d)", n.kind, size)
	}
	if len(n.priors) != 0 && len(n.priors) != size {
		invariantBreak("priors length mismatch on a %s (size=%d, priors=%d)", n.kind, size, len(n.priors))
	}
	unpruned := 0
	for _, p := range n.pruned {
		if !p {
			unpruned++
		}
	}
	if unpruned != n.numUnprunedActions {
		invariantBreak("num_unpruned_actions=%d but counted %d", n.numUnprunedActions, unpruned)
	}
}

const negInf = -1e308
