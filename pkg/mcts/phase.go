package mcts

// ActionPhase is one position in the composite-action chain. A TreeNode
// itself resolves the BEFORE phase; the five phases after it are each
// resolved by one intermediate node (MiniNode for the first four,
// TransitionNode for the last), after which the chain hands off to the
// Environment to produce the next TreeNode.
type ActionPhase int

const (
	PhaseBefore ActionPhase = iota
	PhaseAfter
	PhasePre
	PhaseDPre
	PhasePost
	PhaseSpecialType

	numPhases = int(PhaseSpecialType) + 1
)

func (p ActionPhase) String() string {
	switch p {
	case PhaseBefore:
		return "BEFORE"
	case PhaseAfter:
		return "AFTER"
	case PhasePre:
		return "PRE"
	case PhaseDPre:
		return "D_PRE"
	case PhasePost:
		return "POST"
	case PhaseSpecialType:
		return "SPECIAL_TYPE"
	default:
		return "UNKNOWN"
	}
}

// Next returns the phase that follows p in the chain, and false when p is
// the last phase (PhaseSpecialType), at which point the chain transitions to
// a new TreeNode via the Environment rather than to another mini node.
func (p ActionPhase) Next() (ActionPhase, bool) {
	if p == PhaseSpecialType {
		return p, false
	}
	return p + 1, true
}

// CompositeAction is the fully resolved 6-phase sub-action tuple describing
// one edge from a TreeNode to its successor. Play and the Environment both
// operate in terms of this type once all phases have been chosen; whether
// the edge actually halted search (SpecialType resolved to the
// ActionSpace's stop sub-action, or the Environment's own done-state
// detection) is a property of the resulting TreeNode, read back off it
// with Node.Stopped rather than carried on this struct.
type CompositeAction struct {
	Before      int
	After       int
	Pre         int
	DPre        int
	Post        int
	SpecialType int
}

// Get returns the sub-action chosen at the given phase.
func (c CompositeAction) Get(p ActionPhase) int {
	switch p {
	case PhaseBefore:
		return c.Before
	case PhaseAfter:
		return c.After
	case PhasePre:
		return c.Pre
	case PhaseDPre:
		return c.DPre
	case PhasePost:
		return c.Post
	case PhaseSpecialType:
		return c.SpecialType
	default:
		panic("mcts: unknown action phase")
	}
}

// Set returns a copy of c with the sub-action at phase p set to id.
func (c CompositeAction) Set(p ActionPhase, id int) CompositeAction {
	switch p {
	case PhaseBefore:
		c.Before = id
	case PhaseAfter:
		c.After = id
	case PhasePre:
		c.Pre = id
	case PhaseDPre:
		c.DPre = id
	case PhasePost:
		c.Post = id
	case PhaseSpecialType:
		c.SpecialType = id
	default:
		panic("mcts: unknown action phase")
	}
	return c
}
