// Package actionspace is the single component aware of the six-phase
// composite-action semantics from outside pkg/mcts: given a node it
// recomputes, directly from the owning TreeNode's State and whatever
// sub-actions have already been chosen along the current subpath, which
// symbol ids are legal next, and the exact (word, position) sites each one
// would touch. Nothing about this conditioning logic is cached on the node;
// recomputing it from State each time keeps pkg/mcts entirely ignorant of
// what "permissible" actually means for this domain.
package actionspace

import (
	"sort"
	"sync"

	"github.com/sequencemcts/core/pkg/mcts"
	"github.com/sequencemcts/core/pkg/state"
	"github.com/sequencemcts/core/pkg/symbol"
)

// edge is a registered (before, after) substitution the action space will
// propose; an ActionSpace with no registered edges falls back to proposing
// whatever the alignment against the target vocabulary actually needs.
type edge struct {
	before symbol.Symbol
	after  symbol.Symbol
}

// ActionSpace implements mcts.ActionSpace over a fixed alphabet and an
// evolving registry of known sound-change edges. RegisterEdge lets a caller
// (typically seeded from a training corpus of attested changes) restrict
// which AFTER symbols are offered: once a BEFORE symbol has any registered
// edge, only its registered targets are offered for it. BEFORE symbols with
// no registered edge, and the BEFORE phase itself, are not restricted, since
// the alignment against the target is definitive there. The registry does
// not affect ordering: candidates are always returned sorted by symbol id.
type ActionSpace struct {
	alphabet symbol.Alphabet
	target   state.Target
	contextN int // how many positions left of a site D_PRE reads its context symbol

	mu    sync.RWMutex
	edges map[edge]bool
}

// New builds an ActionSpace over the given alphabet and target vocabulary.
// contextN controls how far left of a mismatch D_PRE looks (PRE always
// looks exactly one position left, POST exactly one position right).
func New(alphabet symbol.Alphabet, target state.Target, contextN int) *ActionSpace {
	if contextN < 1 {
		contextN = 2
	}
	return &ActionSpace{
		alphabet: alphabet,
		target:   target,
		contextN: contextN,
		edges:    make(map[edge]bool),
	}
}

// RegisterEdge records (before -> after) as a known sound-change edge.
func (a *ActionSpace) RegisterEdge(before, after symbol.Symbol) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.edges[edge{before, after}] = true
}

// SetActionAllowed registers (before -> after) when allowed is true, and
// removes it, if present, when allowed is false.
func (a *ActionSpace) SetActionAllowed(before, after symbol.Symbol, allowed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if allowed {
		a.edges[edge{before, after}] = true
	} else {
		delete(a.edges, edge{before, after})
	}
}

// edgesFrom reports whether any edge is registered with this before
// symbol, and whether the registry has any edges at all (used to decide
// whether to fall back to the unrestricted alignment-derived candidate set).
func (a *ActionSpace) edgesFrom(before symbol.Symbol) (afters map[symbol.Symbol]bool, anyRegistered bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	anyRegistered = len(a.edges) > 0
	afters = make(map[symbol.Symbol]bool)
	for e := range a.edges {
		if e.before == before {
			afters[e.after] = true
		}
	}
	return afters, anyRegistered
}

// FindPermissibleActions implements mcts.ActionSpace.
func (a *ActionSpace) FindPermissibleActions(node *mcts.Node) ([]int, [][]mcts.AffectedPos) {
	owner := node
	if node.Kind() != mcts.KindTree {
		owner = node.Owner()
	}
	sites := a.mismatchSites(owner)
	partial := node.PartialAction()

	switch node.Phase() {
	case mcts.PhaseBefore:
		return a.findBefore(sites)
	case mcts.PhaseAfter:
		return a.findAfter(sites, partial)
	case mcts.PhasePre:
		return a.findContext(sites, partial, -1)
	case mcts.PhaseDPre:
		return a.findContext(sites, partial, -a.contextN)
	case mcts.PhasePost:
		return a.findContext(sites, partial, 1)
	case mcts.PhaseSpecialType:
		return a.findSpecialType(sites, partial)
	default:
		return nil, nil
	}
}

// findBefore proposes every distinct source symbol at a mismatch site
// (substitution or deletion), mapped to all the sites it occurs at.
func (a *ActionSpace) findBefore(sites []site) ([]int, [][]mcts.AffectedPos) {
	bySymbol := map[symbol.Symbol][]mcts.AffectedPos{}
	for _, s := range sites {
		if s.src == symbol.PAD {
			continue
		}
		bySymbol[s.src] = append(bySymbol[s.src], mcts.AffectedPos{WordIndex: s.wordIndex, Position: s.position})
	}
	return collect(bySymbol)
}

// findAfter proposes every distinct target symbol observed at sites whose
// source symbol matches the already-chosen BEFORE sub-action, restricted to
// registered edges when any exist for that source symbol.
func (a *ActionSpace) findAfter(sites []site, partial mcts.CompositeAction) ([]int, [][]mcts.AffectedPos) {
	before := symbol.Symbol(partial.Before)
	afters, anyRegistered := a.edgesFrom(before)

	bySymbol := map[symbol.Symbol][]mcts.AffectedPos{}
	for _, s := range sites {
		if s.src != before || s.tgt == symbol.PAD {
			continue
		}
		if anyRegistered && len(afters) > 0 && !afters[s.tgt] {
			continue
		}
		bySymbol[s.tgt] = append(bySymbol[s.tgt], mcts.AffectedPos{WordIndex: s.wordIndex, Position: s.position})
	}
	return collect(bySymbol)
}

// findContext proposes the symbol actually observed at offset positions
// away from each site whose (before, after) already matches the partial
// action, restricted to sites where that context position exists.
func (a *ActionSpace) findContext(sites []site, partial mcts.CompositeAction, offset int) ([]int, [][]mcts.AffectedPos) {
	before := symbol.Symbol(partial.Before)
	after := symbol.Symbol(partial.After)

	bySymbol := map[symbol.Symbol][]mcts.AffectedPos{}
	for _, s := range sites {
		if s.src != before || s.tgt != after {
			continue
		}
		ctxSym, ok := s.contextAt(offset)
		if !ok {
			continue
		}
		bySymbol[ctxSym] = append(bySymbol[ctxSym], mcts.AffectedPos{WordIndex: s.wordIndex, Position: s.position})
	}
	return collect(bySymbol)
}

// Rule-application types proposed at the SPECIAL_TYPE phase. TypeStop is the
// terminal sub-action: choosing it declines to apply the (before, after)
// substitution the chain has assembled so far and hands the chain straight
// back to the Environment as a stopped edge (see env.Environment.Step).
const (
	TypeUnconditional = 0
	TypeConditioned   = 1
	TypeOptional      = 2
	TypeStop          = 3
)

// findSpecialType proposes the fixed small enum of rule-application types:
// unconditional, conditioned (on the PRE/D_PRE/POST context already chosen),
// and optional, each touching the sites matched by the chosen (before,
// after) pair, plus TypeStop, which is always selectable and touches
// nothing. A mismatch search that reaches SPECIAL_TYPE with no matching
// sites at all (the BEFORE/AFTER/context chain led to a dead end) still
// permits TypeStop, so the only way out of such a node is to stop rather
// than being pruned outright.
func (a *ActionSpace) findSpecialType(sites []site, partial mcts.CompositeAction) ([]int, [][]mcts.AffectedPos) {
	before := symbol.Symbol(partial.Before)
	after := symbol.Symbol(partial.After)

	var matched []mcts.AffectedPos
	for _, s := range sites {
		if s.src == before && s.tgt == after {
			matched = append(matched, mcts.AffectedPos{WordIndex: s.wordIndex, Position: s.position})
		}
	}
	if len(matched) == 0 {
		return []int{TypeStop}, [][]mcts.AffectedPos{nil}
	}

	return []int{TypeUnconditional, TypeConditioned, TypeOptional, TypeStop},
		[][]mcts.AffectedPos{matched, matched, matched, nil}
}

// contextAt returns the symbol offset positions away from s within its
// word, and whether that position exists. mismatchSites only ever compares
// against the word's own sequence, so context is read straight from it.
func (s site) contextAt(offset int) (symbol.Symbol, bool) {
	pos := s.position + offset
	if pos < 0 || pos >= len(s.wordSeq) {
		return symbol.PAD, false
	}
	return s.wordSeq[pos], true
}

func collect(bySymbol map[symbol.Symbol][]mcts.AffectedPos) ([]int, [][]mcts.AffectedPos) {
	if len(bySymbol) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(bySymbol))
	for sym := range bySymbol {
		ids = append(ids, int(sym))
	}
	sort.Ints(ids)

	affected := make([][]mcts.AffectedPos, len(ids))
	for i, id := range ids {
		affected[i] = bySymbol[symbol.Symbol(id)]
	}
	return ids, affected
}
