// Package env implements the Environment side of the search: given a
// resolved composite action, it applies the substitution(s) it describes to
// the owning TreeNode's words, canonicalises the resulting state through
// the transposition table, and computes the edge's reward.
package env

import (
	"github.com/sequencemcts/core/pkg/actionspace"
	"github.com/sequencemcts/core/pkg/mcts"
	"github.com/sequencemcts/core/pkg/state"
	"github.com/sequencemcts/core/pkg/symbol"
	"github.com/sequencemcts/core/pkg/ttable"
	"github.com/sequencemcts/core/pkg/word"
)

// Environment implements mcts.Environment. StepPenalty is added to every
// edge (a constant cost for taking any action at all, keeping the search
// from preferring arbitrarily long solutions with zero per-step cost);
// DistReward scales the reduction in total edit distance the step achieved;
// FinalReward is added on a step whose resulting state is the designated
// end state or has zero distance to the target.
type Environment struct {
	words  *word.Table
	target state.Target
	table  *ttable.Table[*mcts.Node]

	End *mcts.Node

	StepPenalty float64
	DistReward  float64
	FinalReward float64
}

// New builds an Environment. end is the persistent TreeNode representing
// the search's goal state; it must already be registered in table under its
// own state key.
func New(words *word.Table, target state.Target, table *ttable.Table[*mcts.Node], end *mcts.Node) *Environment {
	return &Environment{
		words:       words,
		target:      target,
		table:       table,
		End:         end,
		StepPenalty: -0.01,
		DistReward:  1.0,
		FinalReward: 10.0,
	}
}

// Step implements mcts.Environment.
//
// A TypeStop sub-action declines the substitution the chain assembled and
// short-circuits back to owner itself (its key is unchanged, so the
// transposition table hands back the same TreeNode), marked stopped: search
// below it is inhibited from here on.
func (e *Environment) Step(from *mcts.Node, index int, action mcts.CompositeAction) (*mcts.Node, float64) {
	owner := from.Owner()
	prevState := owner.State()

	if action.SpecialType == actionspace.TypeStop {
		next, _ := from.ConnectIfAbsent(index, func() *mcts.Node {
			created, _ := e.table.GetOrInsert(prevState.Key(), func() *mcts.Node {
				return mcts.NewTreeNode(prevState, owner.Depth()+1, false)
			})
			return created
		})
		next.MarkStopped()
		return next, e.StepPenalty
	}

	affected := from.AffectedAt(index)

	words := append([]*word.Word(nil), prevState.Words...)
	for _, pos := range affected {
		seq := append(word.IdSequence(nil), words[pos.WordIndex].Seq...)
		seq[pos.Position] = symbol.Symbol(action.After)
		words[pos.WordIndex] = e.words.Intern(seq)
	}

	newState := state.New(words, e.target)
	key := newState.Key()

	next, _ := from.ConnectIfAbsent(index, func() *mcts.Node {
		created, _ := e.table.GetOrInsert(key, func() *mcts.Node {
			return mcts.NewTreeNode(newState, owner.Depth()+1, false)
		})
		return created
	})

	reward := e.StepPenalty + e.DistReward*float64(prevState.Dist-newState.Dist)
	if next == e.End || newState.Done {
		reward += e.FinalReward
		next.MarkStopped()
	}
	return next, reward
}
