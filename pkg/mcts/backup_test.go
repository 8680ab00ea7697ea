package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVirtualSelectInflatesThenBackupReverses(t *testing.T) {
	root := expandedRoot(t, 2)

	root.VirtualSelect(0, 1, 1.0)
	require.Equal(t, int32(1), root.actionCounts[0])
	require.Equal(t, -1.0, root.totalValues[0])
	require.Equal(t, int32(1), root.VisitCount())

	Backup([]PathStep{{Node: root, Index: 0}}, 0.3, 1, 1.0)
	require.Equal(t, int32(1), root.actionCounts[0])
	require.InDelta(t, 0.3, root.totalValues[0], 1e-9)
}

func TestBackupPropagatesThroughMultipleHops(t *testing.T) {
	root := expandedRoot(t, 2)
	child := root.StepWithin(0)
	child.permissibleChars = []int{0}
	child.children = make([]*Node, 1)
	child.pruned = make([]bool, 1)
	child.actionCounts = make([]int32, 1)
	child.totalValues = make([]float64, 1)
	child.maxValues = []float64{negInf}
	child.numUnprunedActions = 1

	root.VirtualSelect(0, 1, 1.0)
	child.VirtualSelect(0, 1, 1.0)

	path := []PathStep{{Node: root, Index: 0}, {Node: child, Index: 0}}
	Backup(path, 1.0, 1, 1.0)

	require.InDelta(t, 1.0, child.totalValues[0], 1e-9)
	require.InDelta(t, 1.0, root.totalValues[0], 1e-9)
	require.Equal(t, 0, child.maxIndex)
	require.InDelta(t, 1.0, child.maxValue, 1e-9)
}

func TestBackupFoldsInTransitionReward(t *testing.T) {
	owner := newTestTreeRoot()
	transition := newMiniNode(owner, PhaseSpecialType, CompositeAction{})
	transition.permissibleChars = []int{0, 1}
	transition.children = make([]*Node, 2)
	transition.pruned = make([]bool, 2)
	transition.actionCounts = make([]int32, 2)
	transition.totalValues = make([]float64, 2)
	transition.maxValues = []float64{negInf, negInf}
	transition.numUnprunedActions = 2
	transition.transition.rewards = []float64{0, 2.5}

	transition.VirtualSelect(1, 1, 1.0)
	Backup([]PathStep{{Node: transition, Index: 1}}, 1.0, 1, 1.0)

	// leaf value 1.0 plus the recorded transition reward 2.5 == 3.5.
	require.InDelta(t, 3.5, transition.totalValues[1], 1e-9)
}

func TestVirtualSelectOutOfBoundsPanics(t *testing.T) {
	root := expandedRoot(t, 1)
	require.Panics(t, func() { root.VirtualSelect(5, 1, 1.0) })
}

func TestBackupInvariantBreakOnUnmatchedVirtualSelect(t *testing.T) {
	root := expandedRoot(t, 1)
	require.Panics(t, func() {
		Backup([]PathStep{{Node: root, Index: 0}}, 0.0, 1, 1.0)
	})
}
