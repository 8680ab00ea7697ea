package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTreeNodeDefaults(t *testing.T) {
	root := newTestTreeRoot()
	require.Equal(t, KindTree, root.Kind())
	require.Equal(t, PhaseBefore, root.Phase())
	require.False(t, root.Stopped())
	require.False(t, root.Persistent())
	require.Equal(t, -1, root.MaxIndex())
	require.True(t, root.IsLeaf())
	require.False(t, root.IsExpanded())
	require.False(t, root.IsEvaluated())
}

func TestNodeStateAndDepthPanicOnNonTree(t *testing.T) {
	owner := newTestTreeRoot()
	mini := newMiniNode(owner, PhaseAfter, CompositeAction{})

	require.Panics(t, func() { mini.State() })
	require.Panics(t, func() { mini.Depth() })
	require.Panics(t, func() { owner.Owner() })
}

func TestNewMiniNodeBecomesTransitionAtSpecialType(t *testing.T) {
	owner := newTestTreeRoot()
	mini := newMiniNode(owner, PhasePost, CompositeAction{})
	require.Equal(t, KindMini, mini.Kind())

	transition := newMiniNode(owner, PhaseSpecialType, CompositeAction{})
	require.Equal(t, KindTransition, transition.Kind())
}

func TestMarkStopped(t *testing.T) {
	root := newTestTreeRoot()
	require.False(t, root.Stopped())
	root.MarkStopped()
	require.True(t, root.Stopped())
}

func TestAffectedAtOutOfBoundsPanics(t *testing.T) {
	root := newTestTreeRoot()
	require.Panics(t, func() { root.AffectedAt(0) })
}
