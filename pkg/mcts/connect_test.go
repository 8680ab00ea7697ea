package mcts

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sequencemcts/core/pkg/state"
)

func TestGetEdgeUnexploredAndOutOfBounds(t *testing.T) {
	root := expandedRoot(t, 2)

	_, err := root.GetEdge(0)
	require.ErrorIs(t, err, ErrUnexploredEdge)

	_, err = root.GetEdge(5)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestConnectIfAbsentOnlyWinnerAppendsParentEdge(t *testing.T) {
	root := expandedRoot(t, 2)
	shared := NewTreeNode(state.State{}, 1, false)

	const workers = 16
	var wg sync.WaitGroup
	built := make([]int32, 1)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root.ConnectIfAbsent(0, func() *Node {
				built[0]++
				return shared
			})
		}()
	}
	wg.Wait()

	child, err := root.GetEdge(0)
	require.NoError(t, err)
	require.Same(t, shared, child)

	child.mu.Lock()
	numParents := len(child.parents)
	child.mu.Unlock()
	require.Equal(t, 1, numParents, "only the winning caller may append a parent back-edge")
}

func TestStepWithinCreatesAndReusesMiniNode(t *testing.T) {
	root := expandedRoot(t, 2)

	child1 := root.StepWithin(0)
	require.Equal(t, KindMini, child1.Kind())
	require.Equal(t, PhaseAfter, child1.Phase())

	child2 := root.StepWithin(0)
	require.Same(t, child1, child2)
}

func TestStepWithinPanicsOnSpecialTypePhase(t *testing.T) {
	owner := newTestTreeRoot()
	transition := newMiniNode(owner, PhaseSpecialType, CompositeAction{})
	transition.permissibleChars = []int{0}
	transition.children = make([]*Node, 1)

	require.Panics(t, func() { transition.StepWithin(0) })
}
