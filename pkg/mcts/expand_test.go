package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandPanicsIfUnevaluated(t *testing.T) {
	root := newTestTreeRoot()
	require.Panics(t, func() { root.Expand(fixedActionSpace{branch: 3}) })
}

func TestExpandPopulatesPriorsAndChildren(t *testing.T) {
	root := newTestTreeRoot()
	eval := uniformEvaluator{size: 8, value: 0.5}
	root.SetEvaluation(eval.EvaluateBatch([]*Node{root})[0])

	root.Expand(fixedActionSpace{branch: 3})

	require.True(t, root.IsExpanded())
	require.Equal(t, 3, root.NumActions())
	require.Equal(t, 0.5, root.Value())

	// Idempotent: calling again must not change state.
	root.Expand(fixedActionSpace{branch: 99})
	require.Equal(t, 3, root.NumActions())
}

func TestSetEvaluationIsIdempotent(t *testing.T) {
	root := newTestTreeRoot()
	root.SetEvaluation(EvalResult{Value: 1.0})
	root.SetEvaluation(EvalResult{Value: 2.0})
	require.Equal(t, 1.0, root.Value())
}

func TestValuePanicsBeforeEvaluation(t *testing.T) {
	root := newTestTreeRoot()
	require.Panics(t, func() { root.Value() })
}

func TestExpandWithNoActionsPrunesParents(t *testing.T) {
	root := newTestTreeRoot()
	root.SetEvaluation(EvalResult{})
	root.Expand(fixedActionSpace{branch: 1})

	child, _ := root.ConnectIfAbsent(0, func() *Node { return NewTreeNode(root.State(), 1, false) })
	child.SetEvaluation(EvalResult{})

	child.Expand(deadEndActionSpace{})

	require.True(t, root.IsFullyPruned())
}

func TestGatherNormalizedUniformFallback(t *testing.T) {
	out := gatherNormalized(nil, []int{0, 1, 2})
	require.Len(t, out, 3)
	for _, v := range out {
		require.InDelta(t, 1.0/3.0, v, 1e-9)
	}
}

func TestGatherNormalizedSumsToOne(t *testing.T) {
	source := []float64{0.1, 0.2, 0.3, 0.4}
	out := gatherNormalized(source, []int{1, 3})
	sum := out[0] + out[1]
	require.InDelta(t, 1.0, sum, 1e-9)
	require.InDelta(t, 0.2/0.6, out[0], 1e-9)
}

func TestAddNoiseMixesInPlace(t *testing.T) {
	root := newTestTreeRoot()
	root.SetEvaluation(uniformEvaluator{size: 4}.EvaluateBatch([]*Node{root})[0])
	root.Expand(fixedActionSpace{branch: 4})

	before := append([]float64(nil), root.priors...)
	noise := []float64{1, 0, 0, 0}
	root.AddNoise(noise, 0.25)

	require.InDelta(t, 0.75*before[0]+0.25, root.priors[0], 1e-9)
	require.InDelta(t, 0.75*before[1], root.priors[1], 1e-9)
}

func TestAddNoiseLengthMismatchPanics(t *testing.T) {
	root := newTestTreeRoot()
	root.SetEvaluation(uniformEvaluator{size: 4}.EvaluateBatch([]*Node{root})[0])
	root.Expand(fixedActionSpace{branch: 4})

	require.Panics(t, func() { root.AddNoise([]float64{1, 2}, 0.25) })
}
