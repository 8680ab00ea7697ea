package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLimitsIsUnbounded(t *testing.T) {
	l := DefaultLimits()
	require.True(t, l.Infinite)
	require.Equal(t, 1, l.TopK)
}

func TestSetTopKFloorsAtOne(t *testing.T) {
	l := DefaultLimits().SetTopK(0)
	require.Equal(t, 1, l.TopK)

	l = DefaultLimits().SetTopK(5)
	require.Equal(t, 5, l.TopK)
}

func TestSettersClearInfinite(t *testing.T) {
	require.False(t, DefaultLimits().SetDepth(1).Infinite)
	require.False(t, DefaultLimits().SetCycles(1).Infinite)
	require.False(t, DefaultLimits().SetMovetime(1).Infinite)
}

func TestLimitsStringIsJSON(t *testing.T) {
	s := DefaultLimits().String()
	require.Contains(t, s, `"TopK"`)
}
