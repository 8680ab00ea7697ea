package word

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sequencemcts/core/pkg/symbol"
)

func seq(ids ...int32) IdSequence {
	s := make(IdSequence, len(ids))
	for i, id := range ids {
		s[i] = symbol.Symbol(id)
	}
	return s
}

func TestEditDistanceIdentical(t *testing.T) {
	dist, alignment := EditDistance(seq(1, 2, 3), seq(1, 2, 3))
	require.Equal(t, 0, dist)
	for _, op := range alignment {
		require.Equal(t, OpMatch, op.Op)
	}
}

func TestEditDistanceSubstitution(t *testing.T) {
	dist, alignment := EditDistance(seq(1, 2, 3), seq(1, 9, 3))
	require.Equal(t, 1, dist)
	require.Len(t, alignment, 3)
	require.Equal(t, OpSubstitute, alignment[1].Op)
	require.Equal(t, 1, alignment[1].SrcPos)
	require.Equal(t, 1, alignment[1].TgtPos)
}

func TestEditDistanceInsertDelete(t *testing.T) {
	dist, alignment := EditDistance(seq(1, 2), seq(1, 2, 3))
	require.Equal(t, 1, dist)
	last := alignment[len(alignment)-1]
	require.Equal(t, OpInsert, last.Op)
	require.Equal(t, -1, last.SrcPos)
	require.Equal(t, 2, last.TgtPos)

	dist, alignment = EditDistance(seq(1, 2, 3), seq(1, 2))
	require.Equal(t, 1, dist)
	last = alignment[len(alignment)-1]
	require.Equal(t, OpDelete, last.Op)
	require.Equal(t, 2, last.SrcPos)
	require.Equal(t, -1, last.TgtPos)
}

func TestEditDistanceEmpty(t *testing.T) {
	dist, alignment := EditDistance(seq(), seq(1, 2))
	require.Equal(t, 2, dist)
	require.Len(t, alignment, 2)
}

func TestWordDistanceToMemoizes(t *testing.T) {
	tbl := NewTable()
	w := tbl.Intern(seq(1, 2, 3))

	d1, a1 := w.DistanceTo(seq(1, 9, 3), 0)
	d2, a2 := w.DistanceTo(seq(1, 9, 3), 0)
	require.Equal(t, d1, d2)
	require.Equal(t, a1, a2)

	// A different order caches independently.
	d3, _ := w.DistanceTo(seq(9, 9, 9), 1)
	require.NotEqual(t, d1, d3)
}

func TestTableInternSharesIdentity(t *testing.T) {
	tbl := NewTable()
	w1 := tbl.Intern(seq(1, 2, 3))
	w2 := tbl.Intern(seq(1, 2, 3))
	require.Same(t, w1, w2)
	require.Equal(t, 1, tbl.Size())

	w3 := tbl.Intern(seq(1, 2, 4))
	require.NotSame(t, w1, w3)
	require.Equal(t, 2, tbl.Size())
}

func TestIdSequenceEqual(t *testing.T) {
	require.True(t, seq(1, 2).Equal(seq(1, 2)))
	require.False(t, seq(1, 2).Equal(seq(1, 3)))
	require.False(t, seq(1, 2).Equal(seq(1, 2, 3)))
}
