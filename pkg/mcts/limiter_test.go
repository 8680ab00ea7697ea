package mcts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterOkUnboundedUntilStop(t *testing.T) {
	l := NewLimiter()
	l.Reset()
	require.True(t, l.Ok(0, 0))

	l.SetStop(true)
	require.False(t, l.Ok(0, 0))
}

func TestLimiterOkRespectsDepthAndCycles(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits().SetDepth(3))
	l.Reset()
	require.True(t, l.Ok(2, 0))
	require.False(t, l.Ok(3, 0))

	l.SetLimits(DefaultLimits().SetCycles(10))
	l.Reset()
	require.True(t, l.Ok(0, 9))
	require.False(t, l.Ok(0, 10))
}

func TestLimiterOkRespectsMovetime(t *testing.T) {
	l := NewLimiter()
	l.SetLimits(DefaultLimits().SetMovetime(1))
	l.Reset()
	time.Sleep(5 * time.Millisecond)
	require.False(t, l.Ok(0, 0))
}

func TestLimiterStopFollowsContextCancellation(t *testing.T) {
	l := NewLimiter()
	ctx, cancel := context.WithCancel(context.Background())
	l.SetContext(ctx)
	l.Reset()
	require.True(t, l.Ok(0, 0))

	cancel()
	require.False(t, l.Ok(0, 0))
}

func TestLimiterElapsedIsMonotonic(t *testing.T) {
	l := NewLimiter()
	l.Reset()
	time.Sleep(2 * time.Millisecond)
	require.GreaterOrEqual(t, l.Elapsed(), uint32(1))
}
