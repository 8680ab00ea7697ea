package actionspace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sequencemcts/core/pkg/mcts"
)

// Result is one node's computed permissible sub-actions and affected sites.
type Result struct {
	IDs      []int
	Affected [][]mcts.AffectedPos
}

// FindPermissibleActionsBatch computes FindPermissibleActions for every
// node concurrently, capping in-flight work at workers, and preserves
// input order in the result slice regardless of completion order.
func (a *ActionSpace) FindPermissibleActionsBatch(ctx context.Context, nodes []*mcts.Node, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			ids, affected := a.FindPermissibleActions(node)
			results[i] = Result{IDs: ids, Affected: affected}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
