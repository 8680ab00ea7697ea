package mcts

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sequencemcts/core/pkg/state"
	"github.com/sequencemcts/core/pkg/symbol"
	"github.com/sequencemcts/core/pkg/ttable"
)

// Driver ties a transposition table, an ActionSpace, an Environment, and an
// Evaluator together into one search session. It holds no tree state of its
// own beyond the table: every TreeNode reachable from a root lives in the
// table, and Driver's methods are safe to call from many goroutines at
// once, which is what ParallelSelect relies on.
type Driver struct {
	Table      *ttable.Table[*Node]
	Actions    ActionSpace
	Env        Environment
	Eval       Evaluator
	Limiter    *Limiter
	PuctC      float64
	HeurC      float64
	NoiseRatio float64

	// AddNoise mixes ε = uniform(0, 1e-8) into GetScores during selection,
	// per spec.md §4.2, so concurrent selectors don't all break exact PUCT
	// ties toward the same lowest index. Deterministic callers (tests,
	// replay) set this false.
	AddNoise bool
}

// NewDriver builds a Driver with the package's default exploration
// constants; callers override PuctC/HeurC/NoiseRatio directly.
func NewDriver(table *ttable.Table[*Node], actions ActionSpace, env Environment, eval Evaluator) *Driver {
	return &Driver{
		Table:      table,
		Actions:    actions,
		Env:        env,
		Eval:       eval,
		Limiter:    NewLimiter(),
		PuctC:      ExplorationParam,
		HeurC:      HeuristicParam,
		NoiseRatio: NoiseRatio,
		AddNoise:   true,
	}
}

// Run drives repeated rounds of ParallelSelect from root until the Driver's
// Limiter reports a stop condition (depth/cycle/time budget, or an external
// SetStop/context cancellation). Each round runs batchSize simulations
// concurrently across workers goroutines.
func (d *Driver) Run(ctx context.Context, root *Node, batchSize, workers int) error {
	d.Limiter.SetContext(ctx)
	d.Limiter.Reset()
	var cycles uint32

	for {
		depth := uint32(0)
		if root.Kind() == KindTree {
			depth = uint32(root.Depth())
		}
		if !d.Limiter.Ok(depth, cycles) {
			return nil
		}
		if err := d.ParallelSelect(ctx, root, batchSize, workers); err != nil {
			return err
		}
		cycles += uint32(batchSize)
	}
}

// Select walks from root down through already-expanded nodes, applying
// virtual loss at every hop, until it reaches a node that still needs
// expanding (IsLeaf), a dead end (IsFullyPruned), or a node whose search is
// inhibited (Stopped). The returned path is in root-to-leaf order, ready to
// hand to Backup once the leaf is resolved.
func (d *Driver) Select(root *Node) (path []PathStep, leaf *Node) {
	cur := root
	for {
		if cur.IsFullyPruned() || cur.IsLeaf() || cur.Stopped() {
			return path, cur
		}

		idx, actionID := cur.GetBestSubaction(d.PuctC, d.HeurC, d.AddNoise)
		cur.VirtualSelect(idx, GameCount, VirtualLoss)
		path = append(path, PathStep{Node: cur, Index: idx})

		if cur.Phase() == PhaseSpecialType {
			action := cur.PartialAction().Set(PhaseSpecialType, actionID)
			next, reward := d.Env.Step(cur, idx, action)
			cur.recordTransitionReward(idx, reward)
			cur = next
			continue
		}
		cur = cur.StepWithin(idx)
	}
}

// recordTransitionReward stores the reward the Environment computed for
// sub-action index on a TransitionNode, so Backup can fold it into every
// ancestor's statistics when it walks back over this hop.
func (n *Node) recordTransitionReward(index int, reward float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.transition == nil {
		precondition("recordTransitionReward called on a %s, not a TransitionNode", n.kind)
	}
	if len(n.transition.rewards) == 0 {
		n.transition.rewards = make([]float64, len(n.permissibleChars))
	}
	n.transition.rewards[index] = reward
}

// Simulate runs one full iteration from root: select down to a leaf,
// evaluate and expand it if it is a fresh TreeNode, then back the result up
// the path. Fully-pruned dead ends back up a zero value without touching
// the Evaluator.
func (d *Driver) Simulate(root *Node) {
	path, leaf := d.Select(root)

	if leaf.IsFullyPruned() {
		Backup(path, 0, GameCount, VirtualLoss)
		return
	}

	var value float64
	if leaf.Kind() == KindTree && !leaf.IsEvaluated() {
		results := d.Eval.EvaluateBatch([]*Node{leaf})
		leaf.SetEvaluation(results[0])
	}
	if leaf.Kind() == KindTree {
		value = leaf.Value()
	}
	leaf.Expand(d.Actions)

	Backup(path, value, GameCount, VirtualLoss)
}

// ParallelSelect runs n independent simulations concurrently from root, at
// most workers at a time. Each goroutine selects, evaluates, expands and
// backs up its own leaf: a leaf TreeNode that needs evaluation is passed to
// the shared Evaluator on its own, as a batch of one. Leaves from different
// simulations are not gathered into a common Evaluator batch.
func (d *Driver) ParallelSelect(ctx context.Context, root *Node, n int, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			d.Simulate(root)
			return nil
		})
	}
	return g.Wait()
}

// TopCandidates reports up to the Limiter's configured Limits.TopK
// highest-scoring unpruned sub-actions at node, for callers (an external RL
// loop, a diagnostics endpoint) that want a short-list of candidates rather
// than just GetBestSubaction's single argmax.
func (d *Driver) TopCandidates(node *Node) []PathStep {
	k := 1
	if d.Limiter != nil && d.Limiter.Limits() != nil {
		k = d.Limiter.Limits().TopK
	}
	return node.TopCandidates(d.PuctC, d.HeurC, d.AddNoise, k)
}

// ParallelGetActionMasks computes, for each given node, the boolean mask of
// which of its permissible sub-actions remain unpruned. Useful for exposing
// a batch of legal-action masks to an external evaluator or RL loop.
func (d *Driver) ParallelGetActionMasks(ctx context.Context, nodes []*Node) ([][]bool, error) {
	masks := make([][]bool, len(nodes))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(len(nodes) + 1)

	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			node.mu.Lock()
			mask := make([]bool, len(node.pruned))
			for j, p := range node.pruned {
				mask[j] = !p
			}
			node.mu.Unlock()
			masks[i] = mask
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return masks, nil
}

// ParallelStackIDs computes the transposition-table key for each of the
// given states concurrently, preserving input order in the result.
func ParallelStackIDs(ctx context.Context, nodes []*Node) [][]uint64 {
	keys := make([][]uint64, len(nodes))
	var wg errgroup.Group
	for i, node := range nodes {
		i, node := i, node
		wg.Go(func() error {
			keys[i] = node.State().Key()
			return nil
		})
	}
	_ = wg.Wait()
	return keys
}

// ParallelStackSymbols builds the dense [N, MaxLen, W] symbol tensor an
// external evaluator batches over: tensor[n][pos][w] is the symbol at
// position pos of node n's w'th word, or symbol.PAD once pos reaches or
// passes that word's own length. MaxLen is the longest word's length across
// every node and every word slot in the batch; every node must carry the
// same word count W (the search's vocabulary size never changes mid-run), or
// ParallelStackSymbols panics.
func ParallelStackSymbols(ctx context.Context, nodes []*Node) (tensor [][][]symbol.Symbol, maxLen int) {
	if len(nodes) == 0 {
		return nil, 0
	}

	states := make([]state.State, len(nodes))
	w := len(nodes[0].State().Words)
	for i, node := range nodes {
		st := node.State()
		if len(st.Words) != w {
			precondition("ParallelStackSymbols: node %d has %d words, want %d", i, len(st.Words), w)
		}
		states[i] = st
		for _, word := range st.Words {
			if len(word.Seq) > maxLen {
				maxLen = len(word.Seq)
			}
		}
	}

	tensor = make([][][]symbol.Symbol, len(states))
	var wg errgroup.Group
	for i, st := range states {
		i, st := i, st
		wg.Go(func() error {
			rows := make([][]symbol.Symbol, maxLen)
			for pos := range rows {
				row := make([]symbol.Symbol, w)
				for j, word := range st.Words {
					if pos < len(word.Seq) {
						row[j] = word.Seq[pos]
					} else {
						row[j] = symbol.PAD
					}
				}
				rows[pos] = row
			}
			tensor[i] = rows
			return nil
		})
	}
	_ = wg.Wait()
	return tensor, maxLen
}
