package mcts

import (
	"math"
	"math/rand"
	"sort"
)

// pruneScore is the score assigned to a pruned sub-action so it never wins
// an argmax against a live one, regardless of how lopsided the other terms
// get.
const pruneScore = -9999.9

// epsilonScale bounds the tie-break noise get_scores mixes in when addNoise
// is set: uniform(0, epsilonScale).
const epsilonScale = 1e-8

// GetScores computes the PUCT + heuristic selection score for every
// permissible sub-action of an expanded, evaluated node:
//
//	q[i] = total_values[i] / (action_counts[i] + 1e-8)
//	u[i] = puct_c * priors[i] * sqrt(visit_count) / (1 + action_counts[i])
//	h[i] = heur_c * sqrt(len(affected[i])) / (1 + action_counts[i])
//	ε[i] = addNoise ? uniform(0, 1e-8) : 0
//	score[i] = pruned[i] ? -9999.9 : q[i] + u[i] + h[i] + ε[i]
//
// h biases toward sub-actions that touch more (word, position) sites, per
// the action space's affected-site bookkeeping; it is not a function of
// max_values, which is surfaced separately as max_index/max_value for Play.
// Pruned actions score pruneScore unconditionally.
func (n *Node) GetScores(puctC, heurC float64, addNoise bool) []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.permissibleChars) == 0 || len(n.priors) == 0 {
		precondition("GetScores called on an unexpanded or unevaluated node")
	}
	if n.stopped {
		precondition("GetScores called on a stopped node")
	}

	scores := make([]float64, len(n.permissibleChars))
	sqrtN := math.Sqrt(float64(n.visitCount))
	for i := range scores {
		if n.pruned[i] {
			scores[i] = pruneScore
			continue
		}

		q := n.totalValues[i] / (float64(n.actionCounts[i]) + 1e-8)
		u := puctC * n.priors[i] * sqrtN / float64(1+n.actionCounts[i])
		h := heurC * math.Sqrt(float64(len(n.affected[i]))) / float64(1+n.actionCounts[i])

		eps := 0.0
		if addNoise {
			eps = rand.Float64() * epsilonScale
		}

		scores[i] = q + u + h + eps
	}
	return scores
}

// GetBestSubaction returns the index into the node's per-child arrays with
// the highest GetScores value, and the permissible sub-action id at that
// index. Ties resolve to the lowest index.
func (n *Node) GetBestSubaction(puctC, heurC float64, addNoise bool) (index, actionID int) {
	scores := n.GetScores(puctC, heurC, addNoise)

	n.mu.Lock()
	defer n.mu.Unlock()

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best, n.permissibleChars[best]
}

// TopCandidates returns up to k (index, actionID) pairs for the node's
// highest-scoring unpruned sub-actions, sorted best first, ties broken by
// index. Callers asking for more than the node's unpruned count get all of
// them.
func (n *Node) TopCandidates(puctC, heurC float64, addNoise bool, k int) []PathStep {
	scores := n.GetScores(puctC, heurC, addNoise)

	n.mu.Lock()
	defer n.mu.Unlock()

	indices := make([]int, 0, len(scores))
	for i, p := range n.pruned {
		if !p {
			indices = append(indices, i)
		}
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	if k < len(indices) {
		indices = indices[:k]
	}
	out := make([]PathStep, len(indices))
	for i, idx := range indices {
		out[i] = PathStep{Node: n, Index: idx}
	}
	return out
}
