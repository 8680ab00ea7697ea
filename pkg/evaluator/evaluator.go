// Package evaluator provides reference implementations of mcts.Evaluator:
// a uniform NullEvaluator for tests and cold-start search, and root
// exploration noise sampled from a Dirichlet distribution.
package evaluator

import (
	"github.com/sequencemcts/core/pkg/mcts"
	"github.com/sequencemcts/core/pkg/symbol"
)

// NullEvaluator returns a uniform prior over the full alphabet for every
// phase and a zero value estimate. It never calls out to anything external,
// which makes it the right default for unit tests and for search sessions
// running ahead of a trained external evaluator.
type NullEvaluator struct {
	Alphabet symbol.Alphabet
}

// EvaluateBatch implements mcts.Evaluator.
func (e NullEvaluator) EvaluateBatch(nodes []*mcts.Node) []mcts.EvalResult {
	uniform := make([]float64, e.Alphabet.Size)
	if e.Alphabet.Size > 0 {
		w := 1.0 / float64(e.Alphabet.Size)
		for i := range uniform {
			uniform[i] = w
		}
	}

	results := make([]mcts.EvalResult, len(nodes))
	for i := range results {
		var r mcts.EvalResult
		for p := 0; p < 5; p++ {
			r.MetaPriors[p] = append([]float64(nil), uniform...)
		}
		r.SpecialPriors = append([]float64(nil), uniform...)
		results[i] = r
	}
	return results
}
