package evaluator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/sequencemcts/core/pkg/mcts"
)

// NoiseSampler draws Dirichlet(alpha, ..., alpha) exploration noise for
// mixing into a root TreeNode's priors via Node.AddNoise, the same
// symmetric-Dirichlet root noise scheme used for PUCT exploration in
// self-play tree search.
type NoiseSampler struct {
	alpha float64
	src   rand.Source
}

// NewNoiseSampler builds a sampler with concentration alpha, seeded from
// mcts.SeedGeneratorFn.
func NewNoiseSampler(alpha float64) *NoiseSampler {
	return &NoiseSampler{
		alpha: alpha,
		src:   rand.NewSource(uint64(mcts.SeedGeneratorFn())),
	}
}

// Sample draws one Dirichlet noise vector of length n.
func (s *NoiseSampler) Sample(n int) []float64 {
	if n <= 0 {
		return nil
	}
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = s.alpha
	}

	d, ok := distmv.NewDirichlet(alpha, s.src)
	if !ok {
		uniform := make([]float64, n)
		w := 1.0 / float64(n)
		for i := range uniform {
			uniform[i] = w
		}
		return uniform
	}
	return d.Rand(nil)
}

// AddRootNoise mixes freshly sampled Dirichlet noise into a TreeNode's own
// priors, in place, at the given ratio.
func (s *NoiseSampler) AddRootNoise(root *mcts.Node, ratio float64) {
	n := root.NumActions()
	root.AddNoise(s.Sample(n), ratio)
}
