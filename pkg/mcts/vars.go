package mcts

import "time"

// VirtualLoss is the per-visit value subtracted from a sub-action's
// total_values while it is on an in-flight selection path, and added back
// during Backup. It is what keeps concurrent selectors from repeatedly
// piling onto the same leaf.
var VirtualLoss float64 = 1.0

// SetVirtualLoss overrides the default virtual loss.
func SetVirtualLoss(v float64) {
	VirtualLoss = v
}

// GameCount is the number of simultaneous selections a single VirtualSelect
// / Backup pair is allowed to represent; 1 for strict tree-parallel search.
var GameCount int32 = 1

// ExplorationParam is the PUCT exploration constant (c_puct): higher values
// favor under-visited, high-prior sub-actions, lower values favor
// exploitation of already-backed-up values.
var ExplorationParam float64 = 1.5

// SetExplorationParam overrides the default PUCT exploration constant.
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

// HeuristicParam weights the affected-site-count heuristic bonus term in
// GetScores against the PUCT exploration term.
var HeuristicParam float64 = 0.1

// SetHeuristicParam overrides the default heuristic weight.
func SetHeuristicParam(c float64) {
	HeuristicParam = max(0.0, c)
}

// NoiseRatio is the default mixing ratio AddNoise uses at the search root:
// priors[i] = (1-ratio)*priors[i] + ratio*noise[i].
var NoiseRatio float64 = 0.25

// SetNoiseRatio overrides the default root noise mixing ratio.
func SetNoiseRatio(r float64) {
	NoiseRatio = max(0.0, min(1.0, r))
}

type SeedGeneratorFnType func() int64

// SeedGeneratorFn produces the seed an Evaluator's noise sampler should use;
// by default it's derived from wall-clock time.
var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn overrides the default seed generator.
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
