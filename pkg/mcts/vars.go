package mcts

import "time"

// DefaultExplorationConstant is the UCB1 exploration coefficient the
// original simulator defaults to; sqrt(2) is the theoretical constant
// for rewards in [0, 1], but this value was hand-tuned for this game.
const DefaultExplorationConstant = 1.41

// DefaultTotalIterations is the total rollout budget split evenly
// across every worker when a coordinator is built without WithTotalIterations.
const DefaultTotalIterations = 10_000_000

// maxSimulationSteps bounds a single rollout, guarding against a
// pathological state that never reaches the last round's end.
const maxSimulationSteps = 500

// SeedGeneratorFn produces the base seed mixed into each worker's
// private RNG (see ParallelMCTS.FindBestMove). Defaults to the wall
// clock, same as the teacher's own seed hook; tests override it with
// SetSeedGeneratorFn for reproducible runs.
var SeedGeneratorFn func() int64 = func() int64 {
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn installs a custom seed source, letting tests pin
// every worker's RNG to a known sequence.
func SetSeedGeneratorFn(f func() int64) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
