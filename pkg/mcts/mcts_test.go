package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

func TestNewCoordinatorDefaults(t *testing.T) {
	m := NewCoordinator(4)

	assert.Equal(t, DefaultTotalIterations, m.totalIterations)
	assert.Equal(t, DefaultExplorationConstant, m.explorationConstant)
	assert.Greater(t, m.NumThreads(), 0)
	assert.Equal(t, m.totalIterations/m.numThreads, m.iterationsPerWorker)
}

func TestNewCoordinatorOptions(t *testing.T) {
	m := NewCoordinator(2,
		WithTotalIterations(1000),
		WithThreads(4),
		WithExplorationConstant(0.5),
	)

	assert.Equal(t, 1000, m.totalIterations)
	assert.Equal(t, 4, m.NumThreads())
	assert.Equal(t, 0.5, m.explorationConstant)
	assert.Equal(t, 250, m.iterationsPerWorker)
}

func TestWithThreadsIgnoresNonPositiveValues(t *testing.T) {
	m := NewCoordinator(2, WithThreads(0))
	assert.Greater(t, m.NumThreads(), 0)
}

func TestWithTotalIterationsIgnoresNonPositiveValues(t *testing.T) {
	m := NewCoordinator(2, WithTotalIterations(-5))
	assert.Equal(t, DefaultTotalIterations, m.totalIterations)
}

func TestFindBestMoveShortCircuitsWithOneLegalMove(t *testing.T) {
	m := NewCoordinator(2, WithThreads(2), WithTotalIterations(10))
	state := game.NewState(2) // only Continue is legal from the start

	move := m.FindBestMove(state, 0, false)
	assert.Equal(t, game.Continue, move)
}

func TestFindBestMoveIsDeterministicGivenTheSameSeedSource(t *testing.T) {
	original := SeedGeneratorFn
	defer SetSeedGeneratorFn(original)

	// One step into the action phase, where collect-or-leave gives the
	// search more than one option to actually weigh.
	base := game.NewState(2).DoMove(game.Continue)
	require.Len(t, base.PossibleMoves(true), 2)

	runSearch := func() game.MoveType {
		SetSeedGeneratorFn(func() int64 { return 1234 })
		m := NewCoordinator(2, WithThreads(2), WithTotalIterations(2000))
		return m.FindBestMove(base, 0, true)
	}

	require.Equal(t, runSearch(), runSearch())
}

func TestWorkerSeedVariesByThreadIndex(t *testing.T) {
	original := SeedGeneratorFn
	defer SetSeedGeneratorFn(original)
	SetSeedGeneratorFn(func() int64 { return 777 })

	assert.NotEqual(t, workerSeed(0), workerSeed(1))
}
