package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeffar/Deep-Diver-AI/internal/pool"
	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

func TestWorkerSearchReturnsStatsForEveryLegalMove(t *testing.T) {
	pool.SetDeterministic(true)
	defer pool.SetDeterministic(false)

	state := game.NewState(2)
	w := newWorker(2, 200, DefaultExplorationConstant, 1)

	results := w.search(state, 0, false)

	legal := state.PossibleMoves(false)
	require.Len(t, results, len(legal))

	seen := make(map[game.MoveType]bool, len(results))
	for _, r := range results {
		seen[r.Move] = true
		assert.GreaterOrEqual(t, r.TotalVisits, 0)
	}
	for _, m := range legal {
		assert.True(t, seen[m], "every legal root move must appear in the search results")
	}
}

func TestWorkerSearchIsDeterministicGivenTheSameSeed(t *testing.T) {
	pool.SetDeterministic(true)
	defer pool.SetDeterministic(false)

	state := game.NewState(2)

	w1 := newWorker(2, 500, DefaultExplorationConstant, 42)
	r1 := w1.search(state, 0, false)

	w2 := newWorker(2, 500, DefaultExplorationConstant, 42)
	r2 := w2.search(state, 0, false)

	assert.Equal(t, r1, r2)
}

func TestWorkerSearchDiffersAcrossSeeds(t *testing.T) {
	pool.SetDeterministic(true)
	defer pool.SetDeterministic(false)

	state := game.NewState(2)

	w1 := newWorker(2, 2000, DefaultExplorationConstant, 1)
	r1 := w1.search(state, 0, false)

	w2 := newWorker(2, 2000, DefaultExplorationConstant, 2)
	r2 := w2.search(state, 0, false)

	assert.NotEqual(t, r1, r2, "different worker seeds should explore the tree differently")
}

func TestWorkerRewardsSplitEvenlyOnATie(t *testing.T) {
	w := newWorker(3, 1, DefaultExplorationConstant, 1)
	state := game.NewState(3)

	rewards := w.rewards(state)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/3.0, rewards[i], 1e-9)
	}
}

func TestWorkerRandomMoveWithSingleOptionIsDeterministic(t *testing.T) {
	w := newWorker(2, 1, DefaultExplorationConstant, 1)
	move := w.randomMove([]game.MoveType{game.Return})
	assert.Equal(t, game.Return, move)
}

func TestWorkerBackpropagateWalksToRoot(t *testing.T) {
	p := NewNodePool(1000)
	root := p.Allocate()
	root.init(game.NewState(2), nil, game.LeaveTreasure, false, 2)
	child := p.Allocate()
	child.init(root.State, root, game.Continue, false, 2)

	w := newWorker(2, 1, DefaultExplorationConstant, 1)
	rewards := Rewards{0.25, 0.75}
	w.backpropagate(child, rewards)

	assert.Equal(t, 1, child.Visits)
	assert.Equal(t, 1, root.Visits)
	assert.Equal(t, rewards[0], root.Wins[0])
	assert.Equal(t, rewards[1], root.Wins[1])
}
