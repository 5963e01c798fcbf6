package mcts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

func TestNodeUCB1(t *testing.T) {
	t.Run("unvisited node scores +Inf", func(t *testing.T) {
		n := &Node{}
		got := n.ucb1(0, DefaultExplorationConstant, 10.0)
		assert.True(t, math.IsInf(got, 1))
	})

	t.Run("computes exploitation + exploration for the requested seat", func(t *testing.T) {
		n := &Node{Visits: 10}
		n.Wins[1] = 5.0

		got := n.ucb1(1, 2.0, math.Log(100))
		want := 5.0/10.0 + 2.0*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, want, got, 1e-9)
	})

	t.Run("exploration term shrinks as the node's own visits grow, win rate held constant", func(t *testing.T) {
		few := &Node{Visits: 4}
		few.Wins[0] = 2.0 // win rate 0.5
		many := &Node{Visits: 400}
		many.Wins[0] = 200.0 // win rate 0.5

		scoreFew := few.ucb1(0, 2.0, math.Log(100))
		scoreMany := many.ucb1(0, 2.0, math.Log(100))

		assert.Greater(t, scoreFew, scoreMany, "fewer visits should carry a larger exploration bonus")
	})
}

func TestNodeUpdateLogVisits(t *testing.T) {
	n := &Node{}
	n.updateLogVisits()
	assert.Equal(t, 0.0, n.LogVisits, "zero visits must not touch LogVisits")

	n.Visits = 8
	n.updateLogVisits()
	assert.InDelta(t, math.Log(8), n.LogVisits, 1e-9)
}

func TestNodeInitCapturesLegalMoves(t *testing.T) {
	state := game.NewState(2)
	n := &Node{}
	n.init(state, nil, game.LeaveTreasure, false, 2)

	assert.Equal(t, state.PossibleMoves(false), n.UnexpandedMoves)
	assert.False(t, n.isFullyExpanded())
	assert.Equal(t, 0, n.ChildCount)
	assert.Equal(t, 0, n.Visits)
}

func TestNodeIsTerminal(t *testing.T) {
	t.Run("a fresh, non-terminal state is not a terminal node", func(t *testing.T) {
		state := game.NewState(2)
		n := &Node{State: state}
		assert.False(t, n.isTerminal())
	})
}

func TestNodePool(t *testing.T) {
	t.Run("allocates nodes with a private child window", func(t *testing.T) {
		p := NewNodePool(1000)
		a := p.Allocate()
		b := p.Allocate()

		require.NotSame(t, a, b)
		assert.Equal(t, 0, len(a.Children))
		assert.Equal(t, childArraySize, cap(a.Children))
		assert.Equal(t, 2, p.Used())
	})

	t.Run("Reset rewinds the cursor without freeing the backing arrays", func(t *testing.T) {
		p := NewNodePool(1000)
		p.Allocate()
		p.Allocate()
		p.Reset()

		assert.Equal(t, 0, p.Used())
		n := p.Allocate()
		assert.Equal(t, 1, p.Used())
		assert.NotNil(t, n)
	})

	t.Run("below-minimum capacity is clamped to 1000", func(t *testing.T) {
		p := NewNodePool(10)
		assert.Equal(t, 1000, len(p.nodes))
	})

	t.Run("grows the arena once the initial capacity is exhausted", func(t *testing.T) {
		p := NewNodePool(1000)
		for i := 0; i < 1000; i++ {
			p.Allocate()
		}
		before := len(p.nodes)

		n := p.Allocate()

		assert.Greater(t, len(p.nodes), before)
		assert.NotNil(t, n)
		assert.Equal(t, 1001, p.Used())
	})
}

func TestSelectBestChildPrefersUnvisited(t *testing.T) {
	parent := &Node{State: game.NewState(2)}
	visited := &Node{Visits: 5, Wins: Rewards{2, 3}}
	unvisited := &Node{}

	parent.Children = []*Node{visited, unvisited}
	parent.ChildCount = 2

	best := selectBestChild(parent, DefaultExplorationConstant)
	assert.Same(t, unvisited, best)
}
