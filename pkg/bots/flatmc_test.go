package bots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

func TestFlatMCFindBestMoveShortCircuitsWithOneLegalMove(t *testing.T) {
	f := NewFlatMC(2, 50)
	state := game.NewState(2)

	move := f.FindBestMove(state, 0, false)
	assert.Equal(t, game.Continue, move)
}

func TestFlatMCFindBestMovePicksAmongLegalMoves(t *testing.T) {
	f := NewFlatMC(2, 25)
	state := game.NewState(2).DoMove(game.Continue) // action phase: 2 legal moves

	move := f.FindBestMove(state, 0, true)
	assert.Contains(t, state.PossibleMoves(true), move)
}

func TestFlatMCWinnerPicksHighestScoreFirstOnTie(t *testing.T) {
	f := NewFlatMC(3, 1)
	state := game.NewState(3) // everyone starts at zero points

	assert.Equal(t, 0, f.winner(state))
}
