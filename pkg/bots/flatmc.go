package bots

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/Zeffar/Deep-Diver-AI/internal/pool"
	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

// maxFlatRolloutSteps bounds a single random playout in FlatMC,
// guarding against a pathological non-terminating sequence.
const maxFlatRolloutSteps = 10_000

// FlatMC is a flat (non-tree) Monte Carlo evaluator: for every legal
// move it runs rolloutsPerMove independent random playouts to the end
// of the game and picks the move with the best observed win rate for
// playerIndex. It never builds a search tree, unlike pkg/mcts.
type FlatMC struct {
	numPlayers      int
	rolloutsPerMove int
	rng             *rand.Rand
}

// NewFlatMC builds a flat Monte Carlo engine for a numPlayers-seat
// game, running rolloutsPerMove playouts per candidate move.
func NewFlatMC(numPlayers, rolloutsPerMove int) *FlatMC {
	return &FlatMC{
		numPlayers:      numPlayers,
		rolloutsPerMove: rolloutsPerMove,
		rng:             rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (f *FlatMC) FindBestMove(state game.State, playerIndex int, movedThisTurn bool) game.MoveType {
	pool.SetDeterministic(true)
	defer pool.SetDeterministic(false)

	moves := state.PossibleMoves(movedThisTurn)
	if len(moves) == 0 {
		return game.LeaveTreasure
	}
	if len(moves) == 1 {
		return moves[0]
	}

	state = state.WithRand(f.rng)

	bestMove := moves[0]
	bestWinRate := -1.0

	for _, move := range moves {
		nextState := state.DoMove(move)
		nextMovedThisTurn := move == game.Continue || move == game.Return

		var totalWins float64
		for r := 0; r < f.rolloutsPerMove; r++ {
			if nextState.IsTerminal() && nextState.IsLastRound() {
				if f.winner(nextState) == playerIndex {
					totalWins++
				}
				continue
			}
			totalWins += f.rollout(nextState, nextMovedThisTurn, playerIndex)
		}

		winRate := totalWins / float64(f.rolloutsPerMove)
		if winRate > bestWinRate {
			bestWinRate = winRate
			bestMove = move
		}
	}

	return bestMove
}

// rollout plays a single uniformly-random game to the end from state
// and returns 1 if playerIndex has the top score, 0 otherwise.
func (f *FlatMC) rollout(state game.State, movedThisTurn bool, playerIndex int) float64 {
	for steps := 0; steps < maxFlatRolloutSteps && !(state.IsTerminal() && state.IsLastRound()); steps++ {
		moves := state.PossibleMoves(movedThisTurn)
		if len(moves) == 0 {
			break
		}

		if moves[0] == game.End {
			state = state.DoMove(game.End)
			movedThisTurn = false
			continue
		}

		move := moves[f.rng.Int63n(int64(len(moves)))]
		state = state.DoMove(move)
		movedThisTurn = move == game.Continue || move == game.Return
	}

	if f.winner(state) == playerIndex {
		return 1
	}
	return 0
}

// winner is the seat with the highest score (first one wins ties),
// matching the original simulator's single-winner evaluation.
func (f *FlatMC) winner(state game.State) int {
	bestScore := -1
	winnerIndex := 0
	for i := 0; i < f.numPlayers; i++ {
		if score := state.Player(i).Points; score > bestScore {
			bestScore = score
			winnerIndex = i
		}
	}
	return winnerIndex
}
