// Package bots collects the non-interactive move-selection engines a
// seat in cmd/deepdiver can be handed to: a hand-tuned heuristic, a
// flat (non-tree) Monte Carlo evaluator, and (in pkg/mcts) the full
// root-parallel search engine, all behind the same Engine interface.
package bots

import "github.com/Zeffar/Deep-Diver-AI/pkg/game"

// Engine picks a move for playerIndex in state. movedThisTurn selects
// the move phase (false) or the action phase (true), matching
// game.State.PossibleMoves.
type Engine interface {
	FindBestMove(state game.State, playerIndex int, movedThisTurn bool) game.MoveType
}
