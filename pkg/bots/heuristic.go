package bots

import "github.com/Zeffar/Deep-Diver-AI/pkg/game"

// HeuristicBot is a fixed, hand-tuned rule set — no search at all —
// grounded on the original simulator's five numbered rules: never
// collect on the way down unless oxygen is critical or you're past
// the halfway point on a stale round, take at most one extra treasure
// while returning, and drop treasure once the trip home looks
// unsurvivable.
type HeuristicBot struct {
	numPlayers int
}

// NewHeuristicBot builds a rule-based engine for a numPlayers-seat game.
func NewHeuristicBot(numPlayers int) *HeuristicBot {
	return &HeuristicBot{numPlayers: numPlayers}
}

func (b *HeuristicBot) FindBestMove(state game.State, playerIndex int, movedThisTurn bool) game.MoveType {
	player := state.Player(playerIndex)
	oxygen := state.Oxygen()
	isReturning := player.IsReturning
	treasureCount := len(player.Inventory)

	moves := state.PossibleMoves(movedThisTurn)
	if len(moves) == 0 {
		return game.LeaveTreasure
	}

	hasMove := func(m game.MoveType) bool {
		for _, mv := range moves {
			if mv == m {
				return true
			}
		}
		return false
	}

	if movedThisTurn {
		position := player.Position
		boardSize := state.Board().Len()

		if !isReturning {
			// Rule 1: never collect on the way down...
			if hasMove(game.CollectTreasure) {
				// Rule 2: ...unless oxygen is critical, or we're past
				// the halfway mark with oxygen already below full.
				if oxygen < 23 {
					return game.CollectTreasure
				}
				if position > boardSize/2 && oxygen < 25 {
					return game.CollectTreasure
				}
			}
			return game.LeaveTreasure
		}

		// Rule 4: pick up at most one extra treasure while returning.
		if hasMove(game.CollectTreasure) && treasureCount < 2 && oxygen > position {
			return game.CollectTreasure
		}
		// Rule 5: drop treasure if the trip home looks unsurvivable.
		if treasureCount > 1 && hasMove(game.DropTreasure) && oxygen < position {
			return game.DropTreasure
		}
		return game.LeaveTreasure
	}

	if isReturning {
		return game.Return
	}

	// Rule 3: head back immediately after the first treasure.
	if treasureCount > 0 && hasMove(game.Return) {
		return game.Return
	}
	if hasMove(game.Continue) {
		return game.Continue
	}
	if hasMove(game.Return) {
		return game.Return
	}

	return moves[0]
}
