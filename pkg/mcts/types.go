// Package mcts implements the root-parallel Monte Carlo Tree Search
// decision engine: independent per-worker search trees, fanned out
// across goroutines, whose per-move visit/win tallies are merged at
// the end of a search into a single recommendation.
package mcts

import "github.com/Zeffar/Deep-Diver-AI/pkg/game"

// MaxPlayers bounds the fixed-size reward arrays Node carries, mirroring
// the original simulator's std::array<double, MAX_PLAYERS>.
const MaxPlayers = 6

// Rewards is one rollout's terminal payoff, one entry per seat.
type Rewards [MaxPlayers]float64

// MoveStats is one child's aggregated search result: how many times it
// was visited and how much reward it returned to the requesting seat,
// summed across every worker that explored it.
type MoveStats struct {
	Move        game.MoveType
	TotalVisits int
	TotalWins   float64
}

// WinRate is TotalWins/TotalVisits, or 0 for an unvisited move.
func (m MoveStats) WinRate() float64 {
	if m.TotalVisits == 0 {
		return 0
	}
	return m.TotalWins / float64(m.TotalVisits)
}
