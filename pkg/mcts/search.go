package mcts

import (
	"golang.org/x/exp/rand"

	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

// worker runs one independent root-parallel search: its own arena, its
// own private RNG, its own tree. Nothing here is ever touched by any
// other goroutine, so select/expand/simulate/backpropagate need no
// synchronization at all.
type worker struct {
	numPlayers          int
	iterations          int
	explorationConstant float64
	rng                 *rand.Rand
	pool                *NodePool
}

func newWorker(numPlayers, iterations int, explorationConstant float64, seed uint64) *worker {
	return &worker{
		numPlayers:          numPlayers,
		iterations:          iterations,
		explorationConstant: explorationConstant,
		rng:                 rand.New(rand.NewSource(seed)),
		pool:                NewNodePool(max(100_000, iterations/10)),
	}
}

// search runs the full select/expand/simulate/backpropagate loop for
// this worker's iteration budget and returns per-child aggregated
// stats for playerIndex, the seat the overall search is deciding for.
func (w *worker) search(state game.State, playerIndex int, movedThisTurn bool) []MoveStats {
	w.pool.Reset()

	// Thread this worker's own RNG through the state so every dice
	// throw in this search, and every DoMove it produces, descends
	// from the same seed — the source of the per-worker determinism
	// the coordinator relies on for reproducible searches.
	state = state.WithRand(w.rng)

	root := w.pool.Allocate()
	root.init(state, nil, game.LeaveTreasure, movedThisTurn, w.numPlayers)

	for i := 0; i < w.iterations; i++ {
		selected := w.select_(root)

		expanded := selected
		if !selected.isTerminal() && !selected.isFullyExpanded() {
			expanded = w.expand(selected)
		}

		rewards := w.simulate(expanded)
		w.backpropagate(expanded, rewards)
	}

	results := make([]MoveStats, root.ChildCount)
	for i := 0; i < root.ChildCount; i++ {
		child := root.Children[i]
		results[i] = MoveStats{
			Move:        child.MoveFromParent,
			TotalVisits: child.Visits,
			TotalWins:   child.Wins[playerIndex],
		}
	}

	return results
}

// select_ descends the tree by UCB1 until it finds a node that still
// has unexpanded moves, or that has no children at all, or that is
// terminal — the point to expand or roll out from next.
func (w *worker) select_(node *Node) *Node {
	for !node.isTerminal() {
		if !node.isFullyExpanded() {
			return node
		}
		if node.ChildCount == 0 {
			return node
		}
		node = selectBestChild(node, w.explorationConstant)
	}
	return node
}

// expand materializes one of node's unexpanded moves as a new child,
// picking the move at random among the remaining ones (in original
// order if only one remains) and swap-removing it from the parent's
// unexpanded list.
func (w *worker) expand(node *Node) *Node {
	if len(node.UnexpandedMoves) == 0 {
		return node
	}

	var moveIndex int
	if len(node.UnexpandedMoves) == 1 {
		moveIndex = 0
	} else {
		moveIndex = int(w.rng.Int63n(int64(len(node.UnexpandedMoves))))
	}

	move := node.UnexpandedMoves[moveIndex]

	last := len(node.UnexpandedMoves) - 1
	node.UnexpandedMoves[moveIndex] = node.UnexpandedMoves[last]
	node.UnexpandedMoves = node.UnexpandedMoves[:last]

	newState := node.State.DoMove(move)

	var newMovedThisTurn bool
	if move == game.Continue || move == game.Return {
		newMovedThisTurn = newState.CurrentPlayer() == node.State.CurrentPlayer()
	}

	child := w.pool.Allocate()
	child.init(newState, node, move, newMovedThisTurn, w.numPlayers)

	if node.ChildCount < cap(node.Children) {
		node.Children = node.Children[:node.ChildCount+1]
		node.Children[node.ChildCount] = child
		node.ChildCount++
	}

	return child
}

// simulate plays a light, uniformly-random rollout from node's state
// to the end of the game (bounded by maxSimulationSteps against a
// pathological non-terminating sequence) and scores the result.
func (w *worker) simulate(node *Node) Rewards {
	simState := node.State
	movedThisTurn := node.MovedThisTurn

	for steps := 0; steps < maxSimulationSteps && !(simState.IsTerminal() && simState.IsLastRound()); steps++ {
		moves := simState.PossibleMoves(movedThisTurn)
		if len(moves) == 0 {
			break
		}

		if moves[0] == game.End {
			simState = simState.DoMove(game.End)
			movedThisTurn = false
			continue
		}

		move := w.randomMove(moves)

		prevPlayer := simState.CurrentPlayer()
		simState = simState.DoMove(move)
		newPlayer := simState.CurrentPlayer()

		if move == game.Continue || move == game.Return {
			movedThisTurn = newPlayer == prevPlayer
		} else {
			movedThisTurn = false
		}
	}

	return w.rewards(simState)
}

func (w *worker) backpropagate(node *Node, rewards Rewards) {
	for node != nil {
		node.Visits++
		node.updateLogVisits()

		for i := 0; i < w.numPlayers; i++ {
			node.Wins[i] += rewards[i]
		}

		node = node.Parent
	}
}

// rewards normalizes the terminal state's scores into [0, 1] per
// seat, scaling by the spread between the best and worst score so the
// search optimizes relative standing rather than raw point totals. A
// tied game splits the reward evenly.
func (w *worker) rewards(terminal game.State) Rewards {
	var rewards Rewards

	var scores [MaxPlayers]int
	maxScore, minScore := 0, int(^uint(0)>>1)

	for i := 0; i < w.numPlayers; i++ {
		p := terminal.Player(i)
		scores[i] = p.Points
		if scores[i] > maxScore {
			maxScore = scores[i]
		}
		if scores[i] < minScore {
			minScore = scores[i]
		}
	}

	spread := maxScore - minScore
	if spread == 0 {
		equal := 1.0 / float64(w.numPlayers)
		for i := 0; i < w.numPlayers; i++ {
			rewards[i] = equal
		}
		return rewards
	}

	for i := 0; i < w.numPlayers; i++ {
		rewards[i] = float64(scores[i]-minScore) / float64(spread)
	}
	return rewards
}

func (w *worker) randomMove(moves []game.MoveType) game.MoveType {
	if len(moves) == 1 {
		return moves[0]
	}
	return moves[w.rng.Int63n(int64(len(moves)))]
}
