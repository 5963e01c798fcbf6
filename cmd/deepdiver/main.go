// Command deepdiver runs an interactive session of the deep-sea
// treasure-diving game on the terminal: plain text prompts, no color,
// no TUI — stdin/stdout via bufio.Scanner only.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Zeffar/Deep-Diver-AI/internal/pool"
	"github.com/Zeffar/Deep-Diver-AI/pkg/bots"
	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
	"github.com/Zeffar/Deep-Diver-AI/pkg/mcts"
)

// benchmarkIterations is the smaller fixed budget the 'B' character
// choice uses — a leaner ParallelMCTS instantiation standing in for
// the original's benchmark-harness default AI, which this module does
// not otherwise implement.
const benchmarkIterations = 200_000

func main() {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to Deep Sea Adventure!")

	numPlayers := promptInt(in, "How many players? (2-6): ", 2, 6)

	engines := make([]bots.Engine, numPlayers)
	fmt.Println()
	fmt.Println("Configure each player:")
	fmt.Println("  H = Human")
	fmt.Println("  M = AI (Parallel MCTS - strong)")
	fmt.Println("  R = AI (Rule-based heuristic)")
	fmt.Println("  P = AI (Pure/flat Monte Carlo)")
	fmt.Println("  B = AI (Parallel MCTS, smaller budget)")
	fmt.Println()

	for i := 0; i < numPlayers; i++ {
		choice := promptChar(in, fmt.Sprintf("Player %d [H/M/R/P/B]: ", i+1), "HMRPB")
		switch choice {
		case 'H':
			engines[i] = nil
		case 'M':
			engines[i] = mcts.NewCoordinator(numPlayers)
		case 'R':
			engines[i] = bots.NewHeuristicBot(numPlayers)
		case 'P':
			engines[i] = bots.NewFlatMC(numPlayers, 10_000)
		case 'B':
			engines[i] = mcts.NewCoordinator(numPlayers, mcts.WithTotalIterations(benchmarkIterations))
		}
	}

	fmt.Printf("\nStarting game with %d players...\n", numPlayers)
	runGame(in, numPlayers, engines)
}

func runGame(in *bufio.Scanner, numPlayers int, engines []bots.Engine) {
	pool.ResetValuePools()
	state := game.NewState(numPlayers)
	lastRound := -1

	for {
		if round := state.CurrentRound(); round != lastRound {
			fmt.Printf("\n=== Round %d begins ===\n", round+1)
			lastRound = round
		}

		currentP := state.CurrentPlayer()
		player := state.Player(currentP)

		printStatus(state, currentP)

		if state.IsTerminal() {
			if state.IsLastRound() {
				break
			}
			if state.Oxygen() == 0 {
				fmt.Println("\nOxygen depleted! Round ended.")
			} else {
				fmt.Println("\nAll players returned safely! Round ended.")
			}
			state = state.DoMove(game.End)
			continue
		}

		if player.IsDead || (player.Position == 0 && player.IsReturning) {
			fmt.Printf("Player %d is safe in the submarine.\n", currentP+1)
			state = state.DoMove(game.LeaveTreasure)
			continue
		}

		moves := state.PossibleMoves(false)
		if len(moves) == 0 {
			state = state.DoMove(game.LeaveTreasure)
			continue
		}
		if moves[0] == game.End {
			state = state.DoMove(game.End)
			continue
		}

		if weight := len(player.Inventory); weight > 0 {
			fmt.Printf("Carrying %d treasure(s): costs %d oxygen this move.\n", weight, weight)
		}

		move := chooseMove(in, state, currentP, moves, engines[currentP], false)
		state = state.DoMove(move)

		// Action phase, if the move phase kept the same player on a tile.
		for state.CurrentPlayer() == currentP && !state.IsTerminal() {
			actionMoves := state.PossibleMoves(true)
			if len(actionMoves) == 0 {
				break
			}
			action := chooseMove(in, state, currentP, actionMoves, engines[currentP], true)
			state = state.DoMove(action)
			if action == game.LeaveTreasure {
				break
			}
		}
	}

	printGameOver(state, numPlayers)
}

func chooseMove(in *bufio.Scanner, state game.State, playerIndex int, moves []game.MoveType, engine bots.Engine, movedThisTurn bool) game.MoveType {
	if engine != nil {
		fmt.Printf("Player %d (AI) is thinking...\n", playerIndex+1)
		move := engine.FindBestMove(state, playerIndex, movedThisTurn)
		fmt.Printf("Player %d chooses: %s\n", playerIndex+1, move)
		return move
	}

	fmt.Printf("\nPlayer %d's turn. Available actions:\n", playerIndex+1)
	for i, m := range moves {
		fmt.Printf("  [%d] %s\n", i+1, m)
	}

	choice := promptInt(in, fmt.Sprintf("Enter choice (1-%d): ", len(moves)), 1, len(moves))
	return moves[choice-1]
}

func printStatus(state game.State, currentP int) {
	fmt.Printf("\nOxygen: %d/25\n", state.Oxygen())
	p := state.Player(currentP)
	fmt.Printf("Player %d: position=%d returning=%v treasures=%d points=%d\n",
		currentP+1, p.Position, p.IsReturning, len(p.Inventory), p.Points)
}

func printGameOver(state game.State, numPlayers int) {
	fmt.Println("\n=== GAME OVER ===")
	best := 0
	for i := 0; i < numPlayers; i++ {
		p := state.Player(i)
		fmt.Printf("Player %d: %d points\n", i+1, p.Points)
		if p.Points > state.Player(best).Points {
			best = i
		}
	}
	fmt.Printf("\nPlayer %d wins!\n", best+1)
}

func promptInt(in *bufio.Scanner, prompt string, min, max int) int {
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			os.Exit(1)
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= min && n <= max {
			return n
		}
	}
}

func promptChar(in *bufio.Scanner, prompt, allowed string) byte {
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			os.Exit(1)
		}
		text := strings.ToUpper(strings.TrimSpace(in.Text()))
		if len(text) == 1 && strings.IndexByte(allowed, text[0]) >= 0 {
			return text[0]
		}
	}
}
