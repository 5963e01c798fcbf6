package mcts

import (
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Zeffar/Deep-Diver-AI/internal/pool"
	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

// ParallelMCTS is the root-parallel search coordinator: it fans a
// total iteration budget out across numThreads independent workers,
// each building its own private tree from the same starting state,
// and merges their per-move visit/win tallies into one recommendation.
type ParallelMCTS struct {
	numPlayers          int
	totalIterations     int
	iterationsPerWorker int
	numThreads          int
	explorationConstant float64
	logger              zerolog.Logger
}

// Option configures a ParallelMCTS at construction time.
type Option func(*ParallelMCTS)

// WithTotalIterations sets the combined rollout budget split evenly
// across every worker.
func WithTotalIterations(n int) Option {
	return func(m *ParallelMCTS) {
		if n > 0 {
			m.totalIterations = n
		}
	}
}

// WithThreads pins the worker count. A value <= 0 falls back to
// runtime.NumCPU() at construction time.
func WithThreads(n int) Option {
	return func(m *ParallelMCTS) {
		if n > 0 {
			m.numThreads = n
		}
	}
}

// WithExplorationConstant overrides the UCB1 exploration coefficient.
func WithExplorationConstant(c float64) Option {
	return func(m *ParallelMCTS) {
		m.explorationConstant = c
	}
}

// WithLogger attaches a logger, in place of the package default
// (log.Logger writing to stderr).
func WithLogger(logger zerolog.Logger) Option {
	return func(m *ParallelMCTS) {
		m.logger = logger
	}
}

// NewCoordinator builds a ParallelMCTS for a numPlayers-seat game,
// applying opts over the defaults (10M total iterations, exploration
// constant 1.41, one worker per logical CPU).
func NewCoordinator(numPlayers int, opts ...Option) *ParallelMCTS {
	m := &ParallelMCTS{
		numPlayers:          numPlayers,
		totalIterations:     DefaultTotalIterations,
		numThreads:          max(1, runtime.NumCPU()),
		explorationConstant: DefaultExplorationConstant,
		logger:              log.Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.iterationsPerWorker = m.totalIterations / m.numThreads
	return m
}

// NumThreads is the worker count this coordinator fans a search out
// across.
func (m *ParallelMCTS) NumThreads() int {
	return m.numThreads
}

// FindBestMove runs a full root-parallel search from state on behalf
// of playerIndex and returns the move with the most combined visits
// (ties broken by combined win rate), matching
// ParallelMCTS::findBestMove in the original simulator.
func (m *ParallelMCTS) FindBestMove(state game.State, playerIndex int, movedThisTurn bool) game.MoveType {
	moves := state.PossibleMoves(movedThisTurn)
	if len(moves) == 0 {
		return game.LeaveTreasure
	}
	if len(moves) == 1 {
		m.logger.Debug().Msg("only one legal move, skipping search")
		return moves[0]
	}

	m.logger.Debug().
		Int("iterations", m.iterationsPerWorker*m.numThreads).
		Int("threads", m.numThreads).
		Msg("starting parallel search")

	// Deterministic scoring for the full duration of the fan-out: every
	// worker's rollouts must score identically for the same chip, or the
	// reward signal becomes noise across goroutines racing the shared
	// value pools. See internal/pool's package doc.
	pool.SetDeterministic(true)
	defer pool.SetDeterministic(false)

	results := make([][]MoveStats, m.numThreads)
	var wg sync.WaitGroup
	for t := 0; t < m.numThreads; t++ {
		wg.Add(1)
		seed := workerSeed(t)
		go func(t int, seed uint64) {
			defer wg.Done()
			w := newWorker(m.numPlayers, m.iterationsPerWorker, m.explorationConstant, seed)
			results[t] = w.search(state, playerIndex, movedThisTurn)
		}(t, seed)
	}
	wg.Wait()

	aggregated := make(map[game.MoveType]*MoveStats, len(moves))
	for _, mv := range moves {
		aggregated[mv] = &MoveStats{Move: mv}
	}

	for _, workerStats := range results {
		for _, stat := range workerStats {
			agg, ok := aggregated[stat.Move]
			if !ok {
				continue
			}
			agg.TotalVisits += stat.TotalVisits
			agg.TotalWins += stat.TotalWins
		}
	}

	best := game.LeaveTreasure
	bestVisits := -1
	bestWinRate := -1.0

	for _, mv := range moves {
		stats := aggregated[mv]
		winRate := stats.WinRate()

		m.logger.Debug().
			Stringer("move", stats.Move).
			Int("visits", stats.TotalVisits).
			Float64("win_rate", winRate).
			Msg("move statistics")

		if stats.TotalVisits > bestVisits ||
			(stats.TotalVisits == bestVisits && winRate > bestWinRate) {
			bestVisits = stats.TotalVisits
			bestWinRate = winRate
			best = mv
		}
	}

	return best
}

// workerSeed mixes the coordinator's seed source with the worker
// index the same way the original simulator mixes std::random_device
// output with a fixed odd multiplier, so every worker gets an
// independent, well-distributed seed even when many are launched in
// the same instant.
func workerSeed(threadIndex int) uint64 {
	const mix = 0x9E3779B97F4A7C15 // golden-ratio constant, odd, full-width
	return uint64(SeedGeneratorFn()) ^ (uint64(threadIndex) * mix)
}
