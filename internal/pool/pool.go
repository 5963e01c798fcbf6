// Package pool holds the process-wide treasure value pools described
// in spec.md §4.2: one reservoir of possible chip values per tile
// level, plus the global deterministic-scoring switch the parallel
// search flips for the duration of a fan-out.
//
// This state is intentionally global, not attached to game.State: the
// original design keeps scoring itself pure of any extra threading
// parameter, at the cost of a narrow, documented race window (see
// SetDeterministic). A future redesign could thread a scoring mode
// through State instead and retire the package-level switch; the spec
// explicitly leaves that as an accepted alternative, not a requirement.
package pool

import (
	"math/rand"

	"github.com/pkg/errors"
)

// ErrExhausted is the sentinel for a non-deterministic draw against an
// empty level pool. game.ErrPoolExhausted wraps this same failure for
// callers outside this package; pool can't import game to share one
// sentinel directly without a cycle, since game imports pool.
var ErrExhausted = errors.New("pool: value pool exhausted")

// must panics with a stack-annotated error if err is non-nil, mirroring
// game.must for the one fail-fast path this package has of its own.
func must(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}

// NumLevels is the count of distinct tile levels (0..3) that carry a
// base treasure value. Level 4 ("fallen stack") tiles have no value
// pool of their own — their chips were already priced when originally
// collected from a level 0..3 tile.
const NumLevels = 4

// baseValue is the additive floor for each level, matching the
// original simulator's tile-level payout table.
var baseValue = [NumLevels]int{0, 4, 8, 12}

// spread is how many distinct point values a level's pool covers
// above its base, with each value appearing twice — an 8-chip
// reservoir per level, one chip per tile of that level on the initial
// board.
const spread = 4
const copiesPerValue = 2

var pools [NumLevels][]int

// deterministic is the process-wide scoring mode switch. Not guarded
// by a mutex: only the search coordinator may set or clear it, and
// only while no other goroutine can be mid-score. See the package doc.
var deterministic bool

func init() {
	ResetValuePools()
}

// ResetValuePools restores every level's pool to its full multiset,
// discarding any values already drawn. Called once per game and again
// at every inter-round reset (spec.md §4.1).
func ResetValuePools() {
	for level := 0; level < NumLevels; level++ {
		p := make([]int, 0, spread*copiesPerValue)
		for v := 0; v < spread; v++ {
			for c := 0; c < copiesPerValue; c++ {
				p = append(p, baseValue[level]+v)
			}
		}
		pools[level] = p
	}
}

// SetDeterministic switches scoring into (or out of) deterministic
// mode, where DrawOne returns each level's fixed midpoint instead of
// consuming the pool. The root-parallel coordinator enables this for
// the full duration of a search fan-out so concurrent rollouts can't
// race on the shared pools, then disables it before returning.
func SetDeterministic(on bool) {
	deterministic = on
}

// Deterministic reports the current scoring mode.
func Deterministic() bool {
	return deterministic
}

// DrawOne removes and returns one value from the given level's pool,
// uniformly at random, or returns the level's fixed midpoint without
// mutating anything when deterministic mode is active. Panics if the
// pool is exhausted under non-deterministic scoring — this should
// never happen in a single well-formed game, since every chip drawn
// corresponds to a tile that was actually collected.
func DrawOne(level int) int {
	if deterministic {
		return midpoint(level)
	}

	p := pools[level]
	if len(p) == 0 {
		must(errors.Wrapf(ErrExhausted, "level %d", level))
	}

	i := rand.Intn(len(p))
	v := p[i]
	p[i] = p[len(p)-1]
	pools[level] = p[:len(p)-1]
	return v
}

// midpoint is the deterministic stand-in value for a level: the mean
// of its full, untouched pool, rounded to the nearest integer.
func midpoint(level int) int {
	// Pool is {base, base, base+1, base+1, ..., base+spread-1, base+spread-1},
	// whose mean is base + (spread-1)/2.
	return baseValue[level] + (spread-1+1)/2
}
