package game

import "github.com/pkg/errors"

// Sentinel errors for the programmer-error class of failures spec'd
// as fail-fast: out-of-bounds tile access, an invalid MoveType
// reaching doMove, and (under non-deterministic scoring) an empty
// pool draw. None of these are meant to be recovered from; callers
// are the bug site.
var (
	ErrOutOfBounds        = errors.New("game: tile index out of bounds")
	ErrInvalidMove        = errors.New("game: invalid move for current phase")
	ErrPoolExhausted      = errors.New("game: value pool exhausted")
	ErrInvalidPlayerCount = errors.New("game: numPlayers must be in [2, 6]")
)

// must panics with a stack-annotated error if err is non-nil. Used at
// the few points where the rules engine encounters a state that a
// legal caller can never produce.
func must(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}
