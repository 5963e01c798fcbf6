package game

import (
	"golang.org/x/exp/rand"

	"github.com/pkg/errors"

	"github.com/Zeffar/Deep-Diver-AI/internal/pool"
)

// State is the full, composite game state: players, board, shared
// oxygen, round tracking and whose turn it is. Every State method
// that names a move is pure — DoMove always returns a new value,
// never touching the receiver.
type State struct {
	players       []Player
	board         Board
	oxygen        int
	currentRound  int
	currentPlayer int
	lastPlayer    int
	rng           *rand.Rand
}

// NewState builds a fresh game for numPlayers seats (2..6), full
// oxygen, an untouched 32-tile board, and player 0 to act first.
func NewState(numPlayers int) State {
	if numPlayers < 2 || numPlayers > 6 {
		must(ErrInvalidPlayerCount)
	}
	return State{
		players: make([]Player, numPlayers),
		board:   NewBoard(),
		oxygen:  25,
	}
}

// WithRand attaches a private random source to the state, used by the
// search engine so every dice throw and random choice a worker makes
// descends from that worker's seed. Every State produced by DoMove on
// a state with an attached source inherits the same source.
func (s State) WithRand(r *rand.Rand) State {
	s.rng = r
	return s
}

func (s State) clone() State {
	players := make([]Player, len(s.players))
	for i, p := range s.players {
		players[i] = p.clone()
	}
	return State{
		players:       players,
		board:         s.board.clone(),
		oxygen:        s.oxygen,
		currentRound:  s.currentRound,
		currentPlayer: s.currentPlayer,
		lastPlayer:    s.lastPlayer,
		rng:           s.rng,
	}
}

func (s State) Oxygen() int        { return s.oxygen }
func (s State) CurrentRound() int  { return s.currentRound }
func (s State) CurrentPlayer() int { return s.currentPlayer }
func (s State) LastPlayer() int    { return s.lastPlayer }
func (s State) NumPlayers() int    { return len(s.players) }
func (s State) Board() Board       { return s.board }

// Player returns a copy of seat i's state.
func (s State) Player(i int) Player {
	return s.players[i]
}

// IsLastRound reports whether the game has entered its final round
// (index 2 of 0, 1, 2); once terminal there, the game stays terminal
// instead of resetting for another round.
func (s State) IsLastRound() bool {
	return s.currentRound >= 2
}

// IsTerminal reports whether the shared oxygen has run out, or every
// player still alive has safely surfaced and is returning.
func (s State) IsTerminal() bool {
	if s.oxygen == 0 {
		return true
	}
	for _, p := range s.players {
		if !p.IsDead {
			if p.Position > 0 || !p.IsReturning {
				return false
			}
		}
	}
	return true
}

// PossibleMoves returns the legal moves for the current player in the
// requested phase. movedThisTurn selects the action phase (true,
// collect/drop/leave) over the move phase (false, continue/return).
func (s State) PossibleMoves(movedThisTurn bool) []MoveType {
	if s.IsTerminal() {
		return []MoveType{End}
	}

	p := s.players[s.currentPlayer]

	if !movedThisTurn {
		if p.Position == 0 && p.IsReturning {
			return []MoveType{LeaveTreasure}
		}
		if p.IsReturning {
			return []MoveType{Return}
		}

		moves := []MoveType{Continue}
		if len(p.Inventory) > 0 || p.Position == s.board.Len() {
			moves = append(moves, Return)
		}
		return moves
	}

	var moves []MoveType
	if p.Position > 0 && !s.board.isFlipped(p.Position) {
		moves = append(moves, CollectTreasure)
	}
	if len(p.Inventory) > 0 && p.Position > 0 && s.board.isFlipped(p.Position) {
		moves = append(moves, DropTreasure)
	}
	moves = append(moves, LeaveTreasure)
	return moves
}

// DoMove applies move to a clone of the state and returns it. The
// receiver is left untouched.
func (s State) DoMove(move MoveType) State {
	ns := s.clone()

	if move == End {
		return ns
	}

	mover := ns.currentPlayer
	p := &ns.players[mover]

	if move == Continue || move == Return {
		ns.oxygen = maxInt(0, ns.oxygen-p.Inventory.Size())
	}

	switch move {
	case Continue, Return:
		if move == Return {
			p.IsReturning = true
		}
		dice := ns.rollDice()
		steps := maxInt(0, dice-p.Inventory.Size())
		ns.movePlayer(mover, steps)
		if p.Position == 0 && p.IsReturning {
			ns.lastPlayer = mover
		}
	case CollectTreasure:
		ns.collectTreasure(mover)
	case DropTreasure:
		ns.dropTreasure(mover)
	case LeaveTreasure:
		// no-op: passes the turn
	default:
		must(ErrInvalidMove)
	}

	if ns.IsTerminal() {
		ns.processTerminality()
		return ns
	}

	if p.Position == 0 || move == CollectTreasure || move == LeaveTreasure || move == DropTreasure {
		ns.currentPlayer = (mover + 1) % len(ns.players)
	}

	return ns
}

// rollDice sums two independent draws from {1,2,3}, matching the
// two-die throw the original simulator uses for movement distance.
func (s *State) rollDice() int {
	return s.dieRoll() + s.dieRoll()
}

func (s *State) dieRoll() int {
	if s.rng != nil {
		return 1 + s.rng.Intn(3)
	}
	return 1 + rand.Intn(3)
}

// movePlayer advances (or retreats, if returning) player idx by steps
// tile-hops, skipping occupied tiles without spending a step on them.
// Overshooting the last tile clamps to it and forces the returning
// flag; reaching the submarine consumes the remaining budget.
func (s *State) movePlayer(idx, steps int) {
	p := &s.players[idx]
	direction := 1
	if p.IsReturning {
		direction = -1
	}

	if p.Position > 0 {
		s.board.setOccupied(p.Position, false)
	}

	for steps > 0 {
		p.Position += direction
		if p.Position <= 0 {
			p.Position = 0
			break
		}
		if p.Position > s.board.Len() {
			p.Position = s.board.Len()
			p.IsReturning = true
			break
		}
		if !s.board.isOccupied(p.Position) {
			steps--
		}
	}

	// Defensive: an overshoot clamp can land exactly on an occupied
	// tile; back off until the spot is free.
	for p.Position > 0 && s.board.isOccupied(p.Position) {
		p.Position--
	}

	if p.Position > 0 {
		s.board.setOccupied(p.Position, true)
	}
}

func (s *State) collectTreasure(idx int) {
	p := &s.players[idx]
	tile := s.board.Tile(p.Position)

	var newStack TreasureStack
	if tile.Level != 4 {
		newStack = append(append(TreasureStack(nil), tile.Treasure...), tile.Level)
	} else {
		newStack = append(TreasureStack(nil), tile.Treasure...)
	}

	p.Inventory = append(p.Inventory, newStack)
	s.board.setTreasure(p.Position, TreasureStack{}, true)
}

func (s *State) dropTreasure(idx int) {
	p := &s.players[idx]
	si := p.lowestStackIndex()
	stack := p.Inventory[si]

	tile := s.board.Tile(p.Position)
	merged := append(append(TreasureStack(nil), tile.Treasure...), stack...)
	s.board.setTreasure(p.Position, merged, false)

	p.Inventory = append(p.Inventory[:si], p.Inventory[si+1:]...)
}

// processTerminality marks drowned players dead, scores survivors,
// and either resets for the next round or leaves the game terminal.
// Called once, at the doMove that first makes the state terminal;
// DoMove(End) on an already-terminal state does not call this again.
func (s *State) processTerminality() {
	for i := range s.players {
		if s.players[i].Position != 0 {
			s.players[i].IsDead = true
		}
	}

	s.scorePlayers()

	if !s.IsLastRound() {
		s.resetForNewRound()
	}
}

func (s *State) scorePlayers() {
	// pool.DrawOne panics on an exhausted level pool; re-raise it under
	// game's own sentinel so a panicking caller sees the same fail-fast
	// taxonomy every other game-level invariant violation uses.
	defer func() {
		if r := recover(); r != nil {
			must(errors.Wrapf(ErrPoolExhausted, "%v", r))
		}
	}()

	for i := range s.players {
		p := &s.players[i]
		if p.IsDead {
			continue
		}
		for _, stack := range p.Inventory {
			for _, level := range stack {
				p.Points += pool.DrawOne(level)
			}
		}
	}
}

// resetForNewRound implements spec.md §4.1's inter-round reset:
// shrink the board, redistribute drowned loot, return everyone to the
// submarine, restore oxygen, and hand the next round to whoever last
// safely surfaced.
func (s *State) resetForNewRound() {
	s.board.update()
	s.redistributeTreasure()
	pool.ResetValuePools()

	for i := range s.players {
		s.players[i].reset()
	}

	s.oxygen = 25
	s.currentRound++
	s.currentPlayer = s.lastPlayer
}

// redistributeTreasure gathers every chip carried by a drowned player
// (position != 0) into groups of up to 3, each becoming a new
// level-4 tile appended to the board, and empties those inventories.
func (s *State) redistributeTreasure() {
	var chips []int
	for i := range s.players {
		if s.players[i].Position != 0 {
			for _, stack := range s.players[i].Inventory {
				chips = append(chips, stack...)
			}
			s.players[i].Inventory = nil
		}
	}

	for len(chips) > 0 {
		n := minInt(3, len(chips))
		s.board.appendFallenTile(append(TreasureStack(nil), chips[:n]...))
		chips = chips[n:]
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
