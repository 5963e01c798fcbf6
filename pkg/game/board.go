package game

// tilesPerLevel is how many tiles of each base level (0..3) the
// initial board carries, matching the physical tile set the value
// pools in internal/pool are sized against.
const tilesPerLevel = 8

// Board is the ordered sequence of tiles between the submarine
// (position 0, not itself a Tile) and the seafloor.
type Board struct {
	tiles []Tile
}

// NewBoard builds the standard 32-tile dive path: 8 tiles each of
// level 0, 1, 2 and 3, in ascending order.
func NewBoard() Board {
	tiles := make([]Tile, 0, tilesPerLevel*4)
	for level := 0; level < 4; level++ {
		for i := 0; i < tilesPerLevel; i++ {
			tiles = append(tiles, Tile{Level: level})
		}
	}
	return Board{tiles: tiles}
}

func (b Board) clone() Board {
	tiles := make([]Tile, len(b.tiles))
	for i, t := range b.tiles {
		tiles[i] = t.clone()
	}
	return Board{tiles: tiles}
}

// Len is the number of tiles on the current board (the submarine is
// not counted).
func (b Board) Len() int {
	return len(b.tiles)
}

// Tile returns the tile at 1-indexed position pos.
func (b Board) Tile(pos int) Tile {
	b.checkBounds(pos)
	return b.tiles[pos-1]
}

func (b Board) checkBounds(pos int) {
	if pos < 1 || pos > len(b.tiles) {
		must(ErrOutOfBounds)
	}
}

func (b *Board) flipTile(pos int) {
	b.checkBounds(pos)
	b.tiles[pos-1].Flipped = true
}

func (b *Board) unflipTile(pos int) {
	b.checkBounds(pos)
	b.tiles[pos-1].Flipped = false
}

func (b Board) isFlipped(pos int) bool {
	b.checkBounds(pos)
	return b.tiles[pos-1].Flipped
}

func (b Board) isOccupied(pos int) bool {
	if pos == 0 {
		return false // the submarine holds everyone
	}
	b.checkBounds(pos)
	return b.tiles[pos-1].Occupied
}

func (b *Board) setOccupied(pos int, occupied bool) {
	if pos == 0 {
		return
	}
	b.checkBounds(pos)
	b.tiles[pos-1].Occupied = occupied
}

// setTreasure replaces the tile's treasure stack and its flipped
// state — used by both CollectTreasure (clears it, flips it) and
// DropTreasure (refills it, unflips it).
func (b *Board) setTreasure(pos int, stack TreasureStack, flipped bool) {
	b.checkBounds(pos)
	b.tiles[pos-1].Treasure = stack
	b.tiles[pos-1].Flipped = flipped
}

// appendFallenTile appends a new level-4 tile carrying the given
// chips, used by redistribution at a round boundary.
func (b *Board) appendFallenTile(chips TreasureStack) {
	b.tiles = append(b.tiles, Tile{Level: 4, Treasure: chips})
}

// update removes every flipped tile, preserving order, and resets the
// occupied flag on everything that remains (spec.md §3: Board.updateBoard).
func (b *Board) update() {
	kept := b.tiles[:0]
	for _, t := range b.tiles {
		if !t.Flipped {
			t.Occupied = false
			kept = append(kept, t)
		}
	}
	b.tiles = kept
}
