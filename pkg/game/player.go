package game

// Player tracks one diver's position, direction, carried loot and
// score. Position 0 is the submarine.
type Player struct {
	Position    int
	IsReturning bool
	IsDead      bool
	Inventory   Inventory
	Points      int
}

func (p Player) clone() Player {
	return Player{
		Position:    p.Position,
		IsReturning: p.IsReturning,
		IsDead:      p.IsDead,
		Inventory:   p.Inventory.clone(),
		Points:      p.Points,
	}
}

// reset returns the player to the submarine at the start of a new
// round: position and flags clear, inventory empties (a drowned
// player's chips were already moved to the board by
// State.redistributeTreasure, a surfaced player's already scored),
// points carry over across rounds.
func (p *Player) reset() {
	p.Position = 0
	p.IsReturning = false
	p.IsDead = false
	p.Inventory = nil
}

// lowestStackIndex finds the player's lowest-valued inventory stack
// by sum of levels, breaking ties by insertion order (first wins).
func (p Player) lowestStackIndex() int {
	best := 0
	bestSum := p.Inventory[0].sum()
	for i := 1; i < len(p.Inventory); i++ {
		if s := p.Inventory[i].sum(); s < bestSum {
			bestSum = s
			best = i
		}
	}
	return best
}
