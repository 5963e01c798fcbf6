package mcts

import (
	"math"

	"github.com/Zeffar/Deep-Diver-AI/pkg/game"
)

// childArraySize is the fixed per-node child capacity carved out of
// the arena's child-pointer pool at allocation time, matching the
// original simulator's CHILD_ARRAY_SIZE. A node's possible-move count
// in this game never exceeds it (at most 2 in either phase, since
// collect and drop are never both legal), so no node ever needs to
// grow past it.
const childArraySize = 8

// Node is one position in a worker's private search tree. It is never
// shared across goroutines: each worker owns its own arena and touches
// only nodes it allocated, so none of these fields need to be atomic.
type Node struct {
	State          game.State
	MoveFromParent game.MoveType
	Parent         *Node

	Children   []*Node
	ChildCount int

	Visits int
	Wins   Rewards

	NumPlayers      int
	UnexpandedMoves []game.MoveType
	MovedThisTurn   bool
	LogVisits       float64
}

func (n *Node) init(state game.State, parent *Node, move game.MoveType, movedThisTurn bool, numPlayers int) {
	n.State = state
	n.MoveFromParent = move
	n.Parent = parent
	n.ChildCount = 0
	n.Visits = 0
	n.Wins = Rewards{}
	n.NumPlayers = numPlayers
	n.MovedThisTurn = movedThisTurn
	n.LogVisits = 0
	n.UnexpandedMoves = state.PossibleMoves(movedThisTurn)
}

func (n *Node) isFullyExpanded() bool {
	return len(n.UnexpandedMoves) == 0
}

// isTerminal reports whether this node's state is not just over for
// the current round, but for the whole game — only then does the
// search stop descending past it.
func (n *Node) isTerminal() bool {
	return n.State.IsTerminal() && n.State.IsLastRound()
}

// ucb1 is this node's UCB1 score from playerIndex's perspective, given
// the parent's log-visit count. An unvisited node scores +Inf so
// selection always tries it before anything else.
func (n *Node) ucb1(playerIndex int, explorationConstant, parentLogVisits float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins[playerIndex] / float64(n.Visits)
	exploration := explorationConstant * math.Sqrt(parentLogVisits/float64(n.Visits))
	return exploitation + exploration
}

func (n *Node) updateLogVisits() {
	if n.Visits > 0 {
		n.LogVisits = math.Log(float64(n.Visits))
	}
}

// NodePool is a fixed-arena allocator for a worker's private search
// tree: nodes and their child-pointer arrays are carved out of two
// pre-sized backing slices, so a full search of millions of
// iterations allocates no nodes or child arrays through the
// general-purpose heap after its first (or doubled) arena fill; the
// game states and move lists a node holds are still heap-allocated. Reset rewinds both cursors to
// reuse the arena across successive searches.
type NodePool struct {
	nodes       []Node
	childArrays []*Node

	nextNode      int
	nextChildSlot int
}

// NewNodePool builds an arena sized to hold roughly capacity nodes (a
// minimum of 1000 to keep tiny searches cheap to set up).
func NewNodePool(capacity int) *NodePool {
	if capacity < 1000 {
		capacity = 1000
	}
	return &NodePool{
		nodes:       make([]Node, capacity),
		childArrays: make([]*Node, capacity*childArraySize),
	}
}

// Reset rewinds the arena to empty without releasing its backing
// storage, ready for another search.
func (p *NodePool) Reset() {
	p.nextNode = 0
	p.nextChildSlot = 0
}

// Allocate carves the next node and its private child-pointer window
// out of the arena, growing both backing slices (doubling) if the
// arena is exhausted.
func (p *NodePool) Allocate() *Node {
	if p.nextNode >= len(p.nodes) {
		grown := make([]Node, len(p.nodes)*2)
		copy(grown, p.nodes)
		p.nodes = grown

		grownChildren := make([]*Node, len(p.childArrays)*2)
		copy(grownChildren, p.childArrays)
		p.childArrays = grownChildren
	}

	node := &p.nodes[p.nextNode]
	p.nextNode++

	node.Children = p.childArrays[p.nextChildSlot:p.nextChildSlot : p.nextChildSlot+childArraySize]
	p.nextChildSlot += childArraySize

	return node
}

// Used is the number of nodes carved out of the arena since the last
// Reset, exposed for diagnostics/logging.
func (p *NodePool) Used() int {
	return p.nextNode
}
