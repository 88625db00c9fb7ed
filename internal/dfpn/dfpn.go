package dfpn

import (
	"log/slog"
	"math"
	"time"

	"github.com/lk16/cubello/internal/models"
)

const (
	// DefaultMaxSteps is the default number of node expansions per Solve call.
	DefaultMaxSteps = 150_000

	// Infinity is the proof or disproof number of a node that can not be proved or disproved.
	Infinity = math.MaxInt32
)

// Node is a node of the proof-number search tree.
type Node struct {
	board    models.Board
	player   models.Player
	isOR     bool
	move     *models.Move
	proof    int
	disproof int
	children []*Node
	expanded bool
}

// newNode creates a node and sets its proof and disproof numbers.
// Terminal positions are scored for winner, the player the search tries to prove a win for.
func newNode(board models.Board, player models.Player, isOR bool, move *models.Move, winner models.Player) *Node {
	node := &Node{
		board:    board,
		player:   player,
		isOR:     isOR,
		move:     move,
		proof:    1,
		disproof: 1,
	}

	if !board.IsTerminal() {
		return node
	}

	own := board.CountDiscs(winner)
	opponent := board.CountDiscs(winner.Opponent())

	switch {
	case own > opponent:
		node.proof, node.disproof = 0, Infinity
	case own < opponent:
		node.proof, node.disproof = Infinity, 0
	default:
		node.proof, node.disproof = Infinity, Infinity
	}

	return node
}

// Proof returns the proof number of the node.
func (n *Node) Proof() int {
	return n.proof
}

// Disproof returns the disproof number of the node.
func (n *Node) Disproof() int {
	return n.disproof
}

// expand creates the children of the node. Terminal nodes get no children.
func (n *Node) expand(winner models.Player) {
	if n.expanded {
		return
	}

	n.expanded = true

	if n.board.IsTerminal() {
		return
	}

	moves := n.board.LegalMoves(n.player)

	if len(moves) == 0 {
		n.children = []*Node{newNode(n.board, n.player.Opponent(), !n.isOR, nil, winner)}
		return
	}

	n.children = make([]*Node, len(moves))
	for i := range moves {
		child := n.board.MustApplyMove(moves[i], n.player)
		n.children[i] = newNode(child, n.player.Opponent(), !n.isOR, &moves[i], winner)
	}
}

// selectChild returns the most proving child: the first child with the lowest
// proof number for OR-nodes and the lowest disproof number for AND-nodes.
func (n *Node) selectChild() *Node {
	if len(n.children) == 0 {
		panic("dfpn: selecting child of node without children")
	}

	best := n.children[0]
	for _, child := range n.children[1:] {
		if n.isOR && child.proof < best.proof {
			best = child
		}
		if !n.isOR && child.disproof < best.disproof {
			best = child
		}
	}

	return best
}

// update recomputes the proof and disproof numbers from the children.
func (n *Node) update() {
	if len(n.children) == 0 {
		return
	}

	minProof, minDisproof := Infinity, Infinity
	sumProof, sumDisproof := 0, 0

	for _, child := range n.children {
		minProof = min(minProof, child.proof)
		minDisproof = min(minDisproof, child.disproof)
		sumProof = saturatingAdd(sumProof, child.proof)
		sumDisproof = saturatingAdd(sumDisproof, child.disproof)
	}

	if n.isOR {
		n.proof, n.disproof = minProof, sumDisproof
	} else {
		n.proof, n.disproof = sumProof, minDisproof
	}
}

func saturatingAdd(a, b int) int {
	if a >= Infinity-b {
		return Infinity
	}
	return a + b
}

// Stats contains counters of the last Solve call.
type Stats struct {
	Steps        int
	RootProof    int
	RootDisproof int
	Duration     time.Duration
}

// Solver finds moves that force a win in the endgame.
// A Solver keeps counters, so it should not be shared between goroutines.
type Solver struct {
	maxSteps int
	stats    Stats
}

// NewSolver creates a new Solver that expands at most maxSteps nodes per call.
func NewSolver(maxSteps int) *Solver {
	return &Solver{maxSteps: maxSteps}
}

// Solve returns a move for p that provably leads to a win. The second return
// value is false if no such move was found, either because there is none or
// because the step budget ran out.
//
// If the given board is already won for p, no move is returned.
func (s *Solver) Solve(board models.Board, p models.Player) (models.Move, bool) {
	startTime := time.Now()

	root := newNode(board, p, true, nil, p)
	s.stats = Stats{}

	defer func() {
		s.stats.RootProof = root.proof
		s.stats.RootDisproof = root.disproof
		s.stats.Duration = time.Since(startTime)

		slog.Debug("df-pn search done", "player", p, "steps", s.stats.Steps,
			"proof", root.proof, "disproof", root.disproof, "duration", s.stats.Duration)
	}()

	if root.proof == 0 {
		return models.Move{}, false
	}

	for s.stats.Steps < s.maxSteps && root.proof != 0 && root.disproof != 0 {
		path := []*Node{root}
		current := root

		for current.expanded && len(current.children) > 0 {
			current = current.selectChild()
			path = append(path, current)
		}

		// An expanded node without children is terminal. Selection would keep
		// returning it, so the tree can not change anymore.
		if current.expanded {
			break
		}

		current.expand(p)
		s.stats.Steps++

		for i := len(path) - 1; i >= 0; i-- {
			path[i].update()
		}
	}

	for _, child := range root.children {
		if child.proof == 0 && child.move != nil {
			return *child.move, true
		}
	}

	return models.Move{}, false
}

// Stats returns the counters of the last Solve call.
func (s *Solver) Stats() Stats {
	return s.stats
}
