package evaluate

import (
	"github.com/lk16/cubello/internal/models"
)

// Weights contains the constants of the heuristic.
type Weights struct {
	Corner           int
	Stable           int
	OpponentStable   int
	OpponentMobility int
	FrontierLogCoeff float64
}

// DefaultWeights returns the weights used by the engine.
func DefaultWeights() Weights {
	return Weights{
		Corner:           1000,
		Stable:           100,
		OpponentStable:   -40,
		OpponentMobility: -5,
		FrontierLogCoeff: 5,
	}
}

// Corners contains the 8 corners of the cube.
var Corners = []models.Move{
	{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 3},
	{X: 0, Y: 3, Z: 0}, {X: 0, Y: 3, Z: 3},
	{X: 3, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 3},
	{X: 3, Y: 3, Z: 0}, {X: 3, Y: 3, Z: 3},
}

// Evaluator scores boards with a fixed set of weights. It holds no mutable state.
type Evaluator struct {
	weights Weights
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(weights Weights) *Evaluator {
	return &Evaluator{weights: weights}
}

// Weights returns the weights of the evaluator.
func (e *Evaluator) Weights() Weights {
	return e.weights
}

// Evaluate returns the heuristic score of the board from the perspective of p,
// regardless of whose turn it is.
func (e *Evaluator) Evaluate(board models.Board, p models.Player) int {
	score := 0

	for _, corner := range Corners {
		if board.Get(corner.X, corner.Y, corner.Z) == p.Cell() {
			score += e.weights.Corner
		}
	}

	score += e.weights.Stable * StableDiscs(board, p).Len()
	score += e.weights.OpponentStable * StableDiscs(board, p.Opponent()).Len()

	score += Frontier(board, p, e.weights.FrontierLogCoeff)

	score += e.weights.OpponentMobility * len(board.LegalMoves(p.Opponent()))

	return score
}

// isExtreme returns whether a coordinate is on the boundary of its axis.
func isExtreme(c int) bool {
	return c == 0 || c == models.Size-1
}

// IsCorner returns whether a cell is a corner of the cube.
func IsCorner(x, y, z int) bool {
	return isExtreme(x) && isExtreme(y) && isExtreme(z)
}
