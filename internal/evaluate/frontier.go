package evaluate

import (
	"math"

	"github.com/lk16/cubello/internal/models"
)

// FrontierPenalty returns the penalty for a disc with the given number of empty neighbours.
// It is 0 for at most one empty neighbour and round(-a*ln(e)) otherwise.
func FrontierPenalty(emptyNeighbours int, a float64) int {
	if emptyNeighbours <= 1 {
		return 0
	}
	return int(math.Round(-a * math.Log(float64(emptyNeighbours))))
}

// Frontier returns the summed frontier penalty of the discs of p.
//
// Only discs on an edge or face of the cube are considered, and only neighbours
// along axes on which the disc is not on the boundary are counted. Corners and
// interior discs are skipped.
func Frontier(board models.Board, p models.Player, a float64) int {
	score := 0

	for x := range models.Size {
		for y := range models.Size {
			for z := range models.Size {
				if board.Get(x, y, z) != p.Cell() {
					continue
				}

				extremes := 0
				for _, c := range []int{x, y, z} {
					if isExtreme(c) {
						extremes++
					}
				}

				if extremes == 0 || IsCorner(x, y, z) {
					continue
				}

				score += FrontierPenalty(countEmptyNeighbours(board, x, y, z), a)
			}
		}
	}

	return score
}

// countEmptyNeighbours counts the empty cells next to (x,y,z) along the axes
// on which the cell is not on the boundary.
func countEmptyNeighbours(board models.Board, x, y, z int) int {
	axes := []models.Direction{{DX: 1}, {DY: 1}, {DZ: 1}}
	coords := []int{x, y, z}
	count := 0

	for i, axis := range axes {
		if isExtreme(coords[i]) {
			continue
		}

		for _, sign := range []int{1, -1} {
			nx, ny, nz := x+sign*axis.DX, y+sign*axis.DY, z+sign*axis.DZ
			if models.IsOnBoard(nx, ny, nz) && board.Get(nx, ny, nz) == models.Empty {
				count++
			}
		}
	}

	return count
}
