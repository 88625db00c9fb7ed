package evaluate

import (
	"github.com/lk16/cubello/internal/models"
)

// DiscSet is a set of cells.
type DiscSet struct {
	cells [models.CellCount]bool
	count int
}

func cellIndex(x, y, z int) int {
	return x*models.Size*models.Size + y*models.Size + z
}

// Add adds a cell to the set and returns whether it was new.
func (s *DiscSet) Add(x, y, z int) bool {
	i := cellIndex(x, y, z)
	if s.cells[i] {
		return false
	}
	s.cells[i] = true
	s.count++
	return true
}

// Remove removes a cell from the set.
func (s *DiscSet) Remove(x, y, z int) {
	i := cellIndex(x, y, z)
	if s.cells[i] {
		s.cells[i] = false
		s.count--
	}
}

// Has returns whether the set contains a cell.
func (s *DiscSet) Has(x, y, z int) bool {
	return s.cells[cellIndex(x, y, z)]
}

// Len returns the number of cells in the set.
func (s *DiscSet) Len() int {
	return s.count
}

// StableDiscs returns the discs of p that can not be flipped for the rest of the game.
// Corners are never part of the result, they are scored separately.
func StableDiscs(board models.Board, p models.Player) *DiscSet {
	stable := &DiscSet{}
	own := p.Cell()

	// Full lines of four.
	for _, d := range models.Directions {
		for x := range models.Size {
			for y := range models.Size {
				for z := range models.Size {
					if isFullLine(board, x, y, z, d, own) {
						for i := range models.Size {
							stable.Add(x+i*d.DX, y+i*d.DY, z+i*d.DZ)
						}
					}
				}
			}
		}
	}

	// Runs starting next to an owned corner.
	for _, corner := range Corners {
		if board.Get(corner.X, corner.Y, corner.Z) != own {
			continue
		}

		for _, d := range models.Directions {
			x, y, z := corner.X+d.DX, corner.Y+d.DY, corner.Z+d.DZ
			for models.IsOnBoard(x, y, z) && board.Get(x, y, z) == own {
				stable.Add(x, y, z)
				x, y, z = x+d.DX, y+d.DY, z+d.DZ
			}
		}
	}

	// Grow until a pass adds nothing.
	for changed := true; changed; {
		changed = false

		for x := range models.Size {
			for y := range models.Size {
				for z := range models.Size {
					if board.Get(x, y, z) != own || stable.Has(x, y, z) {
						continue
					}

					if isEnclosed(board, stable, x, y, z, own) {
						stable.Add(x, y, z)
						changed = true
					}
				}
			}
		}
	}

	for _, corner := range Corners {
		stable.Remove(corner.X, corner.Y, corner.Z)
	}

	return stable
}

// isFullLine returns whether the 4 cells starting at (x,y,z) in direction d are on the board and all owned.
func isFullLine(board models.Board, x, y, z int, d models.Direction, own models.CellState) bool {
	for i := range models.Size {
		cx, cy, cz := x+i*d.DX, y+i*d.DY, z+i*d.DZ
		if !models.IsOnBoard(cx, cy, cz) || board.Get(cx, cy, cz) != own {
			return false
		}
	}
	return true
}

// isEnclosed returns whether every line of sight from (x,y,z) ends at the board edge
// or an own disc before reaching an empty cell or an opposing disc.
// Stability is computed per player and the stable set only holds own discs, so
// an opposing disc blocks the line even when it is stable for the opponent.
func isEnclosed(board models.Board, stable *DiscSet, x, y, z int, own models.CellState) bool {
	for _, d := range models.Directions {
		nx, ny, nz := x+d.DX, y+d.DY, z+d.DZ

		for models.IsOnBoard(nx, ny, nz) {
			cell := board.Get(nx, ny, nz)

			if cell == own {
				break
			}

			if cell == models.Empty || !stable.Has(nx, ny, nz) {
				return false
			}

			nx, ny, nz = nx+d.DX, ny+d.DY, nz+d.DZ
		}
	}

	return true
}
