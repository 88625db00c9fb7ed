package models

import (
	"encoding/json"
	"fmt"
)

// Direction is a step between two neighbouring cells.
type Direction struct {
	DX, DY, DZ int
}

// Directions contains all 26 directions in which discs can be captured.
var Directions = []Direction{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
	{1, 1, 0}, {-1, -1, 0},
	{1, -1, 0}, {-1, 1, 0},
	{1, 0, 1}, {-1, 0, -1},
	{1, 0, -1}, {-1, 0, 1},
	{0, 1, 1}, {0, -1, -1},
	{0, 1, -1}, {0, -1, 1},
	{1, 1, 1}, {-1, -1, -1},
	{1, -1, 1}, {-1, 1, -1},
	{1, 1, -1}, {-1, -1, 1},
	{1, -1, -1}, {-1, 1, 1},
}

// Move is the coordinate of a cell to place a disc on.
type Move struct {
	X, Y, Z int
}

// String returns the move as (x,y,z).
func (m Move) String() string {
	return fmt.Sprintf("(%d,%d,%d)", m.X, m.Y, m.Z)
}

// MarshalJSON encodes a move as [x, y, z].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{m.X, m.Y, m.Z})
}

// UnmarshalJSON decodes a move from [x, y, z].
func (m *Move) UnmarshalJSON(data []byte) error {
	var coords []int
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("cannot decode move: %w", err)
	}

	if len(coords) != 3 { //nolint:mnd
		return fmt.Errorf("%w: expected 3 coordinates, got %d", ErrInvalidMove, len(coords))
	}

	if !IsOnBoard(coords[0], coords[1], coords[2]) {
		return fmt.Errorf("%w: %v is not on the board", ErrInvalidMove, coords)
	}

	*m = Move{X: coords[0], Y: coords[1], Z: coords[2]}
	return nil
}

// countFlips returns how many discs a move by p would flip in direction d.
func (b Board) countFlips(m Move, d Direction, p Player) int {
	x, y, z := m.X+d.DX, m.Y+d.DY, m.Z+d.DZ
	flips := 0

	for IsOnBoard(x, y, z) && b.cells[index(x, y, z)] == p.Opponent().Cell() {
		flips++
		x, y, z = x+d.DX, y+d.DY, z+d.DZ
	}

	if flips > 0 && IsOnBoard(x, y, z) && b.cells[index(x, y, z)] == p.Cell() {
		return flips
	}

	return 0
}

// IsLegalMove returns whether p can place a disc at m.
func (b Board) IsLegalMove(m Move, p Player) bool {
	if !IsOnBoard(m.X, m.Y, m.Z) || b.cells[index(m.X, m.Y, m.Z)] != Empty {
		return false
	}

	for _, d := range Directions {
		if b.countFlips(m, d, p) > 0 {
			return true
		}
	}

	return false
}

// LegalMoves returns all legal moves of p, ordered by x, then y, then z.
func (b Board) LegalMoves(p Player) []Move {
	moves := make([]Move, 0)

	for x := range Size {
		for y := range Size {
			for z := range Size {
				move := Move{X: x, Y: y, Z: z}
				if b.IsLegalMove(move, p) {
					moves = append(moves, move)
				}
			}
		}
	}

	return moves
}

// HasMoves returns whether p has any legal move.
func (b Board) HasMoves(p Player) bool {
	for i, cell := range b.cells {
		if cell != Empty {
			continue
		}

		move := Move{X: i / (Size * Size), Y: (i / Size) % Size, Z: i % Size}
		if b.IsLegalMove(move, p) {
			return true
		}
	}

	return false
}

// ApplyMove returns a new board with the move of p played and all captured discs flipped.
// The receiver is not modified.
func (b Board) ApplyMove(m Move, p Player) (Board, error) {
	if !IsOnBoard(m.X, m.Y, m.Z) {
		return Board{}, fmt.Errorf("%w: %s is not on the board", ErrInvalidMove, m)
	}

	if b.cells[index(m.X, m.Y, m.Z)] != Empty {
		return Board{}, fmt.Errorf("%w: %s is not empty", ErrInvalidMove, m)
	}

	child := b
	flipped := 0

	for _, d := range Directions {
		flips := b.countFlips(m, d, p)

		x, y, z := m.X, m.Y, m.Z
		for range flips {
			x, y, z = x+d.DX, y+d.DY, z+d.DZ
			child.cells[index(x, y, z)] = p.Cell()
		}

		flipped += flips
	}

	if flipped == 0 {
		return Board{}, fmt.Errorf("%w: %s does not flip any discs", ErrInvalidMove, m)
	}

	child.cells[index(m.X, m.Y, m.Z)] = p.Cell()
	return child, nil
}

// MustApplyMove works like ApplyMove, but panics on an invalid move.
// Only use this with moves returned by LegalMoves.
func (b Board) MustApplyMove(m Move, p Player) Board {
	child, err := b.ApplyMove(m, p)
	if err != nil {
		panic(err)
	}
	return child
}
