package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the length of every axis of the cube.
	Size = 4

	// CellCount is the number of cells on the board.
	CellCount = Size * Size * Size
)

// CellState is the content of a single cell.
type CellState int8

const (
	Empty CellState = 0
	Black CellState = 1
	White CellState = -1
)

// Player is the side to move. It is kept apart from CellState on purpose,
// use Cell() to compare a player with the content of a cell.
type Player int8

const (
	PlayerBlack Player = 1
	PlayerWhite Player = -1
)

var (
	ErrInvalidBoardShape = errors.New("invalid board shape")
	ErrInvalidCellValue  = errors.New("invalid cell value")
	ErrInvalidMove       = errors.New("invalid move")
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return -p
}

// Cell returns the cell state of a disc owned by p.
func (p Player) Cell() CellState {
	return CellState(p)
}

func (p Player) String() string {
	switch p {
	case PlayerBlack:
		return "black"
	case PlayerWhite:
		return "white"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

// Board is a 4x4x4 cube of cells. It is a plain value: copying a Board copies
// all cells, so a search can branch without sharing state.
type Board struct {
	cells [CellCount]CellState
}

// IsOnBoard returns whether all coordinates are in [0, Size).
func IsOnBoard(x, y, z int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size && z >= 0 && z < Size
}

func index(x, y, z int) int {
	return x*Size*Size + y*Size + z
}

// NewBoardEmpty creates a board without any discs.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardStart creates the starting board: the 8 center cells are filled,
// alternating colors such that no two face-adjacent discs have the same color.
func NewBoardStart() Board {
	var b Board
	for x := 1; x <= 2; x++ {
		for y := 1; y <= 2; y++ {
			for z := 1; z <= 2; z++ {
				if (x+y+z)%2 == 0 {
					b.cells[index(x, y, z)] = Black
				} else {
					b.cells[index(x, y, z)] = White
				}
			}
		}
	}
	return b
}

// NewBoardFromCells creates a board from a nested [x][y][z] slice, as received from clients.
func NewBoardFromCells(cells [][][]int) (Board, error) {
	var b Board

	if len(cells) != Size {
		return Board{}, fmt.Errorf("%w: expected %d layers, got %d", ErrInvalidBoardShape, Size, len(cells))
	}

	for x, layer := range cells {
		if len(layer) != Size {
			return Board{}, fmt.Errorf("%w: layer %d has %d rows", ErrInvalidBoardShape, x, len(layer))
		}

		for y, row := range layer {
			if len(row) != Size {
				return Board{}, fmt.Errorf("%w: row %d,%d has %d cells", ErrInvalidBoardShape, x, y, len(row))
			}

			for z, value := range row {
				switch CellState(value) {
				case Empty, Black, White:
					b.cells[index(x, y, z)] = CellState(value)
				default:
					return Board{}, fmt.Errorf("%w: %d at (%d,%d,%d)", ErrInvalidCellValue, value, x, y, z)
				}
			}
		}
	}

	return b, nil
}

// NewBoardFromString parses the output of Board.String().
func NewBoardFromString(s string) (Board, error) {
	if len(s) != CellCount {
		return Board{}, fmt.Errorf("%w: board string must be %d characters long, got %d",
			ErrInvalidBoardShape, CellCount, len(s))
	}

	var b Board
	for i, c := range s {
		switch c {
		case '.':
			b.cells[i] = Empty
		case 'x':
			b.cells[i] = Black
		case 'o':
			b.cells[i] = White
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidCellValue, c, i)
		}
	}

	return b, nil
}

// Get returns the content of a cell. The coordinates must be on the board.
func (b Board) Get(x, y, z int) CellState {
	return b.cells[index(x, y, z)]
}

// With returns a copy of the board with one cell replaced. This is used to set up positions.
func (b Board) With(x, y, z int, state CellState) Board {
	b.cells[index(x, y, z)] = state
	return b
}

// Cells returns the board as a nested [x][y][z] slice.
func (b Board) Cells() [][][]int {
	cells := make([][][]int, Size)
	for x := range Size {
		cells[x] = make([][]int, Size)
		for y := range Size {
			cells[x][y] = make([]int, Size)
			for z := range Size {
				cells[x][y][z] = int(b.cells[index(x, y, z)])
			}
		}
	}
	return cells
}

// CountDiscs returns the number of discs of a player.
func (b Board) CountDiscs(p Player) int {
	count := 0
	for _, cell := range b.cells {
		if cell == p.Cell() {
			count++
		}
	}
	return count
}

// CountEmpty returns the number of empty cells.
func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == Empty {
			count++
		}
	}
	return count
}

// IsTerminal returns whether neither player can move.
func (b Board) IsTerminal() bool {
	return !b.HasMoves(PlayerBlack) && !b.HasMoves(PlayerWhite)
}

// Winner returns the player with the most discs. The second return value is false for a draw.
func (b Board) Winner() (Player, bool) {
	black := b.CountDiscs(PlayerBlack)
	white := b.CountDiscs(PlayerWhite)

	switch {
	case black > white:
		return PlayerBlack, true
	case white > black:
		return PlayerWhite, true
	default:
		return 0, false
	}
}

// ASCIIArtLines returns the ascii art lines for the board, one block per x layer.
func (b Board) ASCIIArtLines() []string {
	lines := make([]string, 0, Size*(Size+2))

	for x := range Size {
		lines = append(lines, fmt.Sprintf("x=%d +-0-1-2-3-+", x))
		for y := range Size {
			line := fmt.Sprintf("  y=%d ", y)
			for z := range Size {
				switch b.cells[index(x, y, z)] {
				case Black:
					line += "● "
				case White:
					line += "○ "
				default:
					line += "· "
				}
			}
			lines = append(lines, line+"|")
		}
		lines = append(lines, "      +---------+")
	}

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}

// String returns a compact representation with one character per cell in index order.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, cell := range b.cells {
		switch cell {
		case Black:
			sb.WriteByte('x')
		case White:
			sb.WriteByte('o')
		default:
			sb.WriteByte('.')
		}
	}

	return sb.String()
}
