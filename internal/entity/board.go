package entity

import (
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

const (
	BoardRows = 8
	BoardCols = 8

	// BoardCells is the number of chips that fit on the board.
	BoardCells = BoardRows * BoardCols
)

// Cell is the state of a single board square.
type Cell uint8

const (
	Empty Cell = iota
	Yellow
	Red
)

const (
	EmptyMark  = '0'
	YellowMark = 'Y'
	RedMark    = 'R'
)

// Mark returns the character used when the cell is rendered.
func (that Cell) Mark() byte {
	switch that {
	case Yellow:
		return YellowMark
	case Red:
		return RedMark
	default:
		return EmptyMark
	}
}

// Opposite returns the other chip color. Empty stays Empty.
func (that Cell) Opposite() Cell {
	switch that {
	case Yellow:
		return Red
	case Red:
		return Yellow
	default:
		return Empty
	}
}

func (that Cell) String() string {
	switch that {
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return "empty"
	}
}

// CellFromMark maps a color letter of the RESET command to a chip.
func CellFromMark(mark byte) (Cell, error) {
	switch mark {
	case YellowMark:
		return Yellow, nil
	case RedMark:
		return Red, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidColor, mark)
	}
}

// Board is an 8x8 grid indexed [row][col]; row 0 is the bottom row and col 0 is column A.
type Board [BoardRows][BoardCols]Cell

// ColumnFromLetter maps A..H to a column index.
func ColumnFromLetter(letter byte) (int, error) {
	if letter < 'A' || letter >= 'A'+BoardCols {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidColumn, letter)
	}
	return int(letter - 'A'), nil
}

// ColumnLetter returns the letter of a column index.
func ColumnLetter(col int) byte {
	return byte('A' + col)
}

func (that *Board) Get(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return that[row][col]
}

// InBounds reports whether row and col address a square of the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardRows && col >= 0 && col < BoardCols
}

// Clear empties every square.
func (that *Board) Clear() {
	*that = Board{}
}

// IsColumnFull reports whether the top square of the column is taken.
func (that *Board) IsColumnFull(col int) bool {
	return that[BoardRows-1][col] != Empty
}

// AvailableColumns lists the columns that can still take a chip, left to right.
func (that *Board) AvailableColumns() []int {
	columns := make([]int, 0, BoardCols)
	for col := range BoardCols {
		if !that.IsColumnFull(col) {
			columns = append(columns, col)
		}
	}
	return columns
}

// Drop places the chip in the lowest empty square of the column and returns its row.
func (that *Board) Drop(col int, chip Cell) (int, error) {
	if col < 0 || col >= BoardCols {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, col)
	}

	for row := range BoardRows {
		if that[row][col] == Empty {
			that[row][col] = chip
			return row, nil
		}
	}

	return 0, fmt.Errorf("%w: %c", apperror.ErrColumnFull, ColumnLetter(col))
}

// Count returns the number of occupied squares.
func (that *Board) Count() int {
	count := 0
	for row := range BoardRows {
		for col := range BoardCols {
			if that[row][col] != Empty {
				count++
			}
		}
	}
	return count
}
