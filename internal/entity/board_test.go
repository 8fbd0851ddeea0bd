package entity

import (
	"testing"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Drop(t *testing.T) {
	t.Run("Chips stack from the bottom", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: two chips are dropped into column C
		first, err := board.Drop(2, Yellow)
		require.NoError(t, err)
		second, err := board.Drop(2, Red)
		require.NoError(t, err)

		// Then: they occupy rows 0 and 1
		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, Yellow, board.Get(0, 2))
		assert.Equal(t, Red, board.Get(1, 2))
		assert.Equal(t, Empty, board.Get(2, 2))
	})

	t.Run("Full column rejects the ninth chip", func(t *testing.T) {
		// Given: column A filled to the top
		var board Board
		for range BoardRows {
			_, err := board.Drop(0, Yellow)
			require.NoError(t, err)
		}
		before := board

		// When: another chip is dropped
		_, err := board.Drop(0, Red)

		// Then: ErrColumnFull is returned and the board is untouched
		require.ErrorIs(t, err, apperror.ErrColumnFull)
		assert.Equal(t, before, board)
		assert.True(t, board.IsColumnFull(0))
	})

	t.Run("Column outside the board", func(t *testing.T) {
		var board Board

		_, err := board.Drop(BoardCols, Yellow)
		require.ErrorIs(t, err, apperror.ErrInvalidColumn)

		_, err = board.Drop(-1, Yellow)
		require.ErrorIs(t, err, apperror.ErrInvalidColumn)
	})
}

func TestBoard_AvailableColumns(t *testing.T) {
	// Given: a board where columns B and H are full
	var board Board
	for range BoardRows {
		_, err := board.Drop(1, Yellow)
		require.NoError(t, err)
		_, err = board.Drop(7, Red)
		require.NoError(t, err)
	}

	// Then: only the other columns are offered
	assert.Equal(t, []int{0, 2, 3, 4, 5, 6}, board.AvailableColumns())
	assert.Equal(t, 2*BoardRows, board.Count())

	// When: the board is cleared
	board.Clear()

	// Then: every column is available again
	assert.Len(t, board.AvailableColumns(), BoardCols)
	assert.Zero(t, board.Count())
}

func TestColumnFromLetter(t *testing.T) {
	col, err := ColumnFromLetter('A')
	require.NoError(t, err)
	assert.Equal(t, 0, col)

	col, err = ColumnFromLetter('H')
	require.NoError(t, err)
	assert.Equal(t, 7, col)

	for _, letter := range []byte{'I', 'a', '@', ' '} {
		_, err = ColumnFromLetter(letter)
		assert.ErrorIs(t, err, apperror.ErrInvalidColumn, "letter %q", letter)
	}
}

func TestCellFromMark(t *testing.T) {
	cell, err := CellFromMark('Y')
	require.NoError(t, err)
	assert.Equal(t, Yellow, cell)

	cell, err = CellFromMark('R')
	require.NoError(t, err)
	assert.Equal(t, Red, cell)

	_, err = CellFromMark('y')
	assert.ErrorIs(t, err, apperror.ErrInvalidColor)
}

func TestCell_Mark(t *testing.T) {
	assert.Equal(t, byte('0'), Empty.Mark())
	assert.Equal(t, byte('Y'), Yellow.Mark())
	assert.Equal(t, byte('R'), Red.Mark())
	assert.Equal(t, Red, Yellow.Opposite())
	assert.Equal(t, Empty, Empty.Opposite())
}
