package fourinarow

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

// Strategy selects which directions are scanned from every anchor cell.
type Strategy string

const (
	// StrategyReference scans right, up, up-right and down-right from each anchor.
	StrategyReference Strategy = "reference"
	// StrategyComplete scans all eight directions from each anchor.
	StrategyComplete Strategy = "complete"
)

// RunLength is the number of chips in a row that wins the game.
const RunLength = 4

var ErrUnknownStrategy = errors.New("unknown detector strategy")

type direction struct {
	dRow, dCol int
}

var (
	referenceDirections = []direction{
		{0, 1},  // right
		{1, 0},  // up
		{1, 1},  // up-right
		{-1, 1}, // down-right
	}

	completeDirections = append(append([]direction{}, referenceDirections...),
		direction{0, -1},
		direction{-1, 0},
		direction{-1, -1},
		direction{1, -1},
	)
)

// Detector classifies the board after a placement.
type Detector struct {
	strategy   Strategy
	directions []direction
}

func NewDetector(strategy Strategy) (*Detector, error) {
	switch strategy {
	case StrategyReference, "":
		return &Detector{strategy: StrategyReference, directions: referenceDirections}, nil
	case StrategyComplete:
		return &Detector{strategy: StrategyComplete, directions: completeDirections}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

func (that *Detector) Strategy() Strategy {
	return that.strategy
}

// HasRun reports whether chip has RunLength in a row anywhere on the board.
func (that *Detector) HasRun(board *entity.Board, chip entity.Cell) bool {
	if chip == entity.Empty {
		return false
	}

	for row := range entity.BoardRows {
		for col := range entity.BoardCols {
			if board[row][col] != chip {
				continue
			}

			for _, dir := range that.directions {
				if runFrom(board, chip, row, col, dir) {
					return true
				}
			}
		}
	}

	return false
}

func runFrom(board *entity.Board, chip entity.Cell, row, col int, dir direction) bool {
	for step := 1; step < RunLength; step++ {
		r, c := row+dir.dRow*step, col+dir.dCol*step
		if !entity.InBounds(r, c) || board[r][c] != chip {
			return false
		}
	}
	return true
}

// Evaluate returns the outcome after lastMover placed a chip.
// A computer win is reported as a loss for the player.
func (that *Detector) Evaluate(game *entity.Game, lastMover entity.Side) entity.Outcome {
	if that.HasRun(&game.Board, game.ChipOf(lastMover)) {
		if lastMover == entity.SidePlayer {
			return entity.OutcomeWin
		}
		return entity.OutcomeLose
	}

	if game.IsFull() {
		return entity.OutcomeDraw
	}

	return entity.OutcomeInProgress
}
