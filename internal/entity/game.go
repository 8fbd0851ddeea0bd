package entity

import (
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

// Side is who owns the next move.
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Opponent returns the other side.
func (that Side) Opponent() Side {
	if that == SidePlayer {
		return SideComputer
	}
	return SidePlayer
}

// Outcome is reported from the player's point of view.
type Outcome string

const (
	OutcomeNone       Outcome = ""
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeLose       Outcome = "lose"
	OutcomeDraw       Outcome = "draw"
)

// IsTerminal reports whether the outcome ends the game.
func (that Outcome) IsTerminal() bool {
	return that == OutcomeWin || that == OutcomeLose || that == OutcomeDraw
}

// Game is the state of the single session served by the engine.
type Game struct {
	Board        Board   `json:"-"`
	Active       bool    `json:"active"`
	Turn         Side    `json:"turn"`
	PlayerChip   Cell    `json:"player_chip"`
	ComputerChip Cell    `json:"computer_chip"`
	TurnCount    int     `json:"turn_count"`
	Outcome      Outcome `json:"outcome"`
}

// NewGame starts a session where the player holds playerChip. Yellow always opens.
func NewGame(playerChip Cell) (*Game, error) {
	if playerChip != Yellow && playerChip != Red {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidColor, playerChip)
	}

	turn := SidePlayer
	if playerChip != Yellow {
		turn = SideComputer
	}

	return &Game{
		Active:       true,
		Turn:         turn,
		PlayerChip:   playerChip,
		ComputerChip: playerChip.Opposite(),
		Outcome:      OutcomeInProgress,
	}, nil
}

// ChipOf returns the chip color played by side.
func (that *Game) ChipOf(side Side) Cell {
	if side == SidePlayer {
		return that.PlayerChip
	}
	return that.ComputerChip
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

// ConfirmTurn checks that side may place a chip now.
func (that *Game) ConfirmTurn(side Side) error {
	switch {
	case !that.Active:
		return apperror.ErrNoGame
	case that.Turn != side:
		return apperror.ErrOutOfTurn
	default:
		return nil
	}
}

// Finish moves the game into its terminal state.
func (that *Game) Finish(outcome Outcome) {
	that.Outcome = outcome
	that.Active = false
}

// IsFull reports whether the turn counter reached the board capacity.
func (that *Game) IsFull() bool {
	return that.TurnCount >= BoardCells
}
