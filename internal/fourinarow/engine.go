package fourinarow

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

type botService interface {
	ChooseColumn(board *entity.Board) (int, error)
}

// Engine owns the session and applies validated moves to it.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	game     *entity.Game
	detector *Detector
	bot      botService
}

// NewEngine returns an engine with no game in progress.
func NewEngine(detector *Detector, bot botService) *Engine {
	return &Engine{
		game:     &entity.Game{},
		detector: detector,
		bot:      bot,
	}
}

// Reset discards the current session and starts a new one with the player holding chip.
func (that *Engine) Reset(chip entity.Cell) error {
	game, err := entity.NewGame(chip)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.game = game
	return nil
}

// Game returns a copy of the session.
func (that *Engine) Game() entity.Game {
	return *that.game
}

// Board returns a copy of the board.
func (that *Engine) Board() entity.Board {
	return that.game.Board
}

// DropChip places the player's chip in col.
func (that *Engine) DropChip(col int) (entity.Outcome, error) {
	if err := that.game.ConfirmTurn(entity.SidePlayer); err != nil {
		return that.game.Outcome, err
	}

	return that.place(entity.SidePlayer, col)
}

// ComputerTurn lets the computer pick a column with room and place its chip there.
// A board without room finishes the game as a draw.
func (that *Engine) ComputerTurn() (entity.Outcome, error) {
	if err := that.game.ConfirmTurn(entity.SideComputer); err != nil {
		return that.game.Outcome, err
	}

	col, err := that.bot.ChooseColumn(&that.game.Board)
	if errors.Is(err, apperror.ErrNoAvailableMoves) {
		that.game.Finish(entity.OutcomeDraw)
		return that.game.Outcome, nil
	}
	if err != nil {
		return that.game.Outcome, fmt.Errorf("computer failed to choose column: %w", err)
	}

	return that.place(entity.SideComputer, col)
}

// place drops the side's chip, counts the turn and updates the outcome.
func (that *Engine) place(side entity.Side, col int) (entity.Outcome, error) {
	if _, err := that.game.Board.Drop(col, that.game.ChipOf(side)); err != nil {
		return that.game.Outcome, fmt.Errorf("invalid turn: %w", err)
	}
	that.game.TurnCount++

	outcome := that.detector.Evaluate(that.game, side)
	if outcome.IsTerminal() {
		that.game.Finish(outcome)
		return outcome, nil
	}

	that.game.Turn = side.Opponent()
	return outcome, nil
}
