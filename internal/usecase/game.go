package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/protocol"
)

// GameUseCase runs one command at a time against the single session and keeps the latest response.
type GameUseCase interface {
	// Handle classifies raw and applies it. It reports false when the frame was
	// dropped without touching the response.
	Handle(ctx context.Context, raw []byte) (protocol.Command, bool)

	ReadResponse(p []byte, off int64) (int, error)
	Board() []byte
	Game() entity.Game
}

type gameEngine interface {
	Reset(chip entity.Cell) error
	DropChip(col int) (entity.Outcome, error)
	ComputerTurn() (entity.Outcome, error)
	Board() entity.Board
	Game() entity.Game
}

type eventPublisher interface {
	Publish(ctx context.Context, event *entity.Event) error
	RecordOutcome(ctx context.Context, outcome entity.Outcome) error
}

type gameUseCase struct {
	logger    *slog.Logger
	engine    gameEngine
	publisher eventPublisher

	// strict answers malformed frames with INVALID instead of dropping them.
	strict bool

	mu       sync.Mutex
	response *protocol.Response
}

func NewGameUseCase(logger *slog.Logger, engine gameEngine, publisher eventPublisher, strict bool) GameUseCase {
	return &gameUseCase{
		logger:    logger.With("component", "usecase"),
		engine:    engine,
		publisher: publisher,
		strict:    strict,
		response:  protocol.NewResponse(),
	}
}

func (that *gameUseCase) Handle(ctx context.Context, raw []byte) (protocol.Command, bool) {
	log := that.logger.With("method", "Handle")

	cmd := protocol.Classify(raw)

	that.mu.Lock()
	wasActive := that.engine.Game().Active

	err := that.dispatch(cmd)
	if err != nil {
		if !that.strict {
			that.mu.Unlock()
			log.Debug("frame dropped", "frame", string(protocol.Frame(raw)), "error", err)
			return cmd, false
		}
		that.response.SetStatus(protocol.StatusInvalid)
	}

	game := that.engine.Game()
	response := that.response.Bytes()
	that.mu.Unlock()

	log.Debug("command handled", "command", cmd.String(), "response", string(response))

	event := &entity.Event{
		ID:        uuid.NewString(),
		Command:   cmd.String(),
		Response:  string(response),
		Outcome:   game.Outcome,
		TurnCount: game.TurnCount,
		CreatedAt: time.Now().UTC(),
	}
	that.publish(ctx, event, wasActive && game.IsFinished())

	return cmd, true
}

// dispatch applies cmd and writes the response. An error means the frame is malformed.
func (that *gameUseCase) dispatch(cmd protocol.Command) error {
	switch cmd.Kind {
	case protocol.KindReset:
		if err := that.engine.Reset(cmd.Chip); err != nil {
			return err
		}
		that.response.SetStatus(protocol.StatusOK)
		return nil

	case protocol.KindBoard:
		board := that.engine.Board()
		that.response.SetBoard(&board)
		return nil

	case protocol.KindDropChip:
		outcome, err := that.engine.DropChip(cmd.Column)
		return that.respondToMove(outcome, err)

	case protocol.KindComputerTurn:
		outcome, err := that.engine.ComputerTurn()
		return that.respondToMove(outcome, err)

	default:
		return apperror.ErrInvalidCommand
	}
}

func (that *gameUseCase) respondToMove(outcome entity.Outcome, err error) error {
	switch {
	case err == nil:
		that.response.SetStatus(protocol.OutcomeStatus(outcome))
		return nil
	case errors.Is(err, apperror.ErrNoGame):
		that.response.SetStatus(protocol.StatusNoGame)
		return nil
	case errors.Is(err, apperror.ErrOutOfTurn):
		that.response.SetStatus(protocol.StatusOOT)
		return nil
	case errors.Is(err, apperror.ErrColumnFull), errors.Is(err, apperror.ErrInvalidColumn):
		return err
	default:
		that.logger.Error("move failed", "error", err)
		return err
	}
}

func (that *gameUseCase) publish(ctx context.Context, event *entity.Event, finished bool) {
	log := that.logger.With("method", "publish")

	if err := that.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish event", "command", event.Command, "error", err)
	}

	if !finished {
		return
	}

	if err := that.publisher.RecordOutcome(ctx, event.Outcome); err != nil {
		log.Error("failed to record outcome", "outcome", event.Outcome, "error", err)
	}
}

func (that *gameUseCase) ReadResponse(p []byte, off int64) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.response.ReadAt(p, off)
}

// Board renders the current board without touching the response.
func (that *gameUseCase) Board() []byte {
	that.mu.Lock()
	defer that.mu.Unlock()

	board := that.engine.Board()
	return protocol.RenderBoard(&board)
}

func (that *gameUseCase) Game() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Game()
}
