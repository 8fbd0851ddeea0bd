package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/fourinarow"
	"github.com/rocketscienceinc/fourinarow-backend/internal/protocol"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(ctx context.Context, event *entity.Event) error {
	args := that.Called(ctx, event)
	return args.Error(0)
}

func (that *mockPublisher) RecordOutcome(ctx context.Context, outcome entity.Outcome) error {
	args := that.Called(ctx, outcome)
	return args.Error(0)
}

type scriptedBot struct {
	columns []int
}

func (that *scriptedBot) ChooseColumn(board *entity.Board) (int, error) {
	if len(that.columns) > 0 {
		col := that.columns[0]
		that.columns = that.columns[1:]
		return col, nil
	}

	available := board.AvailableColumns()
	if len(available) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}
	return available[0], nil
}

func newTestUseCase(t *testing.T, publisher eventPublisher, strict bool, columns ...int) GameUseCase {
	t.Helper()

	detector, err := fourinarow.NewDetector(fourinarow.StrategyReference)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := fourinarow.NewEngine(detector, &scriptedBot{columns: columns})

	return NewGameUseCase(logger, engine, publisher, strict)
}

func send(t *testing.T, useCase GameUseCase, frame string) string {
	t.Helper()

	_, accepted := useCase.Handle(context.Background(), []byte(frame))
	require.True(t, accepted, "frame %q was dropped", frame)

	p := make([]byte, protocol.ResponseCapacity+1)
	n, err := useCase.ReadResponse(p, 0)
	require.ErrorIs(t, err, io.EOF)
	return string(p[:n])
}

func TestGameUseCase_Scenario(t *testing.T) {
	// Given: a use case whose computer plays column D
	useCase := newTestUseCase(t, repository.NewNopEventRepository(), false, 3)

	// When: a short game is played
	assert.Equal(t, protocol.StatusOK, send(t, useCase, "RESET Y"))
	assert.Equal(t, protocol.StatusOK, send(t, useCase, "DROPC A"))
	assert.Equal(t, protocol.StatusOK, send(t, useCase, "CTURN"))
	board := send(t, useCase, "BOARD")

	// Then: both chips rest on the bottom row
	assert.Contains(t, board, "1|Y00R0000\n")
	assert.Contains(t, board, "2|00000000\n")
	assert.Len(t, board, protocol.ResponseCapacity)

	game := useCase.Game()
	assert.Equal(t, 2, game.TurnCount)
	assert.Equal(t, entity.SidePlayer, game.Turn)
}

func TestGameUseCase_QueryBoard(t *testing.T) {
	t.Run("Board before any reset is empty", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false)

		board := send(t, useCase, "BOARD")

		assert.Equal(t, 8, strings.Count(board, "|00000000\n"))
	})

	t.Run("Board is idempotent", func(t *testing.T) {
		// Given: a game with one chip
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false)
		send(t, useCase, "RESET Y")
		send(t, useCase, "DROPC E")
		before := useCase.Game()

		// When: the board is queried twice
		first := send(t, useCase, "BOARD")
		second := send(t, useCase, "BOARD")

		// Then: both renders match and the session is unchanged
		assert.Equal(t, first, second)
		assert.Equal(t, before, useCase.Game())
		assert.Equal(t, first, string(useCase.Board()))
	})
}

func TestGameUseCase_Preconditions(t *testing.T) {
	t.Run("Moves before reset report NOGAME", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false)

		assert.Equal(t, protocol.StatusNoGame, send(t, useCase, "DROPC A"))
		assert.Equal(t, protocol.StatusNoGame, send(t, useCase, "CTURN"))
	})

	t.Run("Player out of turn reports OOT", func(t *testing.T) {
		// Given: the player holds red so the computer opens
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false)
		send(t, useCase, "RESET R")

		// When: the player drops first
		response := send(t, useCase, "DROPC A")

		// Then: OOT is reported and the board is empty
		assert.Equal(t, protocol.StatusOOT, response)
		assert.Equal(t, entity.Board{}, useCase.Game().Board)
	})

	t.Run("Computer out of turn reports OOT", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false)
		send(t, useCase, "RESET Y")

		assert.Equal(t, protocol.StatusOOT, send(t, useCase, "CTURN"))
	})
}

func TestGameUseCase_MalformedFrames(t *testing.T) {
	t.Run("Malformed frames are dropped silently", func(t *testing.T) {
		// Given: a use case holding an OK response and a publisher with no expectations
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("*entity.Event")).Return(nil).Once()
		useCase := newTestUseCase(t, publisher, false)
		send(t, useCase, "RESET Y")
		before := useCase.Game()

		for _, frame := range []string{"HELLO", "RESET G", "DROPC Z", "DROPC", "board", ""} {
			// When: a malformed frame is handled
			cmd, accepted := useCase.Handle(context.Background(), []byte(frame))

			// Then: it is dropped and neither the session nor the response changes
			assert.False(t, accepted, "frame %q", frame)
			assert.Equal(t, protocol.KindInvalid, cmd.Kind)
		}

		assert.Equal(t, before, useCase.Game())
		p := make([]byte, protocol.ResponseCapacity)
		n, _ := useCase.ReadResponse(p, 0)
		assert.Equal(t, protocol.StatusOK, string(p[:n]))
		publisher.AssertExpectations(t)
	})

	t.Run("Full column is dropped", func(t *testing.T) {
		// Given: column A is full and it is the player's turn
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false, 0, 0, 0, 0)
		send(t, useCase, "RESET Y")
		for range entity.BoardRows / 2 {
			send(t, useCase, "DROPC A")
			send(t, useCase, "CTURN")
		}

		// When: the player drops into A again
		_, accepted := useCase.Handle(context.Background(), []byte("DROPC A"))

		// Then: the frame is dropped and the turn still belongs to the player
		assert.False(t, accepted)
		assert.Equal(t, entity.SidePlayer, useCase.Game().Turn)
		assert.Equal(t, entity.BoardRows, useCase.Game().TurnCount)
	})

	t.Run("Strict mode answers INVALID", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), true)

		assert.Equal(t, protocol.StatusInvalid, send(t, useCase, "NOPE"))
		assert.Equal(t, protocol.StatusInvalid, send(t, useCase, "RESET X"))
	})
}

func TestGameUseCase_Outcomes(t *testing.T) {
	t.Run("Player win is reported and recorded", func(t *testing.T) {
		// Given: a publisher expecting one recorded win
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("*entity.Event")).Return(nil)
		publisher.On("RecordOutcome", mock.Anything, entity.OutcomeWin).Return(nil).Once()
		useCase := newTestUseCase(t, publisher, false, 0, 1, 2)

		// When: the player completes the bottom row A-D
		send(t, useCase, "RESET Y")
		for _, col := range []string{"A", "B", "C"} {
			require.Equal(t, protocol.StatusOK, send(t, useCase, "DROPC "+col))
			require.Equal(t, protocol.StatusOK, send(t, useCase, "CTURN"))
		}
		response := send(t, useCase, "DROPC D")

		// Then: WIN is reported and later moves see no game
		assert.Equal(t, protocol.StatusWin, response)
		assert.Equal(t, protocol.StatusNoGame, send(t, useCase, "CTURN"))
		assert.Equal(t, protocol.StatusNoGame, send(t, useCase, "DROPC E"))
		publisher.AssertExpectations(t)
	})

	t.Run("Computer win is a loss", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false, 0, 1, 2, 3)

		send(t, useCase, "RESET R")
		for _, col := range []string{"A", "B", "C"} {
			require.Equal(t, protocol.StatusOK, send(t, useCase, "CTURN"))
			require.Equal(t, protocol.StatusOK, send(t, useCase, "DROPC "+col))
		}

		assert.Equal(t, protocol.StatusLose, send(t, useCase, "CTURN"))
	})

	t.Run("Reset after a finished game starts over", func(t *testing.T) {
		useCase := newTestUseCase(t, repository.NewNopEventRepository(), false, 0, 1, 2)
		send(t, useCase, "RESET Y")
		for _, col := range []string{"A", "B", "C"} {
			send(t, useCase, "DROPC "+col)
			send(t, useCase, "CTURN")
		}
		require.Equal(t, protocol.StatusWin, send(t, useCase, "DROPC D"))

		assert.Equal(t, protocol.StatusOK, send(t, useCase, "RESET Y"))
		assert.Equal(t, protocol.StatusOK, send(t, useCase, "DROPC D"))
		assert.Equal(t, 1, useCase.Game().TurnCount)
	})

	t.Run("Publisher failure does not change the response", func(t *testing.T) {
		publisher := &mockPublisher{}
		publisher.On("Publish", mock.Anything, mock.AnythingOfType("*entity.Event")).Return(errRedisDown)
		useCase := newTestUseCase(t, publisher, false)

		assert.Equal(t, protocol.StatusOK, send(t, useCase, "RESET Y"))
		assert.Equal(t, protocol.StatusOK, send(t, useCase, "DROPC A"))
		publisher.AssertNumberOfCalls(t, "Publish", 2)
	})
}
