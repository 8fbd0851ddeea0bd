package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

type BotService interface {
	ChooseColumn(board *entity.Board) (int, error)
}

type botService struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewBotService returns a bot picking uniformly among columns with room.
// A nil random source is seeded from the clock.
func NewBotService(random *rand.Rand) BotService {
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok
	}

	return &botService{
		random: random,
	}
}

func (that *botService) ChooseColumn(board *entity.Board) (int, error) {
	availableColumns := board.AvailableColumns()
	if len(availableColumns) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return availableColumns[that.random.Intn(len(availableColumns))], nil
}
