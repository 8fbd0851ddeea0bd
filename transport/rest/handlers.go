package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	BoardHandler(w http.ResponseWriter, _ *http.Request)
	StatsHandler(w http.ResponseWriter, r *http.Request)
}

type boardRenderer interface {
	Board() []byte
}

type statsReader interface {
	Stats(ctx context.Context) (map[string]int64, error)
}

type handlers struct {
	logger *slog.Logger
	board  boardRenderer
	stats  statsReader
}

func NewHandlers(logger *slog.Logger, board boardRenderer, stats statsReader) Handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		board:  board,
		stats:  stats,
	}
}

// BoardHandler renders the board without changing the protocol response.
func (that *handlers) BoardHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(that.board.Board()); err != nil {
		that.logger.Error("failed to write board", "error", err)
	}
}

func (that *handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StatsHandler")

	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("failed to encode stats", "error", err)
	}
}
