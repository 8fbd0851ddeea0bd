package apperror

import "errors"

var (
	ErrNoGame           = errors.New("no active game")
	ErrOutOfTurn        = errors.New("it's not your turn")
	ErrColumnFull       = errors.New("column is full")
	ErrInvalidColumn    = errors.New("invalid column")
	ErrInvalidColor     = errors.New("invalid chip color")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrNoAvailableMoves = errors.New("no available moves")
)
