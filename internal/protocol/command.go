package protocol

import (
	"bytes"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

// MaxFrameSize is the number of bytes of a write that are looked at.
const MaxFrameSize = 8

// Kind identifies a command of the protocol.
type Kind int

const (
	KindInvalid Kind = iota
	KindReset
	KindBoard
	KindDropChip
	KindComputerTurn
)

func (that Kind) String() string {
	switch that {
	case KindReset:
		return "RESET"
	case KindBoard:
		return "BOARD"
	case KindDropChip:
		return "DROPC"
	case KindComputerTurn:
		return "CTURN"
	default:
		return "INVALID"
	}
}

// Command is a decoded frame. Chip is set for KindReset and Column for KindDropChip.
type Command struct {
	Kind   Kind
	Chip   entity.Cell
	Column int
}

func (that Command) String() string {
	switch that.Kind {
	case KindReset:
		return that.Kind.String() + " " + string(that.Chip.Mark())
	case KindDropChip:
		return that.Kind.String() + " " + string(entity.ColumnLetter(that.Column))
	default:
		return that.Kind.String()
	}
}

type rule struct {
	prefix string
	parse  func(arg []byte) (Command, bool)
}

// rules are matched in order, the first matching prefix wins.
var rules = []rule{
	{"RESET ", parseReset},
	{"BOARD", func([]byte) (Command, bool) { return Command{Kind: KindBoard}, true }},
	{"DROPC ", parseDropChip},
	{"CTURN", func([]byte) (Command, bool) { return Command{Kind: KindComputerTurn}, true }},
}

// Frame cuts raw to at most MaxFrameSize bytes and stops at the first NUL.
func Frame(raw []byte) []byte {
	if len(raw) > MaxFrameSize {
		raw = raw[:MaxFrameSize]
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// Classify decodes a raw write. Matching is case-sensitive and nothing is trimmed.
func Classify(raw []byte) Command {
	frame := Frame(raw)

	for _, r := range rules {
		if !bytes.HasPrefix(frame, []byte(r.prefix)) {
			continue
		}

		cmd, ok := r.parse(frame[len(r.prefix):])
		if !ok {
			return Command{Kind: KindInvalid}
		}
		return cmd
	}

	return Command{Kind: KindInvalid}
}

func parseReset(arg []byte) (Command, bool) {
	if len(arg) == 0 {
		return Command{}, false
	}

	chip, err := entity.CellFromMark(arg[0])
	if err != nil {
		return Command{}, false
	}

	return Command{Kind: KindReset, Chip: chip}, true
}

func parseDropChip(arg []byte) (Command, bool) {
	if len(arg) == 0 {
		return Command{}, false
	}

	col, err := entity.ColumnFromLetter(arg[0])
	if err != nil {
		return Command{}, false
	}

	return Command{Kind: KindDropChip, Column: col}, true
}
