package protocol

import (
	"bytes"
	"io"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

// ResponseCapacity is the logical size limit of a response; a board render fills it exactly.
const ResponseCapacity = 113

// Status tokens.
const (
	StatusOK      = "OK\n"
	StatusNoGame  = "NOGAME\n"
	StatusOOT     = "OOT\n"
	StatusWin     = "WIN\n"
	StatusLose    = "LOSE\n"
	StatusTie     = "TIE\n"
	StatusInvalid = "INVALID\n"
)

const boardHeader = "\n  ABCDEFGH\n  --------\n"

// OutcomeStatus maps a finished game to its token, anything else to OK.
func OutcomeStatus(outcome entity.Outcome) string {
	switch outcome {
	case entity.OutcomeWin:
		return StatusWin
	case entity.OutcomeLose:
		return StatusLose
	case entity.OutcomeDraw:
		return StatusTie
	default:
		return StatusOK
	}
}

// RenderBoard draws the board from row 8 at the top down to row 1.
func RenderBoard(board *entity.Board) []byte {
	var buf bytes.Buffer
	buf.Grow(ResponseCapacity)

	buf.WriteString(boardHeader)
	for row := entity.BoardRows - 1; row >= 0; row-- {
		buf.WriteByte(byte('1' + row))
		buf.WriteByte('|')
		for col := range entity.BoardCols {
			buf.WriteByte(board[row][col].Mark())
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("\n\n")

	return buf.Bytes()
}

// Response holds the latest reply. Its length is the number of bytes written, capped at ResponseCapacity.
type Response struct {
	data []byte
}

func NewResponse() *Response {
	return &Response{data: make([]byte, 0, ResponseCapacity)}
}

// Set replaces the content with text.
func (that *Response) Set(text []byte) {
	if len(text) > ResponseCapacity {
		text = text[:ResponseCapacity]
	}
	that.data = append(that.data[:0], text...)
}

func (that *Response) SetStatus(status string) {
	that.Set([]byte(status))
}

func (that *Response) SetBoard(board *entity.Board) {
	that.Set(RenderBoard(board))
}

func (that *Response) Len() int {
	return len(that.data)
}

// Bytes returns a copy of the content.
func (that *Response) Bytes() []byte {
	return bytes.Clone(that.data)
}

func (that *Response) String() string {
	return string(that.data)
}

// ReadAt copies the content starting at off. Reading at or past the end returns 0, io.EOF.
func (that *Response) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(that.data)) {
		return 0, io.EOF
	}

	n := copy(p, that.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
