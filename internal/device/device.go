// Package device exposes the game as a byte stream: a write delivers a command
// frame, reads drain the response it produced.
package device

import (
	"context"
	"io"
	"sync"

	"github.com/rocketscienceinc/fourinarow-backend/internal/protocol"
)

type commandHandler interface {
	Handle(ctx context.Context, raw []byte) (protocol.Command, bool)
	ReadResponse(p []byte, off int64) (int, error)
}

// Device keeps one read cursor. Every frame that updates the response moves it back to 0.
type Device struct {
	handler commandHandler

	mu     sync.Mutex
	cursor int64
}

func New(handler commandHandler) *Device {
	return &Device{handler: handler}
}

// Write hands p to the game. It always accepts the whole slice;
// bytes past protocol.MaxFrameSize are ignored.
func (that *Device) Write(p []byte) (int, error) {
	return that.WriteContext(context.Background(), p)
}

func (that *Device) WriteContext(ctx context.Context, p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, accepted := that.handler.Handle(ctx, p); accepted {
		that.cursor = 0
	}

	return len(p), nil
}

// Read continues from the cursor and returns 0, io.EOF once the response is drained.
func (that *Device) Read(p []byte) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(p) == 0 {
		return 0, nil
	}

	n, err := that.handler.ReadResponse(p, that.cursor)
	that.cursor += int64(n)

	if n > 0 {
		return n, nil
	}
	return 0, err
}

// Exchange writes frame and drains the response it produced in one step, so
// callers sharing the device never read each other's replies. It reports
// false when the frame was dropped.
func (that *Device) Exchange(ctx context.Context, frame []byte) ([]byte, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, accepted := that.handler.Handle(ctx, frame); !accepted {
		return nil, false
	}
	that.cursor = 0

	response := make([]byte, 0, protocol.ResponseCapacity)
	chunk := make([]byte, protocol.ResponseCapacity)
	for {
		n, err := that.handler.ReadResponse(chunk, that.cursor)
		that.cursor += int64(n)
		response = append(response, chunk[:n]...)
		if n == 0 || err != nil {
			return response, true
		}
	}
}

// ReadAt reads the response at off without moving the cursor.
func (that *Device) ReadAt(p []byte, off int64) (int, error) {
	return that.handler.ReadResponse(p, off)
}

var (
	_ io.Writer   = (*Device)(nil)
	_ io.Reader   = (*Device)(nil)
	_ io.ReaderAt = (*Device)(nil)
)
