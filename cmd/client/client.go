package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// Client sends frames over a WebSocket connection and prints each response.
type Client struct {
	Addr    string
	Timeout time.Duration
	Out     io.Writer
}

// Send writes the frames in order. A frame the server drops prints "(no response)".
func (that *Client) Send(ctx context.Context, frames ...string) error {
	var conn *websocket.Conn
	defer func() {
		if conn != nil {
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		}
	}()

	for _, frame := range frames {
		if conn == nil {
			var err error
			if conn, err = that.dial(ctx); err != nil {
				return err
			}
		}

		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return fmt.Errorf("failed to send %q: %w", frame, err)
		}

		response, err := that.receive(conn)
		if err != nil {
			return fmt.Errorf("failed to read response to %q: %w", frame, err)
		}

		if response == nil {
			// a timed out read leaves the connection unusable
			_ = conn.Close()
			conn = nil

			fmt.Fprintln(that.Out, "(no response)")
			continue
		}

		if _, err = that.Out.Write(response); err != nil {
			return fmt.Errorf("failed to print response: %w", err)
		}
	}

	return nil
}

func (that *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, that.Addr, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", that.Addr, err)
	}

	return conn, nil
}

// receive returns nil when nothing arrives within the timeout.
func (that *Client) receive(conn *websocket.Conn) ([]byte, error) {
	_ = conn.SetReadDeadline(time.Now().Add(that.Timeout))

	_, response, err := conn.ReadMessage()
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return response, nil
}
