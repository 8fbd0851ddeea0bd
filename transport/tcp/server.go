package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	maxLineSize  = 256
	idleTimeout  = 5 * time.Minute
	writeTimeout = 10 * time.Second
)

type gameDevice interface {
	Exchange(ctx context.Context, raw []byte) ([]byte, bool)
}

// Server reads one command frame per line and writes back the response it produced.
// Dropped frames get no reply.
type Server struct {
	logger *slog.Logger
	device gameDevice

	wg sync.WaitGroup
}

func New(logger *slog.Logger, device gameDevice) *Server {
	return &Server{
		logger: logger.With("component", "tcp"),
		device: device,
	}
}

// Start - listens on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve accepts connections on listener and closes it when ctx is done.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	defer that.wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		connID := uuid.NewString()
		log.Info("connection established", "conn", connID, "remote", conn.RemoteAddr().String())

		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			that.handleConn(ctx, connID, conn)
		}()
	}
}

func (that *Server) handleConn(ctx context.Context, connID string, conn net.Conn) {
	log := that.logger.With("method", "handleConn", "conn", connID)

	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)

	for ctx.Err() == nil {
		_ = conn.SetReadDeadline(time.Now().Add(idleTimeout))
		if !scanner.Scan() {
			break
		}

		response, accepted := that.device.Exchange(ctx, scanner.Bytes())
		if !accepted {
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := conn.Write(response); err != nil {
			log.Error("failed to write response", "error", err)
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		log.Error("error reading frame", "error", err)
	}

	log.Info("connection closed")
}
