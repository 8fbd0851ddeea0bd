package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/fourinarow-backend/internal/config"
	"github.com/rocketscienceinc/fourinarow-backend/internal/device"
	"github.com/rocketscienceinc/fourinarow-backend/internal/fourinarow"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository"
	"github.com/rocketscienceinc/fourinarow-backend/internal/repository/storage"
	"github.com/rocketscienceinc/fourinarow-backend/internal/service"
	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
	"github.com/rocketscienceinc/fourinarow-backend/transport/rest"
	"github.com/rocketscienceinc/fourinarow-backend/transport/tcp"
	"github.com/rocketscienceinc/fourinarow-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	detector, err := fourinarow.NewDetector(fourinarow.Strategy(conf.Detector))
	if err != nil {
		return fmt.Errorf("could not create detector: %w", err)
	}

	eventRepo := repository.NewNopEventRepository()
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		eventRepo = repository.NewEventRepository(redisStorage.Connection, conf.Redis.Channel)
	}

	gameEngine := fourinarow.NewEngine(detector, service.NewBotService(nil))
	gameUseCase := usecase.NewGameUseCase(logger, gameEngine, eventRepo, conf.StrictInvalid)
	gameDevice := device.New(gameUseCase)
	handlers := rest.NewHandlers(logger, gameUseCase, eventRepo)

	log.Info("Game engine ready", "detector", detector.Strategy(), "strict_invalid", conf.StrictInvalid, "redis", conf.Redis.Enabled)

	errCh := make(chan error, 3)

	// run HTTP server
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", httpErr)
		}
	}()

	// run TCP server
	go func() {
		log.Info("Starting TCP server", "port", conf.TCPPort)
		if tcpErr := tcp.New(logger, gameDevice).Start(ctx, conf.TCPPort); tcpErr != nil {
			errCh <- fmt.Errorf("TCP server error: %w", tcpErr)
		}
	}()

	// run Websocket server
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameDevice).Start(ctx, conf.SocketPort); wsErr != nil {
			errCh <- fmt.Errorf("WebSocket server error: %w", wsErr)
		}
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
