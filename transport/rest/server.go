package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, game gameUseCase) *Server {
	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 10 * time.Second
	e.Server.IdleTimeout = 30 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.Error("request failed", append(attrs, "error", v.Error)...)
				return nil
			}

			log.Debug("request", attrs...)
			return nil
		},
	}))

	handler := NewGameHandler(logger, game)

	e.GET("/ping", pingHandler)
	e.GET("/state", handler.State)
	e.POST("/move", handler.MakeMove)
	e.POST("/reset", handler.Reset)

	return &Server{
		logger: log,
		echo:   e,
	}
}

// Start - listens on port until Shutdown is called.
func (that *Server) Start(port string) error {
	that.logger.Info("Starting HTTP server", "port", port)

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// Handler - exposes the router, used by tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}
