package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/config"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/middleware"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// 各handlerが自分のルートを登録する
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

// New は共通ミドルウェアとルートを載せたechoを作る
func New(cfg config.Config, log *zap.Logger, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.NewEchoValidator(validator.New())

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
		}))
	}

	RegisterRoutes(e, cfg, handlers...)
	return e
}

// Start はctxが終わるまで待ち受け、終わったら穏やかに止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("server shutting down")
	return e.Shutdown(shutdownCtx)
}
