package server

import (
	"path/filepath"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, handlers ...RouteRegistrar) {
	for _, h := range handlers {
		h.RegisterRoutes(e)
	}

	// ページ一式（html/css/js）
	e.Static("/", cfg.StaticDir)

	index := filepath.Join(cfg.StaticDir, cfg.IndexFile)
	e.GET("/", func(c echo.Context) error {
		return c.File(index)
	})
}
