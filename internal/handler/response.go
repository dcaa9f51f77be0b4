package handler

import (
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 画面側が読む形 {success, message}
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Success: false, Message: message})
}

// HTTPErrorはそのまま返し、それ以外はfallbackで500
// 5xxの原因はログにだけ出す
func writeError(c echo.Context, log *zap.Logger, err error, fallback string) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			log.Error(he.Message, zap.String("path", c.Path()), zap.Error(err))
		}
		return fail(c, he.Status, he.Message)
	}

	//500
	log.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return fail(c, http.StatusInternalServerError, fallback)
}
