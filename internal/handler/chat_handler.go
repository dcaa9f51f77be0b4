package handler

import (
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/middleware"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type chatRequest struct {
	Message string `json:"message" form:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// /chat のハンドラ
type ChatHandler struct {
	uc      *usecase.ChatUsecase
	limiter *middleware.IPRateLimiter
	log     *zap.Logger
}

// DI
func NewChatHandler(uc *usecase.ChatUsecase, limiter *middleware.IPRateLimiter, log *zap.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, limiter: limiter, log: log}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.chat, middleware.RateLimit(h.limiter, chatResponse{Reply: usecase.ReplyRateLimited}))
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req chatRequest
	// 文字列以外のmessageもBindで弾く
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Reply: usecase.ReplyEmptyMessage})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Reply: usecase.ReplyEmptyMessage})
	}

	reply, err := h.uc.Reply(c.Request().Context(), req.Message)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok {
			if he.Status >= http.StatusInternalServerError {
				h.log.Error("ai error", zap.Error(err))
			}
			return c.JSON(he.Status, chatResponse{Reply: he.Message})
		}
		h.log.Error("ai error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, chatResponse{Reply: usecase.ReplyUpstreamError})
	}

	return c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
