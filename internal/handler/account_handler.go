package handler

import (
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/middleware"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ログイン中ユーザー向けのAPI
type AccountHandler struct {
	uc       *usecase.AccountUsecase
	parser   middleware.TokenParser
	userRepo repository.UserRepository
	log      *zap.Logger
}

// DI
func NewAccountHandler(
	uc *usecase.AccountUsecase,
	parser middleware.TokenParser,
	userRepo repository.UserRepository,
	log *zap.Logger,
) *AccountHandler {
	return &AccountHandler{uc: uc, parser: parser, userRepo: userRepo, log: log}
}

// /api/me, /api/orders を登録
func (h *AccountHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(h.parser),
		middleware.UserExistsGuard(h.userRepo),
	}

	g.GET("/me", h.me, auth...)
	g.GET("/orders", h.orders, auth...)
}

type meResponse struct {
	Success bool              `json:"success"`
	User    model.UserSummary `json:"user"`
}

type ordersResponse struct {
	Success bool                  `json:"success"`
	Orders  []usecase.OrderOutput `json:"orders"`
}

func (h *AccountHandler) me(c echo.Context) error {
	u, err := h.uc.Me(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err, "Server error")
	}
	return c.JSON(http.StatusOK, meResponse{Success: true, User: u})
}

func (h *AccountHandler) orders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err, "Server error")
	}
	return c.JSON(http.StatusOK, ordersResponse{Success: true, Orders: orders})
}
