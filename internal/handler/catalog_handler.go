package handler

import (
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// /api/books の公開API
type CatalogHandler struct {
	uc  *usecase.CatalogUsecase
	log *zap.Logger
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/books", h.list)
	e.GET("/api/books/:id", h.detail)
}

type bookListResponse struct {
	Success bool         `json:"success"`
	Books   []model.Book `json:"books"`
}

type bookResponse struct {
	Success bool       `json:"success"`
	Book    model.Book `json:"book"`
}

// ?search=&category=
func (h *CatalogHandler) list(c echo.Context) error {
	books, err := h.uc.Search(c.Request().Context(), c.QueryParam("search"), c.QueryParam("category"))
	if err != nil {
		return writeError(c, h.log, err, "Server error")
	}
	return c.JSON(http.StatusOK, bookListResponse{Success: true, Books: books})
}

func (h *CatalogHandler) detail(c echo.Context) error {
	b, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err, "Server error")
	}
	return c.JSON(http.StatusOK, bookResponse{Success: true, Book: b})
}
