package handler

import (
	"errors"
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/middleware"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// multipart全体の上限（証明ファイル5MB + フォーム分）
const checkoutBodyLimit = "10M"

type CheckoutHandler struct {
	uc     *usecase.CheckoutUsecase
	parser middleware.TokenParser
	log    *zap.Logger
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, parser middleware.TokenParser, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, parser: parser, log: log}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/checkout", h.checkout,
		echomw.BodyLimit(checkoutBodyLimit),
		middleware.OptionalAuthJWT(h.parser),
	)
}

type placedOrder struct {
	ID           string `json:"id"`
	ItemCount    int    `json:"itemCount"`
	Total        string `json:"total"`
	PaymentProof string `json:"paymentProof"`
}

type checkoutResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Order   placedOrder `json:"order"`
}

// フォーム: cart（localStorageのJSON）, paymentProof（ファイル）
func (h *CheckoutHandler) checkout(c echo.Context) error {
	in := usecase.CheckoutInput{
		UserID:         middleware.UserID(c),
		Cart:           c.FormValue("cart"),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}

	fh, err := c.FormFile("paymentProof")
	switch {
	case err == nil:
		f, openErr := fh.Open()
		if openErr != nil {
			return writeError(c, h.log, openErr, "Server error during checkout")
		}
		defer f.Close()

		in.Proof = &usecase.ProofFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// 未添付はusecaseで判定
	default:
		return writeError(c, h.log, err, "Server error during checkout")
	}

	out, err := h.uc.Execute(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.log, err, "Server error during checkout")
	}

	status := http.StatusCreated
	if out.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, checkoutResponse{
		Success: true,
		Message: "Order placed successfully!",
		Order: placedOrder{
			ID:           out.Order.ID,
			ItemCount:    out.Order.ItemCount,
			Total:        out.Order.Total(),
			PaymentProof: out.Order.Proof.Key,
		},
	})
}
