package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	auth "github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
	log        *zap.Logger
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		log:        log,
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/register", h.Register)
	e.POST("/api/login", h.Login)
}

// 登録・ログイン成功時のレスポンス
type authResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	User      model.UserSummary `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// RegisterはPOST /api/registerのハンドラ（JSONとフォームの両方）
func (h *AuthHandler) Register(c echo.Context) error {
	var req auth.RegisterUserInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}

	out, err := h.registerUC.Execute(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return fail(c, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, auth.ErrPasswordMismatch):
			return fail(c, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			return fail(c, http.StatusBadRequest, "Invalid email format")
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return fail(c, http.StatusBadRequest, "Email already registered")
		default:
			h.log.Error("registration error", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Server error during registration")
		}
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success:   true,
		Message:   "Registration successful!",
		User:      out.User,
		Token:     out.AccessToken,
		ExpiresAt: out.ExpiresAt,
	})
}

// LoginはPOST /api/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Email and password are required")
	}

	out, err := h.loginUC.Execute(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return fail(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.log.Error("login error", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Server error during login")
		}
	}

	return c.JSON(http.StatusOK, authResponse{
		Success:   true,
		Message:   "Login successful!",
		User:      out.User,
		Token:     out.AccessToken,
		ExpiresAt: out.ExpiresAt,
	})
}
