package middleware

import (
	"errors"
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンのユーザーがまだDBにいるか確認。AuthJWTの後ろに置く
func UserExistsGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := UserID(c)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrUserNotFound) || (err == nil && user == nil) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				return err
			}

			return next(c)
		}
	}
}
