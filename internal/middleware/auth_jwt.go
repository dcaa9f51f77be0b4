package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const CtxUserIDKey = "user_id" // string

// アクセストークンを検証してユーザーIDを返す約束
type TokenParser interface {
	Parse(raw string) (string, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			userID, err := parser.Parse(rawToken)
			if err != nil || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

// トークンがあれば読むだけ（無い・壊れていても通す）
// チェックアウトはログイン無しでも使える
func OptionalAuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rawToken, ok := bearerToken(c); ok {
				if userID, err := parser.Parse(rawToken); err == nil && userID != "" {
					c.Set(CtxUserIDKey, userID)
				}
			}
			return next(c)
		}
	}
}

// UserID はAuthJWTが入れたユーザーID（無ければ""）
func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserIDKey).(string)
	return id
}

// Bearer形式か確認してtokenを抜く
func bearerToken(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return "", false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return "", false
	}
	return rawToken, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
