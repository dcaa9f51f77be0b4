package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/token"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
	auth "github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase/auth_usecase"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    model.UserSummary `json:"user"`
	Token   string            `json:"token"`
}

func newAuthEcho(users *MockUserRepository) *echo.Echo {
	v := validator.NewAuthValidator(validator.New())
	issuer := token.NewJWTIssuer("test-secret", time.Hour)
	clock := fixedClock{time.Now()}

	h := NewAuthHandler(
		auth.NewRegisterUserUsecase(users, v, auth.NewSHA256PasswordHasher(), issuer, clock),
		auth.NewLoginUsecase(users, v, auth.NewDigestVerifier(), issuer, clock),
		zap.NewNop(),
	)
	e := newEcho()
	h.RegisterRoutes(e)
	return e
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authBody {
	t.Helper()
	var b authBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

const registerJSON = `{"fullname":"Jane Doe","username":"jane","email":"Jane@Example.com","address":"1 Main St","password":"secret","confirmPassword":"secret"}`

func TestAuthHandler_Register(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = "65f000000000000000000001"
	}).Return(nil)

	rec := doJSON(t, newAuthEcho(users), http.MethodPost, "/api/register", registerJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	b := decodeAuth(t, rec)
	assert.True(t, b.Success)
	assert.Equal(t, "Registration successful!", b.Message)
	assert.Equal(t, model.UserSummary{ID: "65f000000000000000000001", FullName: "Jane Doe", Username: "jane", Email: "jane@example.com"}, b.User)
	assert.NotEmpty(t, b.Token)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_RegisterForm(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	form := url.Values{
		"fullname": {"Jane Doe"}, "username": {"jane"}, "email": {"jane@example.com"},
		"address": {"1 Main St"}, "password": {"pw"}, "confirmPassword": {"pw"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	newAuthEcho(users).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandler_RegisterErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(users *MockUserRepository)
		status int
		msg    string
	}{
		{
			name:   "missing field",
			body:   `{"fullname":"","username":"jane","email":"jane@example.com","address":"x","password":"a","confirmPassword":"a"}`,
			status: http.StatusBadRequest,
			msg:    "All fields are required",
		},
		{
			name:   "mismatch",
			body:   `{"fullname":"J","username":"jane","email":"jane@example.com","address":"x","password":"a","confirmPassword":"b"}`,
			status: http.StatusBadRequest,
			msg:    "Passwords do not match",
		},
		{
			name:   "bad email",
			body:   `{"fullname":"J","username":"jane","email":"jane@example","address":"x","password":"a","confirmPassword":"a"}`,
			status: http.StatusBadRequest,
			msg:    "Invalid email format",
		},
		{
			name: "duplicate",
			body: registerJSON,
			setup: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{ID: "x"}, nil)
			},
			status: http.StatusBadRequest,
			msg:    "Email already registered",
		},
		{
			name: "db down",
			body: registerJSON,
			setup: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, errors.New("no reachable servers"))
			},
			status: http.StatusInternalServerError,
			msg:    "Server error during registration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.setup != nil {
				tt.setup(users)
			}

			rec := doJSON(t, newAuthEcho(users), http.MethodPost, "/api/register", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			b := decodeAuth(t, rec)
			assert.False(t, b.Success)
			assert.Equal(t, tt.msg, b.Message)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	hashed, _ := auth.NewSHA256PasswordHasher().Hash("secret")
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
		ID: "u1", FullName: "Jane Doe", Username: "jane", Email: "jane@example.com", Password: hashed,
	}, nil)
	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	e := newAuthEcho(users)

	rec := doJSON(t, e, http.MethodPost, "/api/login", `{"email":"JANE@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	b := decodeAuth(t, rec)
	assert.Equal(t, "Login successful!", b.Message)
	assert.Equal(t, "u1", b.User.ID)
	assert.NotEmpty(t, b.Token)

	rec = doJSON(t, e, http.MethodPost, "/api/login", `{"email":"jane@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeAuth(t, rec).Message)

	rec = doJSON(t, e, http.MethodPost, "/api/login", `{"email":"nobody@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeAuth(t, rec).Message)

	rec = doJSON(t, e, http.MethodPost, "/api/login", `{"email":"jane@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", decodeAuth(t, rec).Message)
}
