package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: repositories
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) List(ctx context.Context, category string) ([]model.Book, error) {
	args := m.Called(ctx, category)
	b, _ := args.Get(0).([]model.Book)
	return b, args.Error(1)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id string) (model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *MockBookRepository) Upsert(ctx context.Context, books []model.Book) error {
	args := m.Called(ctx, books)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

// =====================
// helper
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedID string

func (f fixedID) NewID() string { return string(f) }

type discardStore struct{}

func (discardStore) Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	_, err := io.Copy(io.Discard, body)
	return err
}

func (discardStore) Delete(ctx context.Context, key string) error {
	return nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.NewEchoValidator(validator.New())
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	require.True(t, len(headers)%2 == 0)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
