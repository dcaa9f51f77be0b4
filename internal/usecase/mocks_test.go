package usecase

import (
	"context"
	"io"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	repo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"github.com/stretchr/testify/mock"
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

var (
	_ repo.UserRepository  = (*MockUserRepository)(nil)
	_ repo.BookRepository  = (*MockBookRepository)(nil)
	_ repo.OrderRepository = (*MockOrderRepository)(nil)
)

// =====================
// Mock: ports
// =====================

type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Ask(ctx context.Context, system string, message string) (string, error) {
	args := m.Called(ctx, system, message)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderPlaced(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// 保存された中身も確認できるファイル置き場
type memFileStore struct {
	saved   map[string][]byte
	types   map[string]string
	deleted []string
	err     error
	// 保存の途中で呼ばれる（同時リクエストの再現用）
	onSave func()
}

func newMemFileStore() *memFileStore {
	return &memFileStore{saved: map[string][]byte{}, types: map[string]string{}}
}

func (s *memFileStore) Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	if s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.saved[key] = b
	s.types[key] = contentType
	if s.onSave != nil {
		hook := s.onSave
		s.onSave = nil
		hook()
	}
	return nil
}

func (s *memFileStore) Delete(ctx context.Context, key string) error {
	delete(s.saved, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type memIdempotencyStore struct {
	keys map[string]string
}

func (s *memIdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	return s.keys[key], nil
}

func (s *memIdempotencyStore) Put(ctx context.Context, key string, orderID string) (bool, error) {
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = orderID
	return true, nil
}

func (s *memIdempotencyStore) Release(ctx context.Context, key string) error {
	delete(s.keys, key)
	return nil
}

type seqIDGen struct {
	ids []string
	n   int
}

func (g *seqIDGen) NewID() string {
	id := g.ids[g.n%len(g.ids)]
	g.n++
	return id
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
