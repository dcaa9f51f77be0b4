package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"go.uber.org/zap"
)

//go:embed books.json
var booksJSON []byte

// 同梱のカタログ
func Books() ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal(booksJSON, &books); err != nil {
		return nil, fmt.Errorf("decode books.json: %w", err)
	}
	for _, b := range books {
		if _, err := model.ParsePriceCents(b.Price); err != nil {
			return nil, fmt.Errorf("book %s: %w", b.ID, err)
		}
	}
	return books, nil
}

type demoUser struct {
	FullName string
	Username string
	Email    string
	Address  string
	Password string
}

// 動作確認用のユーザー
var demoUsers = []demoUser{
	{FullName: "John Doe", Username: "johndoe", Email: "john.doe@example.com", Address: "12 Reading Lane", Password: "password123"},
	{FullName: "Jane Smith", Username: "janesmith", Email: "jane.smith@example.com", Address: "34 Library Road", Password: "password123"},
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Seeder struct {
	books  repository.BookRepository
	users  repository.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
}

func NewSeeder(books repository.BookRepository, users repository.UserRepository, hasher PasswordHasher, log *zap.Logger) *Seeder {
	return &Seeder{books: books, users: users, hasher: hasher, log: log}
}

// SeedBooks はIDで上書きするので何度流してもよい
func (s *Seeder) SeedBooks(ctx context.Context) (int, error) {
	books, err := Books()
	if err != nil {
		return 0, err
	}
	if err := s.books.Upsert(ctx, books); err != nil {
		return 0, err
	}
	return len(books), nil
}

// SeedDemoUsers は登録済みのemailを飛ばす
func (s *Seeder) SeedDemoUsers(ctx context.Context, now time.Time) (int, error) {
	inserted := 0
	for _, d := range demoUsers {
		hashed, err := s.hasher.Hash(d.Password)
		if err != nil {
			return inserted, err
		}

		err = s.users.Create(ctx, &model.User{
			FullName:  d.FullName,
			Username:  d.Username,
			Email:     d.Email,
			Address:   d.Address,
			Password:  hashed,
			CreatedAt: now,
		})
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			s.log.Info("demo user exists", zap.String("email", d.Email))
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
