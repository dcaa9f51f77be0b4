package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	repo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
)

type CatalogUsecase struct {
	bookRepo repo.BookRepository
}

// DI
func NewCatalogUsecase(bookRepo repo.BookRepository) *CatalogUsecase {
	return &CatalogUsecase{bookRepo: bookRepo}
}

// Search はカテゴリで絞ってから検索語で絞る
func (u *CatalogUsecase) Search(ctx context.Context, query string, category string) ([]model.Book, error) {
	books, err := u.bookRepo.List(ctx, category)
	if err != nil {
		return nil, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}

	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if b.Matches(query, category) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (u *CatalogUsecase) Get(ctx context.Context, id string) (model.Book, error) {
	if id == "" {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "Book not found")
	}

	b, err := u.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Book{}, NewHTTPError(http.StatusNotFound, "Book not found")
		}
		return model.Book{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return b, nil
}
