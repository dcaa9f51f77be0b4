package repository

import (
	"context"
	"errors"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 本の永続化（保存・取得）だけを約束。
type BookRepository interface {
	// categoryが空かallなら全件
	List(ctx context.Context, category string) ([]model.Book, error)
	FindByID(ctx context.Context, id string) (model.Book, error)
	// IDが同じなら上書き（シード用）
	Upsert(ctx context.Context, books []model.Book) error
}
