package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookGormRepository struct {
	db *gorm.DB
}

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

// カテゴリで絞ってタイトル順に返す
func (r *BookGormRepository) List(ctx context.Context, category string) ([]model.Book, error) {
	var books []model.Book

	q := r.db.WithContext(ctx).Order("title asc")
	if category != "" && category != model.CategoryAll {
		q = q.Where("category = ?", category)
	}

	if err := q.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *BookGormRepository) FindByID(ctx context.Context, id string) (model.Book, error) {
	var b model.Book

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.Book{}, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

// 同じIDは全カラム上書き
func (r *BookGormRepository) Upsert(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&books).Error
	if err != nil {
		return fmt.Errorf("upsert books: %w", err)
	}
	return nil
}
