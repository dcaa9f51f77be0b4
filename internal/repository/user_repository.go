package repository

import (
	"context"
	"errors"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
)

var (
	// ユーザーが見つかりませんを統一
	ErrUserNotFound = errors.New("user not found")
	// ユニークインデックス違反（emailが登録済み）
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成（IDはここで確定する）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// メールからユーザーを一件取得する。emailは小文字化済みで渡す
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
