package repository

import (
	"context"
	"io"
)

// 支払い証明ファイルの置き場所（ローカル or S3）
type FileStore interface {
	Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error
	// 無いキーはエラーにしない
	Delete(ctx context.Context, key string) error
}
