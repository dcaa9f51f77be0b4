package repository

import "context"

// チェックアウトの冪等キー → 注文ID
type IdempotencyStore interface {
	// 未登録なら""を返す
	Get(ctx context.Context, key string) (string, error)
	// 既に登録済みならfalse（注文を作る前に予約として呼ぶ）
	Put(ctx context.Context, key string, orderID string) (bool, error)
	// 注文が作れなかったときに予約を外す
	Release(ctx context.Context, key string) error
}
