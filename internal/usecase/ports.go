package usecase

import (
	"context"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 注文確定を外へ知らせる（SNSなど）
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order model.Order) error
}

// チャットの返答を作る（Groqなど）
type ChatCompleter interface {
	Ask(ctx context.Context, system string, message string) (string, error)
}
