package store

import (
	"context"
	"fmt"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/config"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/db"
	infraRepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/repository"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"go.uber.org/zap"
)

// 設定で選んだDBのRepository一式
type Stores struct {
	Users  repository.UserRepository
	Books  repository.BookRepository
	Orders repository.OrderRepository

	Ping  func(ctx context.Context) error
	Close func() error
}

// Open はSTORE_DRIVERに合わせて接続し、インデックス/マイグレーションまで済ませる
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return openPostgres(cfg, log)
	default:
		return openMongo(ctx, cfg, log)
	}
}

func openMongo(ctx context.Context, cfg config.Config, log *zap.Logger) (*Stores, error) {
	client, mdb, err := db.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx, mdb); err != nil {
		_ = db.DisconnectMongo(client)
		return nil, err
	}
	log.Info("mongo connected", zap.String("db", cfg.MongoDB))

	return &Stores{
		Users:  infraRepo.NewUserMongoRepository(mdb),
		Books:  infraRepo.NewBookMongoRepository(mdb),
		Orders: infraRepo.NewOrderMongoRepository(mdb),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: func() error {
			return db.DisconnectMongo(client)
		},
	}, nil
}

func openPostgres(cfg config.Config, log *zap.Logger) (*Stores, error) {
	gdb, err := db.Connect(cfg.PostgresDSN())
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	log.Info("postgres connected")

	return &Stores{
		Users:  infraRepo.NewUserGormRepository(gdb),
		Books:  infraRepo.NewBookGormRepository(gdb),
		Orders: infraRepo.NewOrderGormRepository(gdb),
		Ping:   sqlDB.PingContext,
		Close:  sqlDB.Close,
	}, nil
}
