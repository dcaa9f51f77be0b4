package main

import (
	"context"
	"flag"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/config"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/store"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/logger"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/seed"
	auth "github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase/auth_usecase"

	"go.uber.org/zap"
)

func main() {
	demoUsers := flag.Bool("demo-users", false, "insert two sample users")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	//DB接続（インデックス作成込み）
	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer func() { _ = stores.Close() }()

	var hasher auth.PasswordHasher = auth.NewSHA256PasswordHasher()
	if cfg.PasswordHasher == config.HasherBcrypt {
		hasher = auth.NewBcryptPasswordHasher(12)
	}

	s := seed.NewSeeder(stores.Books, stores.Users, hasher, log)

	n, err := s.SeedBooks(ctx)
	if err != nil {
		log.Fatal("seed books", zap.Error(err))
	}
	log.Info("books upserted", zap.Int("count", n))

	if *demoUsers {
		n, err := s.SeedDemoUsers(ctx, time.Now())
		if err != nil {
			log.Fatal("seed users", zap.Error(err))
		}
		log.Info("demo users inserted", zap.Int("count", n))
	}
}
