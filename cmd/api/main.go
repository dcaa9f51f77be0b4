package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/config"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/handler"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/cache"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/groq"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/notify"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/storage"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/store"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/token"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/logger"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/middleware"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/server"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase"
	auth "github.com/vivekmanjrekar09-star/BOOK4U/internal/usecase/auth_usecase"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Warn("store close", zap.Error(err))
		}
	}()

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev_secret_change_me"
		log.Warn("JWT_SECRET is not set, using development secret")
	}
	issuer := token.NewJWTIssuer(secret, cfg.AccessTokenTTL)

	var hasher auth.PasswordHasher = auth.NewSHA256PasswordHasher()
	if cfg.PasswordHasher == config.HasherBcrypt {
		hasher = auth.NewBcryptPasswordHasher(12)
	}
	verifier := auth.NewDigestVerifier()
	authValidator := validator.NewAuthValidator(validator.New())

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		return err
	}

	// 任意: Redis（冪等キー）
	var idem repository.IdempotencyStore
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = cache.NewIdempotencyRedisStore(rdb, cfg.IdempotencyTTL)
	}

	// 任意: SNS（注文イベント）
	var notifier usecase.OrderNotifier
	if cfg.OrderTopicARN != "" {
		snsClient, err := notify.NewSNSClient(ctx, cfg.AWSEndpoint)
		if err != nil {
			return err
		}
		notifier = notify.NewSNSPublisher(snsClient, cfg.OrderTopicARN)
	}

	if cfg.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY is not set, chat replies will fail")
	}
	chatClient := groq.NewClient(groq.Config{
		APIURL: cfg.GroqAPIURL,
		APIKey: cfg.GroqAPIKey,
		Model:  cfg.GroqModel,
	})

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(stores.Users, authValidator, hasher, issuer, clock)
	loginUC := auth.NewLoginUsecase(stores.Users, authValidator, verifier, issuer, clock)
	chatUC := usecase.NewChatUsecase(chatClient)
	catalogUC := usecase.NewCatalogUsecase(stores.Books)
	checkoutUC := usecase.NewCheckoutUsecase(stores.Orders, files, idem, notifier, idGen, clock, log)
	accountUC := usecase.NewAccountUsecase(stores.Users, stores.Orders)

	limiter := middleware.NewIPRateLimiter(cfg.ChatRatePerMinute, cfg.ChatBurst)

	//Handler生成
	e := server.New(cfg, log,
		handler.NewHealthHandler(stores.Ping),
		handler.NewAuthHandler(registerUC, loginUC, log),
		handler.NewChatHandler(chatUC, limiter, log),
		handler.NewCatalogHandler(catalogUC, log),
		handler.NewCheckoutHandler(checkoutUC, issuer, log),
		handler.NewAccountHandler(accountUC, issuer, stores.Users, log),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx, e, cfg.Addr(), log)
	})
	g.Go(func() error {
		return limiter.Run(gctx, time.Minute, 10*time.Minute)
	})
	return g.Wait()
}

func newFileStore(ctx context.Context, cfg config.Config) (repository.FileStore, error) {
	if cfg.ProofStore == config.ProofStoreS3 {
		client, err := storage.NewS3Client(ctx, cfg.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		return storage.NewS3FileStore(client, cfg.S3Bucket, cfg.S3Prefix), nil
	}
	return storage.NewLocalFileStore(cfg.ProofDir)
}
