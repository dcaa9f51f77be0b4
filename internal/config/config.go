package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	ProofStoreLocal = "local"
	ProofStoreS3    = "s3"

	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（3000）
	GoEnv string // development/production

	StoreDriver string // mongo / postgres

	MongoURI string // mongodb://127.0.0.1:27017
	MongoDB  string // DB名（book4u）

	// DATABASE_URL があれば最優先。無ければPOSTGRES_*から組み立てる
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	JWTSecret      string        // JWT署名シークレット
	AccessTokenTTL time.Duration // アクセストークンの有効期限
	PasswordHasher string        // sha256 / bcrypt

	GroqAPIKey        string
	GroqAPIURL        string
	GroqModel         string
	ChatRatePerMinute int
	ChatBurst         int

	StaticDir string // ページ一式の置き場所
	IndexFile string // GET / で返すファイル
	FEURL     string // CORS許可オリジン（空ならCORS無し）

	ProofStore  string // local / s3
	ProofDir    string
	S3Bucket    string
	S3Prefix    string
	AWSEndpoint string // LocalStack等（空ならAWS本体）

	RedisURL       string        // 空なら冪等キー無効
	IdempotencyTTL time.Duration // 冪等キーの保持期間
	OrderTopicARN  string        // 空なら注文イベント無し
}

// Loadは.envと環境変数から設定を読む
func Load() (Config, error) {
	// .envは無くてもよい（本番は環境変数だけ）
	_ = godotenv.Load()

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	ratePerMin, err := atoiDefault("CHAT_RATE_PER_MINUTE", 20)
	if err != nil {
		return Config{}, err
	}
	burst, err := atoiDefault("CHAT_BURST", 5)
	if err != nil {
		return Config{}, err
	}
	accessTTL, err := durationDefault("ACCESS_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	idemTTL, err := durationDefault("IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "3000"),
		GoEnv: getenv("GO_ENV", "development"),

		StoreDriver: getenv("STORE_DRIVER", StoreMongo),

		MongoURI: getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getenv("MONGO_DB", "book4u"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "book4u"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: accessTTL,
		PasswordHasher: getenv("PASSWORD_HASHER", HasherSHA256),

		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqAPIURL:        getenv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
		GroqModel:         getenv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		ChatRatePerMinute: ratePerMin,
		ChatBurst:         burst,

		StaticDir: getenv("STATIC_DIR", "public"),
		IndexFile: getenv("INDEX_FILE", "index.html"),
		FEURL:     os.Getenv("FE_URL"),

		ProofStore:  getenv("PROOF_STORE", ProofStoreLocal),
		ProofDir:    getenv("PROOF_DIR", "uploads"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    os.Getenv("S3_PREFIX"),
		AWSEndpoint: os.Getenv("AWS_ENDPOINT"),

		RedisURL:       os.Getenv("REDIS_URL"),
		IdempotencyTTL: idemTTL,
		OrderTopicARN:  os.Getenv("ORDER_TOPIC_ARN"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 組み合わせのチェック
func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StorePostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreMongo, StorePostgres)
	}

	switch c.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return fmt.Errorf("PASSWORD_HASHER must be %q or %q", HasherSHA256, HasherBcrypt)
	}

	switch c.ProofStore {
	case ProofStoreLocal:
	case ProofStoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
	default:
		return fmt.Errorf("PROOF_STORE must be %q or %q", ProofStoreLocal, ProofStoreS3)
	}

	// 本番はシークレット必須
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ChatRatePerMinute <= 0 || c.ChatBurst <= 0 {
		return fmt.Errorf("CHAT_RATE_PER_MINUTE and CHAT_BURST must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addrはecho.Startに渡すアドレス
func (c Config) Addr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// PostgresDSNはgorm用の接続文字列
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
