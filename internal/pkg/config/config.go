// Package config loads process settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DB       DBConfig
	Creative CreativeConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Delays   DelayConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER,    default=postgres"`
	Host     string `env:"DB_HOST,      default=localhost"`
	Port     int    `env:"DB_PORT,      default=5432"`
	User     string `env:"DB_USER,      default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME,      default=cinemind"`
	SSLMode  string `env:"DB_SSLMODE,   default=disable"`
	Path     string `env:"DB_PATH,      default=data/cinemind.db"`
	MaxConns int    `env:"DB_MAX_CONNS, default=10"`
}

type CreativeConfig struct {
	Provider      string        `env:"CREATIVE_PROVIDER"`
	OpenAIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIModel   string        `env:"OPENAI_MODEL,     default=gpt-3.5-turbo"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL,  default=https://api.openai.com/v1"`
	GeminiKey     string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL,     default=gemini-2.0-flash"`
	CacheTTL      time.Duration `env:"INTENT_CACHE_TTL, default=10m"`
}

// RedisConfig is optional: an empty address disables idempotent replay and
// the intent cache.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// MongoConfig is optional: an empty URI disables the activity log.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=cinemind"`
}

// StorageConfig selects S3 when a bucket is set and the local directory otherwise.
type StorageConfig struct {
	UploadDir   string `env:"UPLOAD_DIR,    default=uploads"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION,     default=us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"JWT_TTL,             default=24h"`
	HashPasswords bool          `env:"AUTH_HASH_PASSWORDS, default=false"`
}

type DelayConfig struct {
	Analyze time.Duration `env:"ANALYZE_DELAY, default=2s"`
	Footage time.Duration `env:"FOOTAGE_DELAY, default=1s"`
	Video   time.Duration `env:"VIDEO_DELAY,   default=4s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process startup: it panics on invalid settings.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}
