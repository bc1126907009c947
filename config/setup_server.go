package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	IdentityCacheOff    = "off"
	IdentityCacheMemory = "memory"
	IdentityCacheRedis  = "redis"
)

type AppConfig struct {
	ServerAddr     string              `yaml:"serverAddr"`
	DatabaseConfig DatabaseConfig      `yaml:"databaseConfig"`
	RedisConfig    RedisConfig         `yaml:"redisConfig"`
	S3Config       S3Config            `yaml:"s3Config"`
	MainAuth       MainAuthConfig      `yaml:"mainAuth"`
	CORS           CORSConfig          `yaml:"cors"`
	IdentityCache  IdentityCacheConfig `yaml:"identityCache"`
	Attachments    AttachmentConfig    `yaml:"attachments"`
	Log            LogConfig           `yaml:"log"`
	TTL            TTL                 `yaml:"TTL"`
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		ServerAddr: ":8080",
		S3Config: S3Config{
			Bucket: "comment-attachments",
			Region: "us-east-1",
		},
		CORS: CORSConfig{
			UploadPatterns: []string{
				`^https://[a-z0-9-]+\.vercel\.app$`,
				`^https://[a-z0-9-]+\.netlify\.app$`,
			},
			BrandSubstring: "iwishneed",
		},
		IdentityCache: IdentityCacheConfig{
			Backend: IdentityCacheOff,
			Size:    1024,
		},
		Attachments: AttachmentConfig{WriteAttempts: 1},
		Log:         LogConfig{Level: "info"},
		TTL: TTL{
			SignedURL:     600,
			UploadURL:     7200,
			IdentityCache: 30,
		},
	}
}

// LoadConfig : значения по умолчанию, затем YAML (если файл есть), затем .env и переменные окружения
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	}

	// .env опционален, уже заданные переменные окружения он не перезаписывает
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate : проверяет обязательные параметры
func (c *AppConfig) Validate() error {
	if c.DatabaseConfig.DSN == "" {
		return errors.New("DATABASE_DSN: обязательный параметр не задан")
	}
	if c.MainAuth.URL == "" {
		return errors.New("MAIN_AUTH_URL: обязательный параметр не задан")
	}
	if c.MainAuth.APIKey == "" {
		return errors.New("MAIN_AUTH_API_KEY: обязательный параметр не задан")
	}
	if c.S3Config.Bucket == "" {
		return errors.New("S3_BUCKET: обязательный параметр не задан")
	}
	if c.TTL.SignedURL <= 0 {
		return fmt.Errorf("SIGNED_URL_EXPIRES: значение должно быть > 0, получено %d", c.TTL.SignedURL)
	}
	if c.TTL.UploadURL <= 0 {
		return fmt.Errorf("UPLOAD_URL_EXPIRES: значение должно быть > 0, получено %d", c.TTL.UploadURL)
	}
	if c.Attachments.WriteAttempts < 1 {
		return fmt.Errorf("ATTACHMENT_WRITE_ATTEMPTS: значение должно быть >= 1, получено %d", c.Attachments.WriteAttempts)
	}

	switch c.IdentityCache.Backend {
	case IdentityCacheOff:
	case IdentityCacheMemory:
		if c.IdentityCache.Size <= 0 {
			return errors.New("IDENTITY_CACHE_SIZE: значение должно быть > 0")
		}
	case IdentityCacheRedis:
		if c.RedisConfig.Addr == "" {
			return errors.New("REDIS_ADDR: обязателен при IDENTITY_CACHE=redis")
		}
	default:
		return fmt.Errorf("IDENTITY_CACHE: недопустимое значение %q, допустимые: off, memory, redis", c.IdentityCache.Backend)
	}
	if c.IdentityCache.Backend != IdentityCacheOff && c.TTL.IdentityCache <= 0 {
		return errors.New("IDENTITY_CACHE_TTL: значение должно быть > 0 при включённом кэше")
	}

	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
