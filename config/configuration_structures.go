package config

import "time"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Local     bool   `yaml:"local"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// MainAuthConfig : основной провайдер идентификации, токены которого принимает шлюз
type MainAuthConfig struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // секунды, 0 означает таймаут по умолчанию
}

// CORSConfig : правила проверки Origin.
// Пустой AllowedOrigins разрешает любой источник.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	UploadPatterns []string `yaml:"upload_patterns"`
	BrandSubstring string   `yaml:"brand_substring"`
}

// IdentityCacheConfig : кэш успешных проверок токена (off | memory | redis)
type IdentityCacheConfig struct {
	Backend string `yaml:"backend"`
	Size    int    `yaml:"size"`
}

type AttachmentConfig struct {
	WriteAttempts int `yaml:"write_attempts"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// TTL : все значения в секундах
type TTL struct {
	SignedURL     int `yaml:"signed_url"`
	UploadURL     int `yaml:"upload_url"`
	IdentityCache int `yaml:"identity_cache"`
}

func (t TTL) SignedURLDuration() time.Duration {
	return time.Duration(t.SignedURL) * time.Second
}

func (t TTL) UploadURLDuration() time.Duration {
	return time.Duration(t.UploadURL) * time.Second
}

func (t TTL) IdentityCacheDuration() time.Duration {
	return time.Duration(t.IdentityCache) * time.Second
}
