package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnv : переопределяет значения конфигурации из переменных окружения.
// Пустая переменная считается незаданной.
func applyEnv(cfg *AppConfig) error {
	setString(&cfg.ServerAddr, "SERVER_ADDR")
	setString(&cfg.DatabaseConfig.DSN, "DATABASE_DSN")

	setString(&cfg.RedisConfig.Addr, "REDIS_ADDR")
	setString(&cfg.RedisConfig.Password, "REDIS_PASSWORD")

	setString(&cfg.S3Config.Bucket, "S3_BUCKET")
	setString(&cfg.S3Config.Region, "S3_REGION")
	setString(&cfg.S3Config.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3Config.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3Config.SecretKey, "S3_SECRET_KEY")

	setString(&cfg.MainAuth.URL, "MAIN_AUTH_URL")
	setString(&cfg.MainAuth.APIKey, "MAIN_AUTH_API_KEY")

	setString(&cfg.CORS.BrandSubstring, "ORIGIN_BRAND_SUBSTRING")
	setString(&cfg.IdentityCache.Backend, "IDENTITY_CACHE")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")

	if val, ok := lookup("ALLOWED_ORIGINS"); ok {
		cfg.CORS.AllowedOrigins = splitList(val)
	}
	if val, ok := lookup("ORIGIN_UPLOAD_PATTERNS"); ok {
		cfg.CORS.UploadPatterns = splitList(val)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"REDIS_DB", &cfg.RedisConfig.DB},
		{"MAIN_AUTH_TIMEOUT", &cfg.MainAuth.Timeout},
		{"IDENTITY_CACHE_SIZE", &cfg.IdentityCache.Size},
		{"ATTACHMENT_WRITE_ATTEMPTS", &cfg.Attachments.WriteAttempts},
		{"SIGNED_URL_EXPIRES", &cfg.TTL.SignedURL},
		{"UPLOAD_URL_EXPIRES", &cfg.TTL.UploadURL},
		{"IDENTITY_CACHE_TTL", &cfg.TTL.IdentityCache},
	}
	for _, item := range ints {
		if err := setInt(item.dst, item.key); err != nil {
			return err
		}
	}

	if err := setBool(&cfg.S3Config.Local, "S3_LOCAL"); err != nil {
		return err
	}
	if err := setBool(&cfg.Log.Development, "LOG_DEVELOPMENT"); err != nil {
		return err
	}

	return nil
}

func lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return strings.TrimSpace(val), true
}

func setString(dst *string, key string) {
	if val, ok := lookup(key); ok {
		*dst = val
	}
}

func setInt(dst *int, key string) error {
	val, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("%s: некорректное целое число: %q", key, val)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	val, ok := lookup(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fmt.Errorf("%s: некорректное булево значение: %q", key, val)
	}
	*dst = b
	return nil
}

// splitList : "a, b,,c" -> [a b c]
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
