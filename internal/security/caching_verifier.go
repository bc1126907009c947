package security

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/ports"
)

// CachingVerifier : кэширует только успешные проверки.
// Запись живёт min(ttl, exp токена - сейчас), исходный токен в кэш не попадает.
type CachingVerifier struct {
	next  ports.IdentityVerifier
	cache ports.IdentityCache
	ttl   time.Duration
	now   func() time.Time
}

func NewCachingVerifier(next ports.IdentityVerifier, cache ports.IdentityCache, ttl time.Duration) *CachingVerifier {
	return &CachingVerifier{
		next:  next,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (v *CachingVerifier) Verify(ctx context.Context, token string) (*model.CallerIdentity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	key := TokenCacheKey(token)

	cached, err := v.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("[CachingVerifier] кэш недоступен, проверка у провайдера", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	identity, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if ttl := v.entryTTL(token); ttl > 0 {
		if err := v.cache.Set(ctx, key, identity, ttl); err != nil {
			zap.L().Warn("[CachingVerifier] не удалось сохранить в кэш", zap.Error(err))
		}
	}

	return identity, nil
}

// entryTTL : подпись не проверяется, exp нужен только чтобы не пережить сам токен
func (v *CachingVerifier) entryTTL(token string) time.Duration {
	ttl := v.ttl

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return ttl
	}

	if remaining := claims.ExpiresAt.Time.Sub(v.now()); remaining < ttl {
		return remaining
	}
	return ttl
}

// TokenCacheKey : hex BLAKE2b-256 от токена
func TokenCacheKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
