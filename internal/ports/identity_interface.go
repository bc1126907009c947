package ports

import (
	"context"
	"time"

	"github.com/zy091/iwishneed-sub001/internal/model"
)

// IdentityVerifier : проверка токена основного провайдера
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*model.CallerIdentity, error)
}

// IdentityCache : хранилище успешных проверок, ключ не содержит исходный токен
type IdentityCache interface {
	Get(ctx context.Context, key string) (*model.CallerIdentity, error)
	Set(ctx context.Context, key string, identity *model.CallerIdentity, ttl time.Duration) error
}
