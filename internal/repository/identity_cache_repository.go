package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zy091/iwishneed-sub001/config"
	"github.com/zy091/iwishneed-sub001/internal/model"
	"github.com/zy091/iwishneed-sub001/internal/util"
)

// IdentityCacheRepository : кэш личностей в Redis
type IdentityCacheRepository struct {
	client *config.RedisClient
}

func NewIdentityCacheRepository(rdb *config.RedisClient) *IdentityCacheRepository {
	return &IdentityCacheRepository{client: rdb}
}

func (r *IdentityCacheRepository) Set(ctx context.Context, key string, identity *model.CallerIdentity, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return util.LogError("[IdentityCache] ошибка сериализации", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(key), data, ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("[IdentityCache] ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

// Get : nil, nil если записи нет
func (r *IdentityCacheRepository) Get(ctx context.Context, key string) (*model.CallerIdentity, error) {
	val, err := r.client.Client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("[IdentityCache] ошибка чтения из Redis", err)
	}

	var identity model.CallerIdentity
	if err := json.Unmarshal(val, &identity); err != nil {
		return nil, util.LogError("[IdentityCache] ошибка десериализации", err)
	}
	return &identity, nil
}

func (r *IdentityCacheRepository) key(hash string) string {
	return fmt.Sprintf("identity:%s", hash)
}
