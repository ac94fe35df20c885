package repository

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/model"
	"docs-portal/internal/util"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
	"time"
)

// CacheRepository : профили пользователей, уже проверенные через API.
// Ключ строится из хэша токена, сам токен в Redis не попадает
type CacheRepository struct {
	client *config.RedisClient
}

func NewCacheRepository(rdb *config.RedisClient) *CacheRepository {
	return &CacheRepository{rdb}
}

func (r *CacheRepository) SetProfile(ctx context.Context, token string, user *model.User, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return util.LogError("ошибка сериализации профиля", err)
	}

	cmd := r.client.Client.Set(ctx, ProfileKey(token), data, ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetProfile(ctx context.Context, token string) (*model.User, error) {
	val, err := r.client.Client.Get(ctx, ProfileKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения профиля из Redis", err)
	}

	var user model.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, util.LogError("ошибка десериализации профиля из кэша", err)
	}
	return &user, nil
}

func (r *CacheRepository) DeleteProfile(ctx context.Context, token string) error {
	if err := r.client.Client.Del(ctx, ProfileKey(token)).Err(); err != nil {
		return util.LogError("ошибка удаления профиля из Redis", err)
	}
	return nil
}

// ProfileKey : ключ Redis для токена
func ProfileKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return fmt.Sprintf("profile:%s", hex.EncodeToString(sum[:]))
}
