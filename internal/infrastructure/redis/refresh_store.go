// Package redis implementa el almacén de refresh tokens sobre Redis.
// Cada JTI vigente se guarda con el TTL del token; consumir es GETDEL, así
// la rotación es atómica y un token ya usado no puede reutilizarse.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jortega/ventas-api/internal/application/auth"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/pkg/config"
)

var _ auth.RefreshStore = (*RefreshStore)(nil)

const refreshKeyPrefix = "refresh:"

// RefreshStore almacén de JTIs de refresh tokens sobre Redis.
type RefreshStore struct {
	client *redis.Client
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRefreshStore construye el almacén con un cliente existente.
func NewRefreshStore(client *redis.Client) *RefreshStore {
	return &RefreshStore{client: client}
}

// Save registra el JTI con el userID asociado y el TTL del token.
func (s *RefreshStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err(); err != nil {
		return fmt.Errorf("guardar refresh jti: %w", err)
	}
	return nil
}

// Consume devuelve el userID asociado y borra la entrada en una sola
// operación. Un JTI ausente (expirado o ya rotado) es token inválido.
func (s *RefreshStore) Consume(ctx context.Context, jti string) (string, error) {
	userID, err := s.client.GetDel(ctx, refreshKeyPrefix+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("consumir refresh jti: %w", err)
	}
	return userID, nil
}
