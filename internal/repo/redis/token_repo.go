package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// userTokenKey is the exact key the mobile client reads on launch to decide
// whether it is logged in. Do not rename it.
const userTokenKey = "user_token"

type TokenRepo struct {
	client *goredis.Client
}

func NewTokenRepo(client *goredis.Client) *TokenRepo {
	return &TokenRepo{client: client}
}

func (r *TokenRepo) SetUserToken(ctx context.Context, token string, expiresAt time.Time) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("user token is empty")
	}

	if err := r.client.Set(ctx, userTokenKey, token, ttlFor(expiresAt)).Err(); err != nil {
		return fmt.Errorf("set user token: %w", err)
	}
	return nil
}

func (r *TokenRepo) ClearUserToken(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, userTokenKey).Err(); err != nil {
		return fmt.Errorf("clear user token: %w", err)
	}
	return nil
}
