package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/amandanordqvist/datingapp/internal/domain/enums"
)

// themeModeKey keeps the client's historical key name, @ prefix included.
const themeModeKey = "@theme_mode"

type PrefRepo struct {
	client *goredis.Client
}

func NewPrefRepo(client *goredis.Client) *PrefRepo {
	return &PrefRepo{client: client}
}

func (r *PrefRepo) Theme(ctx context.Context) (enums.ThemeMode, bool, error) {
	if r.client == nil {
		return "", false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, themeModeKey).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get theme mode: %w", err)
	}

	mode := enums.ThemeMode(raw)
	if !mode.Valid() {
		return "", false, nil
	}
	return mode, true, nil
}

func (r *PrefRepo) SaveTheme(ctx context.Context, mode enums.ThemeMode) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if !mode.Valid() {
		return fmt.Errorf("invalid theme mode %q", mode)
	}

	if err := r.client.Set(ctx, themeModeKey, string(mode), 0).Err(); err != nil {
		return fmt.Errorf("set theme mode: %w", err)
	}
	return nil
}
