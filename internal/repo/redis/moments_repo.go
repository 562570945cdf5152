package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

// momentsKey holds the whole moments collection as one JSON array, matching
// the layout the mobile client persisted. Writes replace the full value.
const momentsKey = "moments"

type MomentsRepo struct {
	client *goredis.Client
}

func NewMomentsRepo(client *goredis.Client) *MomentsRepo {
	return &MomentsRepo{client: client}
}

// Load returns the stored moments and whether the key existed at all. A
// missing key is not an error; the caller seeds demo data in that case.
func (r *MomentsRepo) Load(ctx context.Context) ([]model.Moment, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, momentsKey).Result()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get moments: %w", err)
	}

	var moments []model.Moment
	if err := json.Unmarshal([]byte(raw), &moments); err != nil {
		return nil, false, fmt.Errorf("decode moments: %w", err)
	}
	return moments, true, nil
}

func (r *MomentsRepo) Save(ctx context.Context, moments []model.Moment) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if moments == nil {
		moments = []model.Moment{}
	}

	raw, err := json.Marshal(moments)
	if err != nil {
		return fmt.Errorf("encode moments: %w", err)
	}
	if err := r.client.Set(ctx, momentsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set moments: %w", err)
	}
	return nil
}
