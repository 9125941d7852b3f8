package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"medpulse/internal/model"
	"medpulse/pkg/logging"
)

// Redis keeps each key as a plain string value.
type Redis struct {
	client *redis.Client
	logger *logging.Logger
}

func NewRedis(client *redis.Client, logger *logging.Logger) *Redis {
	if logger == nil {
		logger = logging.Default()
	}
	return &Redis{client: client, logger: logger}
}

func (r *Redis) Load(ctx context.Context) (model.Snapshot, error) {
	vals, err := r.client.MGet(ctx, Keys...).Result()
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("store: mget: %w", err)
	}
	raw := make(map[string][]byte, len(Keys))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			raw[Keys[i]] = []byte(s)
		}
	}
	return decode(raw, r.logger), nil
}

// Save writes all keys inside MULTI/EXEC.
func (r *Redis) Save(ctx context.Context, snap model.Snapshot) error {
	enc, err := encode(snap)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range Keys {
			pipe.Set(ctx, key, enc[key], 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: exec: %w", err)
	}
	return nil
}
