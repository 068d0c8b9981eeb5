package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Redis persists each key as a plain Redis string without expiration.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an established Redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := otel.Tracer("storage").Start(ctx, "redis.get")
	span.SetAttributes(attribute.String("storage.key", key))
	defer span.End()

	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := otel.Tracer("storage").Start(ctx, "redis.set")
	span.SetAttributes(
		attribute.String("storage.key", key),
		attribute.Int("storage.value_bytes", len(value)),
	)
	defer span.End()

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	ctx, span := otel.Tracer("storage").Start(ctx, "redis.delete")
	span.SetAttributes(attribute.String("storage.key", key))
	defer span.End()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
