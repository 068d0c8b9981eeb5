// Package storage provides the whole-value key-value port backing the
// registrant collection and the admin session. Every value is read and
// written in its entirety; there is no partial-update primitive, so the
// last writer wins when two processes share a backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jlbbacs/quick-registration/internal/config"
)

// Well-known keys.
const (
	RegistrantsKey = "registrants"
	SessionKey     = "admin"
)

// ErrKeyNotFound is returned by Get when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is the persistence port. Implementations must treat Set as an
// atomic whole-value replace.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// NewFromConfig builds the KeyValue backend selected by STORAGE_BACKEND.
// The redis and mongodb backends require the corresponding connection to
// have been initialized via the config package.
func NewFromConfig() (KeyValue, error) {
	switch config.AppConfig.StorageBackend {
	case "memory":
		return NewMemory(), nil
	case "redis":
		if config.Redis == nil {
			return nil, fmt.Errorf("redis backend selected but connection not initialized")
		}
		return NewRedis(config.Redis), nil
	case "mongodb":
		if config.MongoDB == nil {
			return nil, fmt.Errorf("mongodb backend selected but connection not initialized")
		}
		return NewMongo(config.MongoDB.Collection(config.AppConfig.MongoCollection)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.AppConfig.StorageBackend)
	}
}
