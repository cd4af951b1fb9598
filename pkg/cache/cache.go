package cache

import (
	"context"
	"fmt"
	"time"
)

var ErrKeyNotExist = fmt.Errorf("cache key not exists")

// Cache stores JSON-serializable values under string keys.
// Used as a read-through layer in front of the applicant repository.
type Cache interface {
	GetAs(ctx context.Context, key string, out interface{}) error
	SetExp(ctx context.Context, key string, inValue interface{}, expireDur time.Duration) error
	Delete(ctx context.Context, key string) error
}
