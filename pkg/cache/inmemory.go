package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/segmentio/encoding/json"
)

const inMemoryMaxBytes = 32 * 1048576 // 32MB

type InMemory struct {
	DB *fastcache.Cache
}

var _ Cache = (*InMemory)(nil)

func NewInMemory() (*InMemory, error) {
	return &InMemory{
		DB: fastcache.New(inMemoryMaxBytes),
	}, nil
}

func (i *InMemory) GetAs(_ context.Context, key string, out interface{}) error {
	result := i.DB.Get(nil, []byte(key))
	if result == nil {
		return ErrKeyNotExist
	}

	return json.Unmarshal(result, out)
}

// SetExp ignores the expiry, fastcache evicts by memory pressure only.
func (i *InMemory) SetExp(_ context.Context, key string, inValue interface{}, _ time.Duration) error {
	val, err := json.Marshal(inValue)
	if err != nil {
		return fmt.Errorf("cannot marshal json value: %w", err)
	}

	i.DB.Set([]byte(key), val)
	return nil
}

func (i *InMemory) Delete(_ context.Context, key string) error {
	i.DB.Del([]byte(key))
	return nil
}
