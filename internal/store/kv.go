package store

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// ErrCapacityExceeded is returned by Set when the write would push the store
// past its byte quota. The previous value under the key is left intact.
var ErrCapacityExceeded = errors.New("store: capacity exceeded")

// KV is the minimal string key-value contract the storefront persists
// through. Implementations must replace values atomically: a failed Set never
// leaves a partial write behind.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RedisKV backs the KV contract with a Redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing Redis client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// MemoryKV is an in-process KV with a byte quota, mirroring the ~5MB ceiling
// of browser local storage. It doubles as the test fake and as the fallback
// when Redis is unreachable at boot.
type MemoryKV struct {
	mu       sync.Mutex
	data     map[string]string
	maxBytes int
	used     int
}

// DefaultMemoryQuota matches the local-storage budget the catalog was sized
// for. Product media embedded as base64 can realistically blow through it.
const DefaultMemoryQuota = 5 * 1024 * 1024

// NewMemoryKV creates an in-memory store. maxBytes <= 0 means unlimited.
func NewMemoryKV(maxBytes int) *MemoryKV {
	return &MemoryKV{
		data:     make(map[string]string),
		maxBytes: maxBytes,
	}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(key) + len(value)
	if prev, ok := m.data[key]; ok {
		next -= len(key) + len(prev)
	}
	if m.maxBytes > 0 && next > m.maxBytes {
		return ErrCapacityExceeded
	}

	m.data[key] = value
	m.used = next
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.data[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.data, key)
	}
	return nil
}
