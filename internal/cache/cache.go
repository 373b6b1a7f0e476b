package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small TTL cache for values that are cheap to recompute but hit
// on every request, e.g. dashboard counters.
type Cache interface {
	// Get unmarshals the cached value for key into target and reports
	// whether the key was set and not yet expired.
	Get(key string, target any) (bool, error)
	// Set stores value under key for the passed ttl.
	Set(key string, value any, ttl time.Duration) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryCache is the default in-process backend.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// New returns an in-memory Cache.
func New() Cache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (c *memoryCache) Get(key string, target any) (bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// redisCache stores entries in Redis so multiple instances share them.
type redisCache struct {
	client *redis.Client
}

// NewRedis returns a Cache backed by the Redis instance described by opts.
func NewRedis(opts *redis.Options) (Cache, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(key string, target any) (bool, error) {
	data, err := c.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err = json.Unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisCache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(context.Background(), key, data, ttl).Err()
}
