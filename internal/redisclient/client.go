package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client is the second-level cache tier. Hydrated snapshots are stored as
// JSON with a TTL so a cold or sibling instance can skip a gateway fetch.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func snapshotKey(kind string) string {
	return fmt.Sprintf("catalog:snapshot:%s", kind)
}

// SetSnapshot stores a JSON snapshot under a kind with a TTL.
func (c *Client) SetSnapshot(ctx context.Context, kind string, payload interface{}, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", kind, err)
	}
	return c.rdb.Set(ctx, snapshotKey(kind), data, ttl).Err()
}

// GetSnapshot loads a JSON snapshot into dest. Returns false when the key
// is absent or expired.
func (c *Client) GetSnapshot(ctx context.Context, kind string, dest interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s snapshot: %w", kind, err)
	}
	return true, nil
}

// DeleteSnapshots drops the snapshots for the given kinds.
func (c *Client) DeleteSnapshots(ctx context.Context, kinds ...string) error {
	if len(kinds) == 0 {
		return nil
	}
	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = snapshotKey(kind)
	}
	return c.rdb.Del(ctx, keys...).Err()
}
