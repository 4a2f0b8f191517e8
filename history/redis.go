package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/agentgrid/core"
)

// RedisConfig holds Redis connection configuration for the history store.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string
	// Password is the Redis password (optional).
	Password string
	// DB is the Redis database number.
	DB int
	// Prefix is the key prefix for all history keys (default: "agentgrid:history:").
	Prefix string
	// TTL is the thread expiry duration (0 = never expire).
	TTL time.Duration
}

// RedisStore implements core.HistoryStore on Redis lists, one list per
// tenant / thread pair. Suitable for multi-node deployments where agents on
// different workers share conversation history.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStoreFromClient(client, cfg.Prefix, cfg.TTL), nil
}

// NewRedisStoreFromClient creates a store from an existing client. Useful for
// testing with miniredis.
func NewRedisStoreFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "agentgrid:history:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

var _ core.HistoryStore = (*RedisStore)(nil)

func (s *RedisStore) threadKey(tenantID, threadID string) string {
	return s.prefix + tenantID + ":" + threadID
}

// Append pushes the entry onto the thread list and refreshes the TTL.
func (s *RedisStore) Append(ctx context.Context, tenantID, threadID string, entry core.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	key := s.threadKey(tenantID, threadID)
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("refresh history ttl: %w", err)
		}
	}
	return nil
}

// List returns the most recent entries of the thread in chronological order,
// up to limit. A limit <= 0 returns the whole thread.
func (s *RedisStore) List(ctx context.Context, tenantID, threadID string, limit int) ([]core.HistoryEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	data, err := s.client.LRange(ctx, s.threadKey(tenantID, threadID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	entries := make([]core.HistoryEntry, 0, len(data))
	for _, raw := range data {
		var entry core.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear removes the thread list.
func (s *RedisStore) Clear(ctx context.Context, tenantID, threadID string) error {
	if err := s.client.Del(ctx, s.threadKey(tenantID, threadID)).Err(); err != nil {
		return fmt.Errorf("clear history thread: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
