package drill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/palabra/internal/config"
)

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps sessions as JSON values that expire after the TTL.
type RedisStore struct {
	client    RedisClient
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

func NewRedisStore(client RedisClient, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		now:       time.Now,
	}
}

// NewRedisClient creates a client and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	value, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("client.Get(%s) > %w", id, err)
	}

	var session Session
	if err := json.Unmarshal(value, &session); err != nil {
		return nil, fmt.Errorf("json.Unmarshal() > %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = s.now()
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set(%s) > %w", session.ID, err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}
