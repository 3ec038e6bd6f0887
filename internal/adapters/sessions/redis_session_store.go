package sessions

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "walk:session:"

// Redis-backed session store. Each save refreshes the key TTL, so a
// session expires after TTL of inactivity.
type RedisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// OpenRedis parses a redis:// URL and verifies the connection.
func OpenRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}
	return client, nil
}

func (r *RedisSessionStore) Load(ctx context.Context, id string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "sessions.redis.Load")(&err)

	b, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("load session %s: decode: %w", id, err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("redis session store: session id must not be empty")
	}

	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("save session %s: encode: %w", s.ID, err)
	}

	if err := r.client.Set(ctx, keyPrefix+s.ID, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
