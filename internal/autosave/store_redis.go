package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/park285/chess-rules/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "chess:autosave"
	DefaultTTL = 24 * time.Hour
)

// RedisStore keeps the latest snapshot as JSON under one key.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisStore stores under key (DefaultKey when blank). ttl <= 0 keeps the key forever.
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &RedisStore{rdb: rdb, key: strings.TrimSpace(key), ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, snap domain.GameSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, s.key, raw, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context) (*domain.GameSnapshot, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap domain.GameSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (s *RedisStore) Exists(ctx context.Context) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

// ParseRedisURL converts redis://[:password@]host[:port][/db] into client options.
func ParseRedisURL(raw string) (*redis.Options, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	host := u.Host
	if u.Port() == "" {
		host = u.Hostname() + ":6379"
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	pass, _ := u.User.Password()
	return &redis.Options{Addr: host, Password: pass, DB: db}, nil
}
