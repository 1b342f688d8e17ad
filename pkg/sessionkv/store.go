package sessionkv

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the session-scoped key-value holding the chat session id per
// client. It carries no logic of its own: failures only cost session
// continuity, never data, so callers log and swallow errors.
type Store interface {
	Get(ctx context.Context, clientId string) (string, error)
	Set(ctx context.Context, clientId, sessionId string) error
	Delete(ctx context.Context, clientId string) error
}

const keyPrefix = "hcp:chat_session:"

// RedisStore keeps session ids in Redis so they survive a service restart
// within the TTL window.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, clientId string) (string, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+clientId).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, clientId, sessionId string) error {
	if sessionId == "" {
		return s.Delete(ctx, clientId)
	}
	return s.rdb.Set(ctx, keyPrefix+clientId, sessionId, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, clientId string) error {
	return s.rdb.Del(ctx, keyPrefix+clientId).Err()
}

// MemoryStore backs tests and the simulator.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, clientId string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[clientId], nil
}

func (s *MemoryStore) Set(_ context.Context, clientId, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sessionId == "" {
		delete(s.m, clientId)
		return nil
	}
	s.m[clientId] = sessionId
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, clientId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, clientId)
	return nil
}
