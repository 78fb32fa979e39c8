package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keys. They keep the names the browser client used for localStorage.
const (
	KeyCurrentUser  = "currentUser"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyPendingEmail = "pendingVerificationEmail"
	KeyUserType     = "userType"
)

// Store persists flat string values per session id.
type Store interface {
	GetAll(ctx context.Context, sid string) (map[string]string, error)
	Set(ctx context.Context, sid string, values map[string]string) error
	Delete(ctx context.Context, sid string, keys ...string) error
	Clear(ctx context.Context, sid string) error
}

// RedisStore keeps one hash per session with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sid string) string {
	return "session:" + sid
}

func (s *RedisStore) GetAll(ctx context.Context, sid string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, redisKey(sid)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		s.client.Expire(ctx, redisKey(sid), s.ttl)
	}
	return values, nil
}

func (s *RedisStore) Set(ctx context.Context, sid string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, redisKey(sid), values)
	pipe.Expire(ctx, redisKey(sid), s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.HDel(ctx, redisKey(sid), keys...).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, redisKey(sid)).Err()
}

// MemoryStore is the in-process fallback used when Redis is down.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[string]*memorySession
	now       func() time.Time
	nextSweep time.Time
}

// memorySweepInterval bounds how often Set walks the map for expired sessions.
const memorySweepInterval = time.Minute

type memorySession struct {
	values    map[string]string
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

var errEmptySessionID = errors.New("empty session id")

func (s *MemoryStore) GetAll(_ context.Context, sid string) (map[string]string, error) {
	if sid == "" {
		return nil, errEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return map[string]string{}, nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return map[string]string{}, nil
	}
	sess.expiresAt = s.now().Add(s.ttl)

	out := make(map[string]string, len(sess.values))
	for k, v := range sess.values {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, sid string, values map[string]string) error {
	if sid == "" {
		return errEmptySessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	sess, ok := s.sessions[sid]
	if !ok || s.now().After(sess.expiresAt) {
		sess = &memorySession{values: make(map[string]string)}
		s.sessions[sid] = sess
	}
	for k, v := range values {
		sess.values[k] = v
	}
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

// sweepLocked drops sessions abandoned without a logout. s.mu must be held.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	if now.Before(s.nextSweep) {
		return
	}
	for sid, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, sid)
		}
	}
	s.nextSweep = now.Add(memorySweepInterval)
}

func (s *MemoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sid]; ok {
		for _, k := range keys {
			delete(sess.values, k)
		}
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
