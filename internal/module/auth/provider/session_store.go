package provider

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/genesis-marketplace/marketplace-admin/internal/module/shared"
)

const sessionKeyPrefix = "session:"

var ErrSessionNotFound = errors.New("session not found")

// GoogleProfile is the subset of the userinfo response kept in a session
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Picture       string `json:"picture,omitempty"`
}

type SessionStore interface {
	Save(ctx context.Context, id string, profile *GoogleProfile, ttl time.Duration) error
	Load(ctx context.Context, id string) (*GoogleProfile, error)
	Delete(ctx context.Context, id string) error
}

// NewSessionStore keeps sessions in Redis when it is enabled, in process memory otherwise
func NewSessionStore(redis *shared.RedisClient) SessionStore {
	if redis.Enabled() {
		return &redisSessionStore{redis: redis}
	}
	return NewMemorySessionStore(time.Now)
}

type redisSessionStore struct {
	redis *shared.RedisClient
}

func (s *redisSessionStore) Save(ctx context.Context, id string, profile *GoogleProfile, ttl time.Duration) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.redis.SetBytes(ctx, sessionKeyPrefix+id, data, ttl)
}

func (s *redisSessionStore) Load(ctx context.Context, id string) (*GoogleProfile, error) {
	data, err := s.redis.GetBytes(ctx, sessionKeyPrefix+id)
	if errors.Is(err, shared.ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var profile GoogleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.redis.Delete(ctx, sessionKeyPrefix+id)
}

type memorySession struct {
	profile   GoogleProfile
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]memorySession
}

func NewMemorySessionStore(now func() time.Time) SessionStore {
	return &memorySessionStore{now: now, sessions: make(map[string]memorySession)}
}

func (s *memorySessionStore) Save(_ context.Context, id string, profile *GoogleProfile, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// drop expired sessions while we hold the lock
	for key, session := range s.sessions {
		if !now.Before(session.expiresAt) {
			delete(s.sessions, key)
		}
	}
	s.sessions[id] = memorySession{profile: *profile, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memorySessionStore) Load(_ context.Context, id string) (*GoogleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(session.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	profile := session.profile
	return &profile, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
