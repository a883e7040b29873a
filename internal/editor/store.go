package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"ellavera-site/pkg/cache"
	"ellavera-site/pkg/logger"
)

// DraftStore keeps editor sessions between requests.
type DraftStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

type memoryItem struct {
	session *Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Sessions expire ttl after
// they were last read or written.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || s.expired(item) {
		return nil, ErrSessionNotFound
	}
	if s.ttl > 0 {
		item.expires = s.now().Add(s.ttl)
		s.items[id] = item
	}
	return item.session.Clone(), nil
}

func (s *MemoryStore) Put(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}

	item := memoryItem{session: session.Clone()}
	if s.ttl > 0 {
		item.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[session.ID] = item
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len reports how many sessions are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemoryStore) expired(item memoryItem) bool {
	return !item.expires.IsZero() && s.now().After(item.expires)
}

// CacheStore keeps sessions in redis so several site instances share them.
// Reads slide the expiry like MemoryStore does.
type CacheStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewCacheStore(c *cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

func (s *CacheStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := s.cache.Get(ctx, cache.DraftKey(id), &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) || errors.Is(err, cache.ErrCacheDisabled) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if s.ttl > 0 {
		if err := s.cache.Expire(ctx, cache.DraftKey(id), s.ttl); err != nil {
			logger.FromContext(ctx).WithError(err).WithField("session", id).Warn("Failed to extend draft session expiry")
		}
	}
	return &session, nil
}

func (s *CacheStore) Put(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id is required")
	}
	return s.cache.Set(ctx, cache.DraftKey(session.ID), session, s.ttl)
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, cache.DraftKey(id))
}
