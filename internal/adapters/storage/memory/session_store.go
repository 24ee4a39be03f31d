package memory

import (
	"context"
	"strings"
	"sync"

	"petcare-web/internal/session"
)

type sessionStore struct {
	mu    sync.RWMutex
	bySID map[string]map[session.Key]string
}

// NewSessionStore guarda las sesiones en memoria del proceso.
// Se pierden al reiniciar; útil para dev y tests.
func NewSessionStore() session.Store {
	return &sessionStore{
		bySID: make(map[string]map[session.Key]string),
	}
}

func (s *sessionStore) Get(ctx context.Context, sid string, key session.Key) (string, bool, error) {
	if strings.TrimSpace(sid) == "" {
		return "", false, session.ErrInvalidSessionID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.bySID[sid][key]
	return v, ok, nil
}

func (s *sessionStore) Set(ctx context.Context, sid string, key session.Key, value string) error {
	if strings.TrimSpace(sid) == "" {
		return session.ErrInvalidSessionID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.bySID[sid]
	if !ok {
		m = make(map[session.Key]string)
		s.bySID[sid] = m
	}
	m[key] = value
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, sid string, keys ...session.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.bySID[sid]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(s.bySID, sid)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bySID, sid)
	return nil
}
