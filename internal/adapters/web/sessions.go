package web

import (
	"context"
	"sync"
	"time"

	"curtain-pos/internal/app"
)

// ── Sale session store ────────────────────────────────────────────────────────

const defaultSessionTTL = 30 * time.Minute

// sessionStore keeps open sale sessions in memory. A session unused for
// longer than ttl is dropped.
type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*app.Session
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionStore{ttl: ttl, sessions: make(map[string]*app.Session)}
}

func (s *sessionStore) put(sess *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *sessionStore) get(id string) (*app.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(sess.LastUsed()) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if time.Since(sess.LastUsed()) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

// startPurge evicts expired sessions every 5 minutes until ctx is done.
func (s *sessionStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purge()
			}
		}
	}()
}
