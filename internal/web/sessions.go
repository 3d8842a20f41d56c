package web

import (
	"context"
	"sync"
	"time"

	"github.com/success20242/TrendingVideo/internal/fetch"
	"github.com/success20242/TrendingVideo/internal/prefs"
)

// session is the live state of one browser profile: its preferences and
// the controller that keeps its trending list current.
type session struct {
	prefs    *prefs.Store
	ctrl     *fetch.Controller
	lastSeen time.Time
}

type sessions struct {
	backend prefs.Backend
	fetcher fetch.Fetcher
	timeout time.Duration
	idle    time.Duration
	limit   int
	now     func() time.Time

	mu        sync.Mutex
	byProfile map[string]*session
}

func newSessions(backend prefs.Backend, fetcher fetch.Fetcher, timeout, idle time.Duration, limit int) *sessions {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	if limit <= 0 {
		limit = 10000
	}
	return &sessions{
		backend:   backend,
		fetcher:   fetcher,
		timeout:   timeout,
		idle:      idle,
		limit:     limit,
		now:       time.Now,
		byProfile: make(map[string]*session),
	}
}

func (s *sessions) get(profile string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byProfile[profile]
	if !ok {
		if len(s.byProfile) >= s.limit {
			s.evictOldestLocked()
		}
		sess = &session{
			prefs: prefs.NewStore(s.backend, profile),
			ctrl:  fetch.NewController(s.fetcher, s.timeout),
		}
		s.byProfile[profile] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

// evictOldestLocked makes room for a new profile. Cookieless clients get a
// new profile on every request, so the map is bounded between sweeps.
func (s *sessions) evictOldestLocked() {
	var (
		oldestID string
		oldest   *session
	)
	for id, sess := range s.byProfile {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	if oldest != nil {
		oldest.ctrl.Close()
		delete(s.byProfile, oldestID)
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byProfile)
}

// sweep forgets idle sessions. Their preferences remain in the backend.
func (s *sessions) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	for id, sess := range s.byProfile {
		if sess.lastSeen.Before(cutoff) {
			sess.ctrl.Close()
			delete(s.byProfile, id)
		}
	}
}

func (s *sessions) run(ctx context.Context) {
	ticker := time.NewTicker(s.idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}
