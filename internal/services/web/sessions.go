package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/louisbranch/activityboard/internal/board"
)

// session binds one browser to its board controller.
type session struct {
	id         string
	controller *board.Controller
}

type sessionEntry struct {
	session  *session
	lastSeen time.Time
	live     int
}

// sessionStore owns per-browser controllers and evicts idle ones.
type sessionStore struct {
	newController func(id string) *board.Controller
	idleTTL       time.Duration
	now           func() time.Time

	mu      sync.Mutex
	entries map[string]*sessionEntry
	closed  bool
}

func newSessionStore(newController func(id string) *board.Controller, idleTTL time.Duration) *sessionStore {
	return &sessionStore{
		newController: newController,
		idleTTL:       idleTTL,
		now:           time.Now,
		entries:       map[string]*sessionEntry{},
	}
}

// acquire returns the session for id, creating a fresh one under a new id
// when id is unknown. created reports whether a cookie must be issued.
func (s *sessionStore) acquire(id string) (sess *session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[id]; ok && id != "" {
		entry.lastSeen = s.now()
		return entry.session, false
	}
	sess = &session{id: uuid.NewString()}
	sess.controller = s.newController(sess.id)
	if s.closed {
		sess.controller.Close()
		return sess, true
	}
	s.entries[sess.id] = &sessionEntry{session: sess, lastSeen: s.now()}
	return sess, true
}

// lookup returns an existing session without creating one.
func (s *sessionStore) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.session, true
}

// attach pins a session while a live connection uses it.
func (s *sessionStore) attach(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[sess.id]; ok {
		entry.live++
		entry.lastSeen = s.now()
	}
}

func (s *sessionStore) detach(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[sess.id]; ok && entry.live > 0 {
		entry.live--
		entry.lastSeen = s.now()
	}
}

// sweep closes sessions idle for longer than the idle TTL and returns how
// many it evicted. Sessions with live connections are kept.
func (s *sessionStore) sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.idleTTL)
	var expired []*session
	for id, entry := range s.entries {
		if entry.live > 0 || entry.lastSeen.After(cutoff) {
			continue
		}
		expired = append(expired, entry.session)
		delete(s.entries, id)
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.controller.Close()
	}
	return len(expired)
}

// run sweeps every interval until ctx is done.
func (s *sessionStore) run(ctx context.Context, interval time.Duration, onSweep func(evicted int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.sweep(); evicted > 0 && onSweep != nil {
				onSweep(evicted)
			}
		}
	}
}

// closeAll closes every controller. Later acquisitions get closed
// controllers that are never stored.
func (s *sessionStore) closeAll() {
	s.mu.Lock()
	entries := s.entries
	s.entries = map[string]*sessionEntry{}
	s.closed = true
	s.mu.Unlock()

	for _, entry := range entries {
		entry.session.controller.Close()
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
