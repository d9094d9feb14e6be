package web

import (
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/activityboard/internal/board"
)

type storeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *storeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *storeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(idleTTL time.Duration) (*sessionStore, *storeClock, *[]string) {
	clock := &storeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	var created []string
	store := newSessionStore(func(id string) *board.Controller {
		created = append(created, id)
		return board.New(newFakeGateway())
	}, idleTTL)
	store.now = clock.Now
	return store, clock, &created
}

func TestAcquireCreatesAndReusesSessions(t *testing.T) {
	t.Parallel()

	store, _, created := newTestStore(time.Minute)
	first, isNew := store.acquire("")
	if !isNew || first.id == "" {
		t.Fatalf("acquire(\"\") = %q, %v", first.id, isNew)
	}
	again, isNew := store.acquire(first.id)
	if isNew || again != first {
		t.Fatal("known id must return the same session")
	}
	other, isNew := store.acquire("forged")
	if !isNew || other.id == "forged" {
		t.Fatalf("unknown id must get a fresh session, got %q", other.id)
	}
	if len(*created) != 2 || store.len() != 2 {
		t.Fatalf("created %d controllers, store holds %d", len(*created), store.len())
	}
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	t.Parallel()

	store, clock, _ := newTestStore(time.Minute)
	idle, _ := store.acquire("")
	clock.Advance(30 * time.Second)
	active, _ := store.acquire("")

	clock.Advance(45 * time.Second)
	if evicted := store.sweep(); evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if _, ok := store.lookup(idle.id); ok {
		t.Fatal("idle session survived the sweep")
	}
	if _, ok := store.lookup(active.id); !ok {
		t.Fatal("recent session was evicted")
	}
}

func TestSweepKeepsLiveSessions(t *testing.T) {
	t.Parallel()

	store, clock, _ := newTestStore(time.Minute)
	sess, _ := store.acquire("")
	store.attach(sess)
	clock.Advance(time.Hour)
	if evicted := store.sweep(); evicted != 0 {
		t.Fatalf("evicted = %d, want 0 while live", evicted)
	}

	store.detach(sess)
	clock.Advance(time.Hour)
	if evicted := store.sweep(); evicted != 1 {
		t.Fatalf("evicted = %d, want 1 after detach", evicted)
	}
}

func TestCloseAllClosesControllers(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(time.Minute)
	sess, _ := store.acquire("")
	notified := false
	sess.controller.Subscribe(func(board.Snapshot) { notified = true })

	store.closeAll()
	if store.len() != 0 {
		t.Fatalf("store holds %d sessions after closeAll", store.len())
	}
	sess.controller.Refresh(t.Context())
	if notified {
		t.Fatal("closed controller notified a listener")
	}

	late, isNew := store.acquire("")
	if !isNew || store.len() != 0 {
		t.Fatal("sessions acquired after closeAll must not be stored")
	}
	if got := late.controller.Snapshot().Phase; got != board.PhaseIdle {
		t.Fatalf("late controller phase = %q", got)
	}
}
