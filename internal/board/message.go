package board

import (
	"sync"
	"time"
)

// DefaultMessageTTL is how long a message stays visible.
const DefaultMessageTTL = 5 * time.Second

// MessageKind selects message presentation.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the content of the message region. Text is server-provided copy
// shown verbatim; Key names localized copy and is used when Text is empty.
type Message struct {
	Kind MessageKind
	Text string
	Key  string
}

// MessageRegion shows one message at a time and hides it after a TTL. It owns
// a single timer: showing a message cancels the pending hide of the previous
// one.
type MessageRegion struct {
	mu       sync.Mutex
	clock    Clock
	ttl      time.Duration
	message  Message
	visible  bool
	timer    Timer
	seq      uint64
	closed   bool
	onChange func()
}

// NewMessageRegion builds a hidden region. onChange runs, outside the
// region's lock, after every show and hide.
func NewMessageRegion(clock Clock, ttl time.Duration, onChange func()) *MessageRegion {
	if clock == nil {
		clock = SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &MessageRegion{clock: clock, ttl: ttl, onChange: onChange}
}

// Show makes msg visible and schedules its hide.
func (m *MessageRegion) Show(msg Message) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.seq++
	seq := m.seq
	m.message = msg
	m.visible = true
	m.timer = m.clock.AfterFunc(m.ttl, func() { m.expire(seq) })
	m.mu.Unlock()

	m.changed()
}

// Current returns the message and whether it is visible.
func (m *MessageRegion) Current() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message, m.visible
}

// Close cancels the pending hide. A closed region ignores further shows.
func (m *MessageRegion) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.closed = true
}

// expire hides the message scheduled under seq. A timer that fired after a
// newer Show is ignored.
func (m *MessageRegion) expire(seq uint64) {
	m.mu.Lock()
	if m.closed || seq != m.seq || !m.visible {
		m.mu.Unlock()
		return
	}
	m.visible = false
	m.timer = nil
	m.mu.Unlock()

	m.changed()
}

func (m *MessageRegion) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
