// Package board implements the activity board controller: it fetches the
// activity collection, renders it into a view, submits signups, removes
// participants and owns the transient message region.
//
// A Controller holds no DOM or HTTP state. Callers render Snapshot values and
// register listeners to learn about changes.
package board

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/louisbranch/activityboard/internal/activities"
)

// Localization keys for copy the controller chooses itself.
const (
	KeyLoadFailed   = "board.list.load_failed"
	KeySignupFailed = "board.signup.failed"
	KeySignupError  = "board.signup.error"
)

// Gateway is the activities API surface the controller drives.
type Gateway interface {
	ListActivities(ctx context.Context) (activities.Collection, error)
	Signup(ctx context.Context, activity string, email string) (activities.Result, error)
	Unregister(ctx context.Context, activity string, email string) (activities.Result, error)
}

// Phase is the render cycle state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseRendered Phase = "rendered"
	PhaseFailed   Phase = "failed"
)

// SignupForm holds the signup form fields.
type SignupForm struct {
	Email    string
	Activity string
}

// Snapshot is an immutable copy of controller state. Outcome is the phase
// the last finished refresh left behind and ignores refreshes in flight, so
// View stays meaningful while Phase is PhaseLoading.
type Snapshot struct {
	Phase          Phase
	Outcome        Phase
	View           View
	Message        Message
	MessageVisible bool
	Form           SignupForm
}

// Option customizes a Controller.
type Option func(*options)

type options struct {
	clock  Clock
	ttl    time.Duration
	logger zerolog.Logger
}

// WithClock replaces the clock used by the message region.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithMessageTTL sets how long messages stay visible.
func WithMessageTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Controller drives one activity board.
type Controller struct {
	gateway Gateway
	logger  zerolog.Logger
	message *MessageRegion

	mu        sync.Mutex
	outcome   Phase
	inflight  int
	view      View
	form      SignupForm
	listeners map[uint64]func(Snapshot)
	nextID    uint64
	closed    bool
}

// New builds an idle controller. Nothing is fetched until Refresh runs.
func New(gateway Gateway, opts ...Option) *Controller {
	o := options{
		clock:  SystemClock{},
		ttl:    DefaultMessageTTL,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	c := &Controller{
		gateway:   gateway,
		logger:    o.logger,
		outcome:   PhaseIdle,
		listeners: map[uint64]func(Snapshot){},
	}
	c.message = NewMessageRegion(o.clock, o.ttl, c.notify)
	return c
}

// Refresh fetches the collection and replaces the view. Failures switch the
// board to PhaseFailed and are logged; they never propagate.
func (c *Controller) Refresh(ctx context.Context) {
	if !c.begin() {
		return
	}
	collection, err := c.gateway.ListActivities(ctx)

	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.outcome = PhaseFailed
	} else {
		c.outcome = PhaseRendered
		c.view = Render(collection)
		c.form.Activity = ""
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error().Err(err).Msg("fetch activities")
	}
	c.notify()
}

// Submit registers form.Email for form.Activity and reports the message it
// showed. Success resets the form and refreshes the board; failures keep the
// form as entered.
func (c *Controller) Submit(ctx context.Context, form SignupForm) Message {
	if c.isClosed() {
		return Message{}
	}
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()

	result, err := c.gateway.Signup(ctx, form.Activity, form.Email)
	var msg Message
	switch apiErr, isAPIErr := activities.AsAPIError(err); {
	case err == nil:
		msg = Message{Kind: MessageSuccess, Text: result.Message}
	case isAPIErr:
		msg = Message{Kind: MessageError, Text: apiErr.Detail}
		if msg.Text == "" {
			msg.Key = KeySignupError
		}
	default:
		c.logger.Error().Err(err).Str("activity", form.Activity).Msg("sign up")
		msg = Message{Kind: MessageError, Key: KeySignupFailed}
	}
	c.message.Show(msg)
	if err != nil {
		return msg
	}

	c.mu.Lock()
	c.form = SignupForm{}
	c.mu.Unlock()
	c.Refresh(ctx)
	return msg
}

// Unregister removes participant from activity and refreshes the board on
// success. Failures are logged and leave the board untouched.
func (c *Controller) Unregister(ctx context.Context, activity string, participant string) {
	if c.isClosed() {
		return
	}
	if _, err := c.gateway.Unregister(ctx, activity, participant); err != nil {
		c.logger.Error().Err(err).Str("activity", activity).Msg("unregister participant")
		return
	}
	c.Refresh(ctx)
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change. fn may be
// called from several goroutines and must not block. The returned function
// removes the registration.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Close stops the message timer and drops every listener. Operations on a
// closed controller do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.listeners = map[uint64]func(Snapshot){}
	c.mu.Unlock()
	c.message.Close()
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.inflight++
	c.mu.Unlock()
	c.notify()
	return true
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) snapshotLocked() Snapshot {
	phase := c.outcome
	if c.inflight > 0 {
		phase = PhaseLoading
	}
	msg, visible := c.message.Current()
	return Snapshot{
		Phase:          phase,
		Outcome:        c.outcome,
		View:           c.view.clone(),
		Message:        msg,
		MessageVisible: visible,
		Form:           c.form,
	}
}

func (c *Controller) notify() {
	c.mu.Lock()
	if c.closed || len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	snapshot := c.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
