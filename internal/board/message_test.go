package board

import (
	"testing"
	"time"
)

func TestMessageRegionHidesAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &manualClock{}
	changes := 0
	region := NewMessageRegion(clock, 5*time.Second, func() { changes++ })

	region.Show(Message{Kind: MessageSuccess, Text: "Signed up"})
	if msg, visible := region.Current(); !visible || msg.Text != "Signed up" {
		t.Fatalf("expected visible message, got %+v visible=%v", msg, visible)
	}

	clock.Advance(4999 * time.Millisecond)
	if _, visible := region.Current(); !visible {
		t.Fatalf("message hidden before ttl")
	}
	clock.Advance(time.Millisecond)
	if _, visible := region.Current(); visible {
		t.Fatalf("message still visible at ttl")
	}
	if changes != 2 {
		t.Fatalf("changes = %d, want 2", changes)
	}
}

func TestMessageRegionNewMessageCancelsPendingHide(t *testing.T) {
	t.Parallel()

	clock := &manualClock{}
	region := NewMessageRegion(clock, 5*time.Second, nil)

	region.Show(Message{Kind: MessageSuccess, Text: "first"})
	clock.Advance(3 * time.Second)
	region.Show(Message{Kind: MessageError, Text: "second"})
	if clock.Pending() != 1 {
		t.Fatalf("pending timers = %d, want 1", clock.Pending())
	}

	clock.Advance(2 * time.Second)
	msg, visible := region.Current()
	if !visible || msg.Text != "second" {
		t.Fatalf("second message hidden by first timer: %+v visible=%v", msg, visible)
	}
	clock.Advance(3 * time.Second)
	if _, visible := region.Current(); visible {
		t.Fatalf("second message still visible after its own ttl")
	}
}

func TestMessageRegionStaleTimerIsIgnored(t *testing.T) {
	t.Parallel()

	region := NewMessageRegion(&manualClock{}, time.Second, nil)
	region.Show(Message{Text: "first"})
	region.Show(Message{Text: "second"})

	region.expire(1)
	if msg, visible := region.Current(); !visible || msg.Text != "second" {
		t.Fatalf("stale expiry hid newer message: %+v visible=%v", msg, visible)
	}
}

func TestMessageRegionCloseStopsTimer(t *testing.T) {
	t.Parallel()

	clock := &manualClock{}
	region := NewMessageRegion(clock, time.Second, nil)
	region.Show(Message{Text: "bye"})
	region.Close()
	if clock.Pending() != 0 {
		t.Fatalf("pending timers = %d, want 0", clock.Pending())
	}
	region.Show(Message{Text: "ignored"})
	if msg, _ := region.Current(); msg.Text != "bye" {
		t.Fatalf("closed region accepted new message: %+v", msg)
	}
}

func TestNewMessageRegionDefaults(t *testing.T) {
	t.Parallel()

	region := NewMessageRegion(nil, 0, nil)
	if region.ttl != DefaultMessageTTL {
		t.Fatalf("ttl = %v, want %v", region.ttl, DefaultMessageTTL)
	}
	if _, ok := region.clock.(SystemClock); !ok {
		t.Fatalf("clock = %T, want SystemClock", region.clock)
	}
}
