package sse

import (
	"strings"
	"testing"
	"time"
)

func recv(t *testing.T, ch chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed while waiting for event")
		}
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ""
}

func TestSubscribeAndCount(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()
	if n := b.ClientCount(); n != 2 {
		t.Errorf("ClientCount = %d, want 2", n)
	}

	b.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Error("unsubscribed channel not closed")
	}
	if n := b.ClientCount(); n != 1 {
		t.Errorf("ClientCount after unsubscribe = %d, want 1", n)
	}
	_ = c
}

func TestPublishFormatsSSEFrame(t *testing.T) {
	b := NewBroker(time.Second)
	defer b.Close()

	ch := b.Subscribe()
	b.Publish(Event{Type: "store.changed", Data: map[string]string{"path": "db"}})

	got := recv(t, ch)
	want := "event: store.changed\ndata: {\"path\":\"db\"}\n\n"
	if got != want {
		t.Errorf("frame = %q, want %q", got, want)
	}
}

func TestPublishChangeEmitsStatsHint(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	b.PublishChange("vehicle.created", "v1")

	first := recv(t, ch)
	if !strings.HasPrefix(first, "event: vehicle.created\n") || !strings.Contains(first, `"id":"v1"`) {
		t.Errorf("entity frame = %q", first)
	}
	second := recv(t, ch)
	if !strings.HasPrefix(second, "event: stats.updated\n") {
		t.Errorf("stats frame = %q", second)
	}
}

func TestStatsHintThrottled(t *testing.T) {
	b := NewBroker(time.Hour)
	defer b.Close()

	ch := b.Subscribe()
	b.PublishChange("vehicle.created", "v1")
	recv(t, ch) // entity
	recv(t, ch) // stats

	// The second change inside the throttle window carries no stats hint.
	b.PublishChange("vehicle.updated", "v1")
	got := recv(t, ch)
	if !strings.HasPrefix(got, "event: vehicle.updated\n") {
		t.Errorf("frame = %q", got)
	}

	b.PublishChange("vehicle.deleted", "v1")
	got = recv(t, ch)
	if !strings.HasPrefix(got, "event: vehicle.deleted\n") {
		t.Errorf("frame = %q, stats hint must stay throttled", got)
	}
}

func TestCloseShutsDownClients(t *testing.T) {
	b := NewBroker(time.Second)
	ch := b.Subscribe()
	b.Close()

	if _, ok := <-ch; ok {
		t.Error("client channel still open after Close")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("ClientCount after Close = %d, want 0", n)
	}

	// Post-close calls are harmless no-ops.
	b.Publish(Event{Type: "x"})
	b.PublishChange("y", "1")
	b.Unsubscribe(ch)
	b.Close()
}

func TestSubscribeAfterClose(t *testing.T) {
	b := NewBroker(time.Second)
	b.Close()

	ch := b.Subscribe()
	if _, ok := <-ch; ok {
		t.Error("subscription after Close must come back closed")
	}
}
