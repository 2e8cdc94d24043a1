package wolio

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDispatcherDeliversToChannelSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 8}, sink)

	d.Emit(context.Background(), Event{EventType: "auth_committed", UserID: "u-1"})
	d.Close()

	select {
	case event := <-sink.Events():
		if event.EventType != "auth_committed" || event.UserID != "u-1" {
			t.Fatalf("event = %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) Emit(ctx context.Context, _ Event) {
	select {
	case <-s.release:
	case <-ctx.Done():
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	d := newEventDispatcher(EventsConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// The sink blocks, so after the in-flight event and the single queue slot
	// every further emission must be dropped, not stall the caller.
	for i := 0; i < 64; i++ {
		d.Emit(context.Background(), Event{EventType: "hydrate_completed"})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected drops under backpressure")
	}

	close(sink.release)
	d.Close()
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := newEventDispatcher(EventsConfig{Enabled: false}, nil)
	if d != nil {
		t.Fatal("disabled dispatcher must be nil")
	}

	// Nil receivers must be safe.
	d.Emit(context.Background(), Event{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reports zero drops")
	}
}

func TestJSONWriterSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{EventType: "logout", LoggedIn: false, Ready: true})
	sink.Emit(context.Background(), Event{EventType: "auth_committed", LoggedIn: true, Ready: true})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if first.EventType != "logout" || !first.Ready {
		t.Fatalf("first event = %+v", first)
	}
}

func TestStoreEmitsLifecycleEvents(t *testing.T) {
	sink := NewChannelSink(32)
	store, err := New().
		WithStorage(newMemStore()).
		WithAuthClient(&fakeAuth{}).
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx := context.Background()
	store.Hydrate(ctx)
	if err := store.SetAuthAfterVerify(ctx, "tok-x", testUser()); err != nil {
		t.Fatalf("SetAuthAfterVerify: %v", err)
	}
	store.Logout(ctx)
	store.Close()

	var types []string
	for len(sink.Events()) > 0 {
		types = append(types, (<-sink.Events()).EventType)
	}

	want := []string{"hydrate_completed", "auth_committed", "logout"}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("events = %v, want %v", types, want)
		}
	}
}
