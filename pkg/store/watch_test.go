package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	p, err := OpenDiskv(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx, nil)
	require.NoError(t, err)

	// Allow the watcher goroutine to start before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, p.Write(ctx, KeyTasks, []byte(`[]`)))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == KeyTasks {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestKeyForPathIgnoresTempFiles(t *testing.T) {
	base := t.TempDir()
	p, err := OpenDiskv(base)
	require.NoError(t, err)

	require.Equal(t, KeyGoals, p.keyForPath(base+"/goals"))
	require.Empty(t, p.keyForPath(base+"/.tmp/goals"))
	require.Empty(t, p.keyForPath(base+"/notes.txt"))
}

func TestEventThrottleStopsSending(t *testing.T) {
	th := newEventThrottle(time.Millisecond)

	events := make(chan Event, 4)
	var mu sync.Mutex
	closed := false
	send := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			t.Errorf("send after stop: %v", ev)
			return
		}
		events <- ev
	}

	th.Enqueue(Event{Key: KeyTasks}, send)
	th.Enqueue(Event{Key: KeyTasks}, send)
	select {
	case ev := <-events:
		if ev.Key != KeyTasks {
			t.Fatalf("unexpected key %q", ev.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no coalesced event")
	}

	th.Enqueue(Event{Key: KeyGoals}, send)
	th.Stop()
	// A flush that won the race with Stop has already finished sending.
	for len(events) > 0 {
		<-events
	}
	mu.Lock()
	closed = true
	mu.Unlock()

	th.Enqueue(Event{Key: KeySettings}, send)
	time.Sleep(20 * time.Millisecond)
	if len(events) != 0 {
		t.Fatalf("expected no events after stop, got %d", len(events))
	}
}
