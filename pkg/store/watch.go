package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that the value stored under Key changed on disk.
type Event struct {
	Key string
}

// Watch streams change events for the logical keys until ctx is cancelled.
// Bursts of writes to the same key are coalesced. Callers should drain the
// channel; events are dropped rather than blocking the watcher, and the
// channel is closed once ctx is done.
func (p *Diskv) Watch(ctx context.Context, log *slog.Logger) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn("store: watcher close", "error", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, len(Keys)*4)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Unknown damage: ask for a reload of everything.
				log.Warn("store: watcher error", "error", err)
				for _, k := range Keys {
					throttle.Enqueue(Event{Key: k}, send)
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if key := p.keyForPath(evt.Name); key != "" {
					throttle.Enqueue(Event{Key: key}, send)
				}
			}
		}
	}()

	return events, nil
}

// keyForPath maps a file in the base directory back to its logical key.
func (p *Diskv) keyForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	if filepath.Dir(rel) != "." {
		return ""
	}
	for _, k := range Keys {
		if rel == k {
			return k
		}
	}
	return ""
}

// eventThrottle coalesces rapid change notifications so a reload happens once
// per burst of writes instead of once per file operation. Once Stop returns
// no send is running and none will follow.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev.Key] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush holds the lock while sending; send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[string]struct{})
	t.timer = nil
	if t.stopped {
		return
	}
	for key := range pending {
		send(Event{Key: key})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
