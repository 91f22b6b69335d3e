package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Poll streams change events for backends that cannot be watched, by reading
// every key each interval and comparing digests. The first read only seeds
// the digests. The channel is closed once ctx is done.
func Poll(ctx context.Context, kv KV, interval time.Duration, log *slog.Logger) (<-chan Event, error) {
	if interval <= 0 {
		return nil, errors.New("store: poll interval must be positive")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	digests := make(map[string]uint64, len(Keys))
	scan := func(emit func(Event)) {
		for _, k := range Keys {
			val, err := kv.Read(ctx, k)
			var sum uint64
			switch {
			case errors.Is(err, ErrKeyNotFound):
			case err != nil:
				log.Warn("store: poll read", "key", k, "error", err)
				continue
			default:
				sum = xxhash.Sum64(val)
			}
			if prev, seen := digests[k]; seen && prev != sum && emit != nil {
				emit(Event{Key: k})
			}
			digests[k] = sum
		}
	}
	scan(nil)

	events := make(chan Event, len(Keys))
	go func() {
		defer close(events)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scan(func(ev Event) {
					select {
					case events <- ev:
					default:
					}
				})
			}
		}
	}()
	return events, nil
}
