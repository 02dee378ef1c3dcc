package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the watcher waits for a burst of writes to end.
const settle = 100 * time.Millisecond

// Event is emitted by Persistence.Watch when the stored blob changes on disk.
// Writes made through this process are reported too; callers compare the
// blob they last wrote to tell them apart.
type Event struct {
	Key string
	// Err is set when the watcher itself failed and the caller should
	// re-read everything.
	Err error
}

// watchFiles streams change events for files under dir accepted by match
// until ctx is cancelled, then closes the channel. A burst of file events
// is reported once.
func watchFiles(ctx context.Context, dir string, match func(name string) bool) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		var (
			pending *Event
			timer   *time.Timer
			fire    <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		queue := func(ev Event) {
			// An error wins over a plain change.
			if pending == nil || ev.Err != nil {
				pending = &ev
			}
			if fire == nil {
				timer = time.NewTimer(settle)
				fire = timer.C
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				queue(Event{Key: Key, Err: err})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 || !match(evt.Name) {
					continue
				}
				queue(Event{Key: Key})
			case <-fire:
				fire = nil
				select {
				case events <- *pending:
				default:
					// One undelivered event already means "reload".
				}
				pending = nil
			}
		}
	}()

	return events, nil
}
