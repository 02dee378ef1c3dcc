package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsChanges(t *testing.T) {
	for _, backend := range []string{BackendDiskv, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			p, err := Load(StaticConfig(t.TempDir(), backend))
			if err != nil {
				t.Fatalf("load persistence: %v", err)
			}
			defer p.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := p.Watch(ctx)
			if err != nil {
				t.Fatalf("watch: %v", err)
			}

			// Allow watcher goroutine to subscribe before writing.
			time.Sleep(50 * time.Millisecond)

			if err := p.Write(ctx, []byte(`[]`)); err != nil {
				t.Fatalf("write: %v", err)
			}

			select {
			case evt := <-ch:
				if evt.Key != Key {
					t.Fatalf("expected key %q, got %q", Key, evt.Key)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for change event")
			}
		})
	}
}

func TestPersistenceWatchCoalescesBursts(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir(), BackendDiskv))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := p.Write(ctx, []byte(`[]`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
	select {
	case ev := <-ch:
		t.Fatalf("expected a single event, got extra %+v", ev)
	case <-time.After(3 * settle):
	}
}
