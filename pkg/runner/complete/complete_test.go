package complete

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/task"
)

func TestCompleteTogglesByPrefix(t *testing.T) {
	ctx := context.Background()
	svc := app.New(nil, app.WithIDs(func() string { return "abcdef0123" }))
	svc.Create(ctx, "A", "")

	var buf bytes.Buffer
	c := &Complete{IDs: []string{"abcd"}, Service: svc, Out: &buf}
	if err := c.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := svc.Get("abcdef0123"); !got.IsCompleted {
		t.Fatalf("not completed")
	}
	c.IDs = []string{"nope"}
	if err := c.Do(ctx); !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
