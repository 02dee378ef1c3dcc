package add

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/task"
)

func TestAdd(t *testing.T) {
	svc := app.New(nil)
	var buf bytes.Buffer
	a := &Add{Title: "Buy milk", Service: svc, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Buy milk") {
		t.Fatalf("output %q", buf.String())
	}
	a.Title = " "
	if err := a.Do(context.Background()); !errors.Is(err, task.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}
