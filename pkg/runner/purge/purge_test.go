package purge

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/prompt"
)

func TestPurge(t *testing.T) {
	ctx := context.Background()
	svc := app.New(nil)
	a, _ := svc.Create(ctx, "A", "")
	svc.Create(ctx, "B", "")
	svc.ToggleDeletionMark(ctx, a.ID)

	var buf bytes.Buffer
	p := &Purge{Prompter: prompt.Never(&buf), Service: svc, Out: &buf}
	if err := p.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if len(svc.Tasks()) != 2 {
		t.Fatalf("declined purge removed tasks")
	}

	p.Prompter = prompt.Always(&buf)
	if err := p.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if len(svc.Tasks()) != 1 || !strings.Contains(buf.String(), "Deleted 1 task(s).") {
		t.Fatalf("purge failed: %q", buf.String())
	}

	buf.Reset()
	p.Do(ctx)
	if !strings.Contains(buf.String(), "No tasks marked for deletion.") {
		t.Fatalf("expected notice, got %q", buf.String())
	}
}
