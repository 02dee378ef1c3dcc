package get

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/view"
)

func TestGetSortsAndSplits(t *testing.T) {
	ctx := context.Background()
	svc := app.New(nil)
	svc.Create(ctx, "Banana", "")
	svc.Create(ctx, "Apple", "")
	old, _ := svc.Create(ctx, "Old", "")
	svc.Archive(ctx, old.ID)

	var buf bytes.Buffer
	g := &Get{Sort: view.SortTitle, Which: WhichAll, Service: svc, Out: &buf}
	if err := g.Do(ctx); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "Apple") > strings.Index(out, "Banana") {
		t.Fatalf("title sort not applied:\n%s", out)
	}
	if !strings.Contains(out, "Tasks (title)") || !strings.Contains(out, "Archive") || !strings.Contains(out, "Old") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	buf.Reset()
	g.Which = WhichActive
	g.Do(ctx)
	if strings.Contains(buf.String(), "Old") {
		t.Fatalf("archived task in active list:\n%s", buf.String())
	}
}
