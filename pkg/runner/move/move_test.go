package move

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/view"
)

func TestMove(t *testing.T) {
	ctx := context.Background()
	n := 0
	svc := app.New(nil, app.WithIDs(func() string { n++; return fmt.Sprintf("task-%04d", n) }))
	for _, title := range []string{"A", "B", "C"} {
		svc.Create(ctx, title, "")
	}

	var buf bytes.Buffer
	m := &Move{ID: "task-0001", To: 3, Service: svc, Out: &buf}
	if err := m.Do(ctx); err != nil {
		t.Fatal(err)
	}
	active := svc.Active(view.SortCreated)
	if active[0].Title != "B" || active[2].Title != "A" {
		t.Fatalf("unexpected order %v %v %v", active[0].Title, active[1].Title, active[2].Title)
	}

	m = &Move{ID: "task-0001", Onto: "task-0002", Service: svc, Out: &buf}
	if err := m.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := svc.Get("task-0001"); got.Order != 1 {
		t.Fatalf("onto move: order %d", got.Order)
	}

	m.Sort = view.SortTitle
	if err := m.Do(ctx); err == nil {
		t.Fatalf("expected error outside created order")
	}
}
