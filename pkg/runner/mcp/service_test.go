package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/task"
)

func newService() *Service {
	n := 0
	return NewService(app.New(nil, app.WithIDs(func() string {
		n++
		return fmt.Sprintf("mcp-%04d", n)
	})))
}

func TestServiceCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	dto, err := svc.Create(ctx, "Write report", "for friday")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if dto.ID == "" || dto.Order != 1 || dto.Check != "☐" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	got, err := svc.Get(ctx, "mcp-")
	if err != nil || got.Memo != "for friday" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Create(ctx, "", ""); !errors.Is(err, task.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestServiceMutateAndList(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, _ := svc.Create(ctx, "A", "")
	b, _ := svc.Create(ctx, "B", "")

	done, err := svc.Mutate(ctx, a.ID, app.OpToggleCompletion)
	if err != nil || !done.IsCompleted || done.CompleteISO == "" {
		t.Fatalf("toggle = %+v, %v", done, err)
	}
	list, err := svc.List(ctx, "active", "completed", 0)
	if err != nil || list.Tasks[0].ID != b.ID {
		t.Fatalf("completed sort = %+v, %v", list, err)
	}
	if _, err := svc.Mutate(ctx, b.ID, app.OpArchive); err != nil {
		t.Fatal(err)
	}
	archive, _ := svc.List(ctx, "archive", "", 0)
	if archive.Count != 1 || archive.Tasks[0].ID != b.ID {
		t.Fatalf("archive = %+v", archive)
	}
	restored, err := svc.Restore(ctx, b.ID)
	if err != nil || restored.ID == b.ID || restored.Title != "B" {
		t.Fatalf("restore = %+v, %v", restored, err)
	}
	if _, err := svc.Restore(ctx, a.ID); err == nil {
		t.Fatalf("restoring an active task should fail")
	}
	limited, _ := svc.List(ctx, "active", "", 1)
	if limited.Count != 2 || len(limited.Tasks) != 1 {
		t.Fatalf("limit = %+v", limited)
	}
	if _, err := svc.List(ctx, "everything", "", 0); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestServiceReorder(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, _ := svc.Create(ctx, "A", "")
	svc.Create(ctx, "B", "")
	list, err := svc.Reorder(ctx, a.ID, 2)
	if err != nil || list.Tasks[1].ID != a.ID {
		t.Fatalf("reorder = %+v, %v", list, err)
	}
	if _, err := svc.Reorder(ctx, a.ID, 9); err == nil {
		t.Fatalf("out of range move should report an error")
	}
}

func TestServiceBulkNeedsConfirm(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, _ := svc.Create(ctx, "A", "")
	svc.Mutate(ctx, a.ID, app.OpToggleMark)

	if _, _, err := svc.DeleteMarked(ctx, false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	n, _, err := svc.DeleteMarked(ctx, true)
	if err != nil || n != 1 {
		t.Fatalf("DeleteMarked = %d, %v", n, err)
	}
	n, notice, err := svc.ClearArchive(ctx, true)
	if err != nil || n != 0 || notice != "Archive is already empty." {
		t.Fatalf("ClearArchive = %d, %q, %v", n, notice, err)
	}
}

func TestNewServerRegisters(t *testing.T) {
	if srv := NewServer("mytodo", "test", app.New(nil)); srv == nil {
		t.Fatalf("nil server")
	}
}

func TestRunnerTransportAndEndpoint(t *testing.T) {
	for in, want := range map[string]Transport{"": TransportStdio, "STDIO": TransportStdio, " http ": TransportHTTP} {
		if got, err := ParseTransport(in); err != nil || got != want {
			t.Errorf("ParseTransport(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTransport("carrier-pigeon"); err == nil {
		t.Errorf("expected an error for an unknown transport")
	}
	if got := (Runner{Path: "tools"}).Endpoint(); got != "/tools" {
		t.Errorf("Endpoint() = %q", got)
	}
	if got := (Runner{}).Endpoint(); got != DefaultPath {
		t.Errorf("Endpoint() = %q", got)
	}
}
