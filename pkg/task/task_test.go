package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := New("id", title, "", time.Now(), 1)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("New(%q) err = %v, want ErrEmptyTitle", title, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "title" {
			t.Fatalf("expected title ValidationError, got %#v", err)
		}
	}
}

func TestNewTrims(t *testing.T) {
	tk, err := New("id", "  buy milk ", " 2l \n", time.Now(), 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tk.Title != "buy milk" || tk.Memo != "2l" || tk.Order != 3 {
		t.Fatalf("unexpected task %+v", tk)
	}
	if tk.IsCompleted || tk.IsDeleted || tk.IsArchived || tk.CompletedAt != nil {
		t.Fatalf("flags should start false: %+v", tk)
	}
}

func TestApplyLeavesTaskOnError(t *testing.T) {
	tk, _ := New("id", "a", "m", time.Now(), 1)
	empty := " "
	memo := "new"
	if err := tk.Apply(Fields{Title: &empty, Memo: &memo}); err == nil {
		t.Fatalf("expected error")
	}
	if tk.Title != "a" || tk.Memo != "m" {
		t.Fatalf("task changed on error: %+v", tk)
	}
	if err := tk.Apply(Fields{Memo: &memo}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if tk.Memo != "new" || tk.Title != "a" {
		t.Fatalf("partial update failed: %+v", tk)
	}
}

func TestSetCompleted(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	tk := &Task{}
	tk.SetCompleted(true, now)
	if !tk.IsCompleted || tk.CompletedAt == nil || !tk.CompletedAt.Equal(now) {
		t.Fatalf("unexpected %+v", tk)
	}
	tk.SetCompleted(false, now)
	if tk.IsCompleted || tk.CompletedAt != nil {
		t.Fatalf("unexpected %+v", tk)
	}
}

func TestCloneIsDeep(t *testing.T) {
	tk := &Task{ID: "a", CompletedAt: &Timestamp{Time: time.Unix(10, 0)}}
	c := tk.Clone()
	c.CompletedAt.Time = time.Unix(20, 0)
	if tk.CompletedAt.Unix() != 10 {
		t.Fatalf("clone shares CompletedAt")
	}
}

func TestJSONShape(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	tk := &Task{ID: "x", Title: "t", CreatedAt: Timestamp{Time: created}, Order: 1}
	b, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"x","title":"t","memo":"","createdAt":"2024-01-02T03:04:05.000000006Z","completedAt":null,"isCompleted":false,"isDeleted":false,"isArchived":false,"order":1}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.CreatedAt.Equal(created) || back.CompletedAt != nil {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestNotFoundIs(t *testing.T) {
	var err error = &NotFoundError{ID: "nope"}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound")
	}
}
