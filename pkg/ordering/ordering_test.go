package ordering

import (
	"testing"

	"tableflip.dev/mytodo/pkg/task"
)

func build(ids ...string) []*task.Task {
	var tasks []*task.Task
	for _, id := range ids {
		tasks = append(tasks, &task.Task{ID: id, Title: id, Order: NextOrder(tasks)})
	}
	return tasks
}

func orders(tasks []*task.Task) map[string]int {
	m := make(map[string]int, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t.Order
	}
	return m
}

func TestNextOrder(t *testing.T) {
	if got := NextOrder(nil); got != 1 {
		t.Fatalf("NextOrder(nil) = %d", got)
	}
	tasks := build("a", "b")
	tasks = append(tasks, &task.Task{ID: "z", Order: 9, IsArchived: true})
	if got := NextOrder(tasks); got != 3 {
		t.Fatalf("archived orders must not count, got %d", got)
	}
}

func TestReorder(t *testing.T) {
	tests := map[string]struct {
		moved  string
		target int
		want   map[string]int
		ok     bool
	}{
		"down": {
			moved: "a", target: 3, ok: true,
			want: map[string]int{"a": 3, "b": 1, "c": 2, "d": 4},
		},
		"up": {
			moved: "d", target: 2, ok: true,
			want: map[string]int{"a": 1, "b": 3, "c": 4, "d": 2},
		},
		"same": {
			moved: "b", target: 2,
			want: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
		},
		"unknown": {
			moved: "nope", target: 1,
			want: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
		},
		"out of range": {
			moved: "a", target: 5,
			want: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
		},
		"zero": {
			moved: "b", target: 0,
			want: map[string]int{"a": 1, "b": 2, "c": 3, "d": 4},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tasks := build("a", "b", "c", "d")
			if got := Reorder(tasks, tc.moved, tc.target); got != tc.ok {
				t.Fatalf("Reorder = %v, want %v", got, tc.ok)
			}
			got := orders(tasks)
			for id, o := range tc.want {
				if got[id] != o {
					t.Fatalf("%s: order %d, want %d (all %v)", id, got[id], o, got)
				}
			}
			if !Dense(tasks) {
				t.Fatalf("orders not dense: %v", got)
			}
		})
	}
}

func TestReorderIgnoresArchived(t *testing.T) {
	tasks := build("a", "b", "c")
	tasks[1].IsArchived = true
	if Reorder(tasks, "b", 1) {
		t.Fatalf("archived task must not move")
	}
	// b keeps its inert order 2 while a moves past it.
	if !Reorder(tasks, "a", 3) {
		t.Fatalf("expected move")
	}
	got := orders(tasks)
	if got["a"] != 3 || got["b"] != 2 || got["c"] != 2 {
		t.Fatalf("unexpected orders %v", got)
	}
}

func TestReorderRoundTrip(t *testing.T) {
	for from := 1; from <= 5; from++ {
		for to := 1; to <= 5; to++ {
			tasks := build("a", "b", "c", "d", "e")
			before := orders(tasks)
			id := tasks[from-1].ID
			Reorder(tasks, id, to)
			Reorder(tasks, id, from)
			after := orders(tasks)
			for k, v := range before {
				if after[k] != v {
					t.Fatalf("from %d to %d: %s is %d, want %d", from, to, k, after[k], v)
				}
			}
		}
	}
}

func TestDense(t *testing.T) {
	tasks := build("a", "b", "c")
	if !Dense(tasks) {
		t.Fatalf("expected dense")
	}
	tasks[0].Order = 3
	if Dense(tasks) {
		t.Fatalf("duplicate order reported dense")
	}
}
