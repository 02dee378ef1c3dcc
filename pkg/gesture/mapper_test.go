package gesture

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

// rows places task ids 50 units apart vertically.
func rows(ids ...string) Locator {
	return LocatorFunc(func(x, y float64) (string, bool) {
		i := int(y / 50)
		if y < 0 || i >= len(ids) {
			return "", false
		}
		return ids[i], true
	})
}

func run(m *Mapper, events ...Event) []Intent {
	var out []Intent
	for _, ev := range events {
		out = append(out, m.Handle(ev)...)
	}
	return out
}

func kinds(intents []Intent) []IntentKind {
	out := make([]IntentKind, len(intents))
	for i, in := range intents {
		out[i] = in.Kind
	}
	return out
}

func sameKinds(a []Intent, want ...IntentKind) bool {
	got := kinds(a)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestScripts(t *testing.T) {
	tests := map[string]struct {
		gate   bool
		events []Event
		want   []IntentKind
	}{
		"tap": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(50), X: 103, Y: 12},
				{Kind: Up, At: at(120), X: 103, Y: 12},
			},
			want: []IntentKind{Tap},
		},
		"slow still release is not a tap": {
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Up, At: at(450), X: 100, Y: 10},
			},
			want: []IntentKind{},
		},
		"left swipe archives": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 200, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(40), X: 170, Y: 12},
				{Kind: Move, At: at(80), X: 130, Y: 14},
				{Kind: Up, At: at(100), X: 120, Y: 14},
			},
			want: []IntentKind{SwipeArchive},
		},
		"slow left drag does not archive": {
			events: []Event{
				{Kind: Down, At: at(0), X: 200, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(100), X: 180, Y: 10},
				{Kind: Up, At: at(1000), X: 120, Y: 10},
			},
			want: []IntentKind{},
		},
		"right swipe does nothing": {
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(20), X: 160, Y: 10},
				{Kind: Up, At: at(60), X: 200, Y: 10},
			},
			want: []IntentKind{},
		},
		"vertical scroll does nothing": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(30), X: 95, Y: 60},
				{Kind: Tick, At: at(600)},
				{Kind: Up, At: at(700), X: 40, Y: 140},
			},
			want: []IntentKind{},
		},
		"long press then drop reorders": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Tick, At: at(300)},
				{Kind: Tick, At: at(520)},
				{Kind: Move, At: at(600), X: 100, Y: 60},
				{Kind: Move, At: at(650), X: 100, Y: 110},
				{Kind: Up, At: at(700), X: 100, Y: 120},
			},
			want: []IntentKind{DragStart, DragOver, DragOver, Reorder},
		},
		"long press dropped on itself cancels": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Tick, At: at(500)},
				{Kind: Up, At: at(900), X: 100, Y: 12},
			},
			want: []IntentKind{DragStart, DragCancel},
		},
		"long press not armed when gate closed": {
			gate: false,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Tick, At: at(800)},
				{Kind: Move, At: at(900), X: 100, Y: 110},
				{Kind: Up, At: at(950), X: 100, Y: 110},
			},
			want: []IntentKind{},
		},
		"swipe suppresses long press": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 200, Y: 10, TaskID: "a"},
				{Kind: Move, At: at(50), X: 150, Y: 10},
				{Kind: Tick, At: at(600)},
				{Kind: Up, At: at(650), X: 100, Y: 10},
			},
			want: []IntentKind{},
		},
		"checkbox is immediate": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 5, Y: 10, TaskID: "a", Region: RegionCheckbox},
				{Kind: Tick, At: at(900)},
				{Kind: Up, At: at(950), X: 5, Y: 10},
			},
			want: []IntentKind{ToggleCompletion},
		},
		"mark box is immediate": {
			events: []Event{
				{Kind: Down, At: at(0), X: 5, Y: 10, TaskID: "a", Region: RegionMark},
				{Kind: Up, At: at(20), X: 5, Y: 10},
			},
			want: []IntentKind{ToggleMark},
		},
		"cancel while dragging": {
			gate: true,
			events: []Event{
				{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"},
				{Kind: Tick, At: at(500)},
				{Kind: Cancel, At: at(510)},
				{Kind: Up, At: at(600), X: 100, Y: 10},
			},
			want: []IntentKind{DragStart, DragCancel},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gate := tc.gate
			m := NewMapper(rows("a", "b", "c"), WithReorderGate(func() bool { return gate }))
			got := run(m, tc.events...)
			if !sameKinds(got, tc.want...) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if m.State() != Idle {
				t.Fatalf("mapper left in %s", m.State())
			}
		})
	}
}

func TestReorderTargets(t *testing.T) {
	m := NewMapper(rows("a", "b", "c"))
	got := run(m,
		Event{Kind: Down, At: at(0), X: 10, Y: 10, TaskID: "a"},
		Event{Kind: Move, At: at(510), X: 10, Y: 11},
		Event{Kind: Move, At: at(600), X: 10, Y: 130},
		Event{Kind: Up, At: at(650), X: 10, Y: 130},
	)
	last := got[len(got)-1]
	if last.Kind != Reorder || last.TaskID != "a" || last.TargetID != "c" {
		t.Fatalf("unexpected final intent %v (all %v)", last, got)
	}
}

func TestSwipeCarriesDelay(t *testing.T) {
	m := NewMapper(rows("a"))
	got := run(m,
		Event{Kind: Down, At: at(0), X: 300, Y: 10, TaskID: "a"},
		Event{Kind: Move, At: at(30), X: 240, Y: 10},
		Event{Kind: Up, At: at(60), X: 200, Y: 10},
	)
	if len(got) != 1 || got[0].Delay != 300*time.Millisecond || got[0].TaskID != "a" {
		t.Fatalf("unexpected %v", got)
	}
}

func TestNewDownCancelsPrior(t *testing.T) {
	m := NewMapper(rows("a", "b"))
	got := run(m,
		Event{Kind: Down, At: at(0), X: 10, Y: 10, TaskID: "a"},
		Event{Kind: Tick, At: at(500)},
		Event{Kind: Down, At: at(600), X: 10, Y: 60, TaskID: "b"},
		Event{Kind: Up, At: at(650), X: 10, Y: 60},
	)
	if !sameKinds(got, DragStart, DragCancel, Tap) {
		t.Fatalf("got %v", got)
	}
	if got[1].TaskID != "a" || got[2].TaskID != "b" {
		t.Fatalf("wrong task ids %v", got)
	}
}

func TestGateReadAtDown(t *testing.T) {
	enabled := true
	m := NewMapper(rows("a", "b"), WithReorderGate(func() bool { return enabled }))
	m.Handle(Event{Kind: Down, At: at(0), X: 10, Y: 10, TaskID: "a"})
	enabled = false
	got := m.Handle(Event{Kind: Tick, At: at(500)})
	if !sameKinds(got, DragStart) {
		t.Fatalf("gate should be captured at press time, got %v", got)
	}
}

func TestOffset(t *testing.T) {
	m := NewMapper(nil)
	m.Handle(Event{Kind: Down, At: at(0), X: 100, Y: 10, TaskID: "a"})
	m.Handle(Event{Kind: Move, At: at(10), X: 70, Y: 12})
	if dx, dy := m.Offset(); dx != -30 || dy != 2 {
		t.Fatalf("Offset = %v,%v", dx, dy)
	}
}
