package gesture

import (
	"math"
	"time"
)

type State int

const (
	Idle State = iota
	Tracking
	Swiping
	Scrolling
	Dragging
)

var stateNames = []string{"idle", "tracking", "swiping", "scrolling", "dragging"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Mapper holds at most one pointer sequence at a time.
type Mapper struct {
	th             Thresholds
	locator        Locator
	reorderEnabled func() bool

	state  State
	taskID string
	start  Event
	last   Event
	// armable is fixed at Down: a long-press can only become a drag if
	// reordering was enabled when the press began.
	armable bool
	target  string
}

// Option customises a Mapper.
type Option func(*Mapper)

func WithThresholds(th Thresholds) Option {
	return func(m *Mapper) { m.th = th }
}

// WithReorderGate sets the predicate consulted on each Down to decide
// whether a long-press may start a drag.
func WithReorderGate(enabled func() bool) Option {
	return func(m *Mapper) { m.reorderEnabled = enabled }
}

func NewMapper(locator Locator, opts ...Option) *Mapper {
	m := &Mapper{
		th:             DefaultThresholds(),
		locator:        locator,
		reorderEnabled: func() bool { return true },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mapper) State() State { return m.state }

// Active is the task of the gesture in progress, if any.
func (m *Mapper) Active() string { return m.taskID }

// Offset is the pointer displacement since Down, used for swipe feedback.
func (m *Mapper) Offset() (dx, dy float64) {
	if m.state == Idle {
		return 0, 0
	}
	return m.last.X - m.start.X, m.last.Y - m.start.Y
}

// Handle advances the state machine and returns any resolved intents.
func (m *Mapper) Handle(ev Event) []Intent {
	switch ev.Kind {
	case Down:
		return m.down(ev)
	case Move:
		return m.move(ev)
	case Up:
		return m.up(ev)
	case Cancel:
		return m.cancel()
	case Tick:
		if m.state == Tracking {
			return m.maybeArm(ev)
		}
	}
	return nil
}

func (m *Mapper) down(ev Event) []Intent {
	// A new press always supersedes whatever was in flight.
	out := m.cancel()

	if ev.TaskID == "" {
		return out
	}
	switch ev.Region {
	case RegionCheckbox:
		return append(out, Intent{Kind: ToggleCompletion, TaskID: ev.TaskID})
	case RegionMark:
		return append(out, Intent{Kind: ToggleMark, TaskID: ev.TaskID})
	}

	m.state = Tracking
	m.taskID = ev.TaskID
	m.start = ev
	m.last = ev
	m.armable = m.reorderEnabled == nil || m.reorderEnabled()
	return out
}

func (m *Mapper) move(ev Event) []Intent {
	switch m.state {
	case Tracking:
		out := m.maybeArm(ev)
		m.last = ev
		if m.state == Dragging {
			return append(out, m.dragTo(ev)...)
		}
		dx, dy := ev.X-m.start.X, ev.Y-m.start.Y
		if distance(dx, dy) > m.th.TapSlop {
			if math.Abs(dx) > math.Abs(dy) {
				m.state = Swiping
			} else {
				m.state = Scrolling
			}
		}
		return out
	case Swiping, Scrolling:
		m.last = ev
	case Dragging:
		m.last = ev
		return m.dragTo(ev)
	}
	return nil
}

func (m *Mapper) up(ev Event) []Intent {
	var out []Intent
	if m.state == Tracking {
		out = m.maybeArm(ev)
	}
	m.last = ev
	id := m.taskID

	switch m.state {
	case Tracking:
		held := ev.At.Sub(m.start.At)
		if held <= m.th.TapMaxDuration && distance(ev.X-m.start.X, ev.Y-m.start.Y) <= m.th.TapSlop {
			out = append(out, Intent{Kind: Tap, TaskID: id})
		}
	case Swiping:
		if m.isSwipe(ev) {
			out = append(out, Intent{Kind: SwipeArchive, TaskID: id, Delay: m.th.ArchiveDelay})
		}
	case Dragging:
		m.dragTo(ev)
		if m.target != "" && m.target != id {
			out = append(out, Intent{Kind: Reorder, TaskID: id, TargetID: m.target})
		} else {
			out = append(out, Intent{Kind: DragCancel, TaskID: id})
		}
	}
	m.reset()
	return out
}

func (m *Mapper) cancel() []Intent {
	var out []Intent
	if m.state == Dragging {
		out = append(out, Intent{Kind: DragCancel, TaskID: m.taskID})
	}
	m.reset()
	return out
}

// maybeArm turns a still press into a drag once it has been held long
// enough. Movement beyond the slop rules a long-press out for good because
// the state has already left Tracking.
func (m *Mapper) maybeArm(ev Event) []Intent {
	if !m.armable || ev.At.Sub(m.start.At) < m.th.LongPress {
		return nil
	}
	m.state = Dragging
	m.target = ""
	return []Intent{{Kind: DragStart, TaskID: m.taskID}}
}

func (m *Mapper) dragTo(ev Event) []Intent {
	if m.locator == nil {
		return nil
	}
	id, ok := m.locator.TaskAt(ev.X, ev.Y)
	if !ok || id == m.target {
		return nil
	}
	m.target = id
	return []Intent{{Kind: DragOver, TaskID: m.taskID, TargetID: id}}
}

func (m *Mapper) isSwipe(ev Event) bool {
	dx, dy := ev.X-m.start.X, ev.Y-m.start.Y
	if dx > -m.th.SwipeMinDistance || math.Abs(dy) >= m.th.SwipeMaxDrift {
		return false
	}
	elapsed := float64(ev.At.Sub(m.start.At)) / float64(time.Millisecond)
	if elapsed <= 0 {
		return true
	}
	return math.Abs(dx)/elapsed > m.th.SwipeMinVelocity
}

func (m *Mapper) reset() {
	m.state = Idle
	m.taskID = ""
	m.target = ""
	m.armable = false
	m.start = Event{}
	m.last = Event{}
}
