// Package gesture classifies pointer sequences over the task list into
// intents. It is driven entirely by timestamped events so it never needs a
// timer of its own; renderers that want a long-press to arm while the
// pointer is still send Tick events.
package gesture

import (
	"fmt"
	"math"
	"time"
)

type Region int

const (
	// RegionBody is the row itself, where tap, swipe and long-press apply.
	RegionBody Region = iota
	// RegionCheckbox toggles completion immediately.
	RegionCheckbox
	// RegionMark toggles the deletion mark immediately.
	RegionMark
)

type Kind int

const (
	Down Kind = iota
	Move
	Up
	Cancel
	Tick
)

var kindNames = []string{"down", "move", "up", "cancel", "tick"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Event is one pointer sample. TaskID and Region are only read on Down.
type Event struct {
	Kind   Kind
	At     time.Time
	X, Y   float64
	TaskID string
	Region Region
}

type IntentKind int

const (
	Tap IntentKind = iota
	ToggleCompletion
	ToggleMark
	SwipeArchive
	DragStart
	DragOver
	Reorder
	DragCancel
)

var intentNames = []string{"tap", "toggle-completion", "toggle-mark", "swipe-archive", "drag-start", "drag-over", "reorder", "drag-cancel"}

func (k IntentKind) String() string {
	if k < 0 || int(k) >= len(intentNames) {
		return fmt.Sprintf("IntentKind(%d)", int(k))
	}
	return intentNames[k]
}

// Intent is what a gesture resolved to. TargetID is set for DragOver and
// Reorder; Delay for SwipeArchive, which should fire once the row's exit
// animation has run.
type Intent struct {
	Kind     IntentKind
	TaskID   string
	TargetID string
	Delay    time.Duration
}

func (i Intent) String() string {
	switch {
	case i.TargetID != "":
		return fmt.Sprintf("%s(%s->%s)", i.Kind, i.TaskID, i.TargetID)
	default:
		return fmt.Sprintf("%s(%s)", i.Kind, i.TaskID)
	}
}

// Thresholds tune the classifier. Distances are in the renderer's units
// (pixels for the web, cells for the terminal).
type Thresholds struct {
	TapSlop          float64
	TapMaxDuration   time.Duration
	LongPress        time.Duration
	SwipeMinDistance float64
	SwipeMaxDrift    float64
	// SwipeMinVelocity is distance per millisecond.
	SwipeMinVelocity float64
	ArchiveDelay     time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		TapSlop:          10,
		TapMaxDuration:   300 * time.Millisecond,
		LongPress:        500 * time.Millisecond,
		SwipeMinDistance: 50,
		SwipeMaxDrift:    100,
		SwipeMinVelocity: 0.3,
		ArchiveDelay:     300 * time.Millisecond,
	}
}

// Locator resolves a point to the task row under it.
type Locator interface {
	TaskAt(x, y float64) (id string, ok bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(x, y float64) (string, bool)

func (f LocatorFunc) TaskAt(x, y float64) (string, bool) { return f(x, y) }

func distance(dx, dy float64) float64 {
	return math.Hypot(dx, dy)
}
