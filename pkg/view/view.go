// Package view derives the lists a renderer shows from the task collection.
// Nothing here mutates the tasks it is given.
package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/mytodo/pkg/task"
)

// SortMode selects the ordering of the active list. It is transient UI
// state and never persisted with the tasks.
type SortMode int

const (
	SortCreated SortMode = iota
	SortTitle
	SortCompleted
)

var modeNames = []string{"created", "title", "completed"}

func (m SortMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles created, title, completed, created.
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(modeNames))
}

// Reorderable reports whether manual reorder applies in this mode.
func (m SortMode) Reorderable() bool {
	return m == SortCreated
}

func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortCreated, nil
	}
	for i, name := range modeNames {
		if name == s {
			return SortMode(i), nil
		}
	}
	return SortCreated, fmt.Errorf("unknown sort mode %q (want one of %s)", s, strings.Join(modeNames, ", "))
}

// SortModes lists every mode name, for flag help and enums.
func SortModes() []string {
	return append([]string(nil), modeNames...)
}

// Option customises a projection.
type Option func(*options)

// WithLocale sets the collation used by the title sort. Unknown tags fall
// back to the root collation.
func WithLocale(tag string) Option {
	return func(o *options) {
		if t, err := language.Parse(tag); err == nil {
			o.locale = t
		}
	}
}

type options struct {
	locale language.Tag
}

func buildOptions(opts []Option) *options {
	o := &options{locale: language.Und}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Active returns copies of the non-archived tasks sorted by mode.
func Active(tasks []*task.Task, mode SortMode, opts ...Option) []*task.Task {
	o := buildOptions(opts)
	out := filter(tasks, false)

	byOrder := func(i, j int) bool { return out[i].Order < out[j].Order }
	switch mode {
	case SortTitle:
		c := collate.New(o.locale)
		sort.SliceStable(out, func(i, j int) bool {
			if cmp := c.CompareString(out[i].Title, out[j].Title); cmp != 0 {
				return cmp < 0
			}
			return byOrder(i, j)
		})
	case SortCompleted:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].IsCompleted != out[j].IsCompleted {
				return !out[i].IsCompleted
			}
			return byOrder(i, j)
		})
	default:
		sort.SliceStable(out, byOrder)
	}
	return out
}

// Archived returns copies of the archived tasks, most recently created first.
func Archived(tasks []*task.Task) []*task.Task {
	out := filter(tasks, true)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	return out
}

// Projection is everything a renderer needs for one frame.
type Projection struct {
	Mode     SortMode
	Active   []*task.Task
	Archived []*task.Task
}

func Project(tasks []*task.Task, mode SortMode, opts ...Option) Projection {
	return Projection{
		Mode:     mode,
		Active:   Active(tasks, mode, opts...),
		Archived: Archived(tasks),
	}
}

// Counts summarises a projection for status lines.
func (p Projection) Counts() (active, completed, marked, archived int) {
	for _, t := range p.Active {
		active++
		if t.IsCompleted {
			completed++
		}
		if t.IsDeleted {
			marked++
		}
	}
	return active, completed, marked, len(p.Archived)
}

func filter(tasks []*task.Task, archived bool) []*task.Task {
	out := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil && t.IsArchived == archived {
			out = append(out, t.Clone())
		}
	}
	return out
}
