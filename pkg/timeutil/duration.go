// Package timeutil parses the human-friendly windows used by reports.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

type unit struct {
	label   string
	aliases []string
	value   time.Duration
}

// units is ordered largest first so FormatWindow can walk it greedily.
var units = []unit{
	{"w", []string{"wk", "wks", "week", "weeks"}, week},
	{"d", []string{"day", "days"}, day},
	{"h", []string{"hr", "hrs", "hour", "hours"}, time.Hour},
	{"m", []string{"min", "mins", "minute", "minutes"}, time.Minute},
	{"s", []string{"sec", "secs", "second", "seconds"}, time.Second},
}

var segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)\s*`)

func lookup(name string) (time.Duration, bool) {
	for _, u := range units {
		if u.label == name {
			return u.value, true
		}
		for _, a := range u.aliases {
			if a == name {
				return u.value, true
			}
		}
	}
	return 0, false
}

// Window is a parsed look-back period.
type Window struct {
	Duration time.Duration
	// Label is the canonical form, e.g. "1w2d".
	Label string
}

// Bounds returns the window ending at now.
func (w Window) Bounds(now time.Time) (since, until time.Time) {
	return now.Add(-w.Duration), now
}

// ParseWindow accepts strings like "1w", "3 days" or "1w2d6h". An empty
// input means DefaultWindow.
func ParseWindow(input string) (Window, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return Window{}, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Window{}, fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		base, ok := lookup(m[2])
		if !ok {
			return Window{}, fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * base
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return Window{}, fmt.Errorf("duration must be greater than zero")
	}
	return Window{Duration: total, Label: FormatWindow(total)}, nil
}

// FormatWindow renders d with w/d/h/m/s tokens.
func FormatWindow(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		count := d / u.value
		d -= count * u.value
		fmt.Fprintf(&b, "%d%s", count, u.label)
	}
	return b.String()
}
