package glyph

import (
	"fmt"

	"tableflip.dev/mytodo/pkg/task"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	faintCode  = 2
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Faint(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, faintCode, in, escape, resetCode)
}

var (
	Open       = Glyph{Key: " ", Symbol: "☐", Meaning: "open task"}
	Done       = Glyph{Key: "x", Symbol: "☑", Meaning: "completed task"}
	Unmarked   = Glyph{Key: " ", Symbol: "·", Meaning: "not marked"}
	Marked     = Glyph{Key: "d", Symbol: "✘", Meaning: "marked for deletion"}
	Archived   = Glyph{Key: "a", Symbol: "⌂", Meaning: "archived"}
	Unfinished = "XXXX/XX/XX"
)

func DefaultGlyphs() []Glyph {
	return []Glyph{Open, Done, Unmarked, Marked, Archived}
}

// Check is the completion box for t.
func Check(t *task.Task) Glyph {
	if t.IsCompleted {
		return Done
	}
	return Open
}

// Mark is the deletion box for t.
func Mark(t *task.Task) Glyph {
	if t.IsDeleted {
		return Marked
	}
	return Unmarked
}

func (g Glyph) String() string {
	return g.Symbol
}
