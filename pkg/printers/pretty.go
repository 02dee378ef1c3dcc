package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"tableflip.dev/mytodo/pkg/glyph"
	"tableflip.dev/mytodo/pkg/task"
)

// ShortID is how many id characters are shown and accepted as a prefix.
const ShortID = 8

type PrettyPrint struct {
	ShowID bool
	// Out defaults to stdout.
	Out io.Writer
	// Width defaults to the terminal width, or 80.
	Width int
	// Markdown renders memos with glamour.
	Markdown bool
}

var (
	spacing = strings.Repeat(" ", ShortID+2)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return os.Stdout
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func (pp *PrettyPrint) NewLine() {
	fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(t *task.Task) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	id := Short(t.ID)
	_, _ = y.Fprint(pp.out(), id)
	_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(id)))
}

// Tasks prints active tasks, one per line, in the order given.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}

	plain := color.New()
	done := color.New(color.Faint, color.CrossedOut)
	marked := color.New(color.FgRed)
	memo := color.New(color.Faint, color.Italic)

	avail := pp.width() - 8
	if pp.ShowID {
		avail -= len(spacing)
	}
	for _, t := range tasks {
		pp.id(t)
		box := glyph.Check(t).String()
		mark := glyph.Mark(t).String()
		title := truncate.StringWithTail(t.Title, uint(max(avail, 10)), "…")

		_, _ = plain.Fprintf(pp.out(), "%3d %s ", t.Order, box)
		if t.IsDeleted {
			_, _ = marked.Fprint(pp.out(), mark)
		} else {
			_, _ = plain.Fprint(pp.out(), mark)
		}
		if t.IsCompleted {
			_, _ = done.Fprintf(pp.out(), " %s", title)
		} else {
			_, _ = plain.Fprintf(pp.out(), " %s", title)
		}
		if first := firstLine(t.Memo); first != "" && avail-len(title) > 6 {
			_, _ = memo.Fprintf(pp.out(), "  %s", truncate.StringWithTail(first, uint(avail-len(title)-2), "…"))
		}
		_, _ = plain.Fprintln(pp.out())
	}
	_, _ = plain.Fprintln(pp.out())
}

// Archive prints archived tasks as a table with their date range.
func (pp *PrettyPrint) Archive(tasks ...*task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	table := uitable.New()
	table.MaxColWidth = uint(max(pp.width()/2, 20))
	table.Wrap = true
	if pp.ShowID {
		table.AddRow("ID", "TASK", "CREATED 〜 COMPLETED")
	} else {
		table.AddRow("TASK", "CREATED 〜 COMPLETED")
	}
	for _, t := range tasks {
		if pp.ShowID {
			table.AddRow(Short(t.ID), t.Title, DateRange(t))
		} else {
			table.AddRow(t.Title, DateRange(t))
		}
	}
	fmt.Fprintln(pp.out(), table)
	fmt.Fprintln(pp.out())
}

// Detail prints a single task with its memo and timestamps.
func (pp *PrettyPrint) Detail(t *task.Task) error {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = b.Fprintf(pp.out(), "%s %s\n", glyph.Check(t), t.Title)
	_, _ = f.Fprintf(pp.out(), "id        %s\n", t.ID)
	_, _ = f.Fprintf(pp.out(), "created   %s\n", t.CreatedAt)
	if t.CompletedAt != nil {
		_, _ = f.Fprintf(pp.out(), "completed %s\n", *t.CompletedAt)
	}
	switch {
	case t.IsArchived:
		_, _ = f.Fprintln(pp.out(), "archived")
	case t.IsDeleted:
		_, _ = f.Fprintln(pp.out(), "marked for deletion")
	}
	if t.Memo == "" {
		return nil
	}
	fmt.Fprintln(pp.out())
	if !pp.Markdown {
		fmt.Fprintln(pp.out(), wordwrap.String(t.Memo, pp.width()))
		return nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(pp.width()),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(t.Memo)
	if err != nil {
		return err
	}
	fmt.Fprint(pp.out(), out)
	return nil
}

// Short is the displayed prefix of an id.
func Short(id string) string {
	if len(id) > ShortID {
		return id[:ShortID]
	}
	return id
}

// DateRange renders "2006.01.02 〜 2006.01.02", with a placeholder for
// tasks that were never completed.
func DateRange(t *task.Task) string {
	end := glyph.Unfinished
	if t.CompletedAt != nil {
		end = t.CompletedAt.Date()
	}
	return fmt.Sprintf("%s 〜 %s", t.CreatedAt.Date(), end)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
