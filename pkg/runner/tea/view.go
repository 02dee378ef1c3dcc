package teaui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/mytodo/pkg/gesture"
	"tableflip.dev/mytodo/pkg/glyph"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/task"
)

var (
	rowColor, _  = colorful.Hex("#e4e4e4")
	goneColor, _ = colorful.Hex("#444444")

	headerStyle = lipgloss.NewStyle().Bold(true)
	tabOn       = lipgloss.NewStyle().Bold(true).Underline(true)
	tabOff      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	memoStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245"))
	markedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dragStyle   = lipgloss.NewStyle().Reverse(true)
	dropStyle   = lipgloss.NewStyle().Underline(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	askStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// fade blends a row towards the background while it is swiped away.
func fade(f float64) lipgloss.Style {
	f = math.Max(0, math.Min(1, f))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(rowColor.BlendLab(goneColor, f).Hex()))
}

func (m *Model) width() int {
	if m.termWidth > 0 {
		return m.termWidth
	}
	return 80
}

// visibleRows is how many task rows fit between the header and the footer.
func (m *Model) visibleRows() int {
	if m.termHeight <= 0 {
		return 1 << 16
	}
	n := m.termHeight - rowOffset - 4
	if n < 1 {
		n = 1
	}
	return n
}

// swipeFade is how far the row of id has been swiped, from 0 to 1.
func (m *Model) swipeFade(id string) float64 {
	if m.leaving[id] {
		return 1
	}
	if m.mapper.State() != gesture.Swiping || m.mapper.Active() != id {
		return 0
	}
	dx, _ := m.mapper.Offset()
	if dx >= 0 || m.th.SwipeMinDistance <= 0 {
		return 0
	}
	return math.Abs(dx) / m.th.SwipeMinDistance
}

func (m *Model) header() string {
	active := fmt.Sprintf("Tasks (%d)", m.activeCount)
	archive := fmt.Sprintf("Archive (%d)", m.archivedCount)
	if m.tab == tabActive {
		active, archive = tabOn.Render(active), tabOff.Render(archive)
	} else {
		active, archive = tabOff.Render(active), tabOn.Render(archive)
	}
	return fmt.Sprintf("%s  %s  %s  %s", headerStyle.Render("mytodo"), active, archive,
		statusStyle.Render("sort: "+m.sort.String()))
}

func (m *Model) row(i int, t *task.Task) string {
	gutter := "  "
	if i == m.cursor {
		gutter = "» "
	}
	width := m.width()

	if m.tab == tabArchive {
		line := fmt.Sprintf("%s%s %s  %s", gutter, glyph.Archived.Symbol, t.Title, printers.DateRange(t))
		return truncate.StringWithTail(line, uint(width), "…")
	}

	title := t.Title
	switch {
	case t.IsCompleted:
		title = doneStyle.Render(title)
	case t.IsDeleted:
		title = markedStyle.Render(title)
	}
	line := fmt.Sprintf("%s%s %s %s", gutter, glyph.Check(t), glyph.Mark(t), title)
	if memo := firstLine(t.Memo); memo != "" {
		line += "  " + memoStyle.Render(memo)
	}
	line = truncate.StringWithTail(line, uint(width), "…")

	switch {
	case t.ID == m.dragging:
		return dragStyle.Render(line)
	case t.ID == m.dropTarget:
		return dropStyle.Render(line)
	}
	if f := m.swipeFade(t.ID); f > 0 {
		return fade(f).Render(line)
	}
	return line
}

func (m *Model) footer() string {
	switch m.input {
	case inputAdd, inputEdit:
		verb := "Add"
		if m.input == inputEdit {
			verb = "Edit"
		}
		return fmt.Sprintf("%s  %s\nMemo %s\n%s", verb, m.title.View(), m.memo.View(),
			statusStyle.Render("enter save, tab switch field, esc cancel "+m.status))
	case inputConfirm:
		return askStyle.Render(m.question+" (y/n)") + "\n"
	}
	return statusStyle.Render(m.status) + "\n"
}

// View renders the header, the visible rows and the status line.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		if m.tab == tabActive {
			b.WriteString(statusStyle.Render("  Nothing to do. Press a to add a task."))
		} else {
			b.WriteString(statusStyle.Render("  Archive is empty."))
		}
		b.WriteString("\n")
	}
	end := m.top + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.top; i < end; i++ {
		b.WriteString(m.row(i, m.rows[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
