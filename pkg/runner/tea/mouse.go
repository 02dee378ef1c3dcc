package teaui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/mytodo/pkg/gesture"
)

// Row layout: a two cell cursor gutter, the completion box, a space, the
// mark box, a space, then the title.
const (
	rowOffset = 2
	checkCol  = 2
	markCol   = 4
)

func (m *Model) rowAt(y int) int {
	i := y - rowOffset
	if i < 0 || i >= m.visibleRows() {
		return -1
	}
	i += m.top
	if i >= len(m.rows) {
		return -1
	}
	return i
}

func (m *Model) taskAt(x, y float64) (string, bool) {
	i := m.rowAt(int(y) / cellHeight)
	if i < 0 {
		return "", false
	}
	return m.rows[i].ID, true
}

func (m *Model) hit(x, y int) (string, gesture.Region) {
	i := m.rowAt(y)
	if i < 0 {
		return "", gesture.RegionBody
	}
	id := m.rows[i].ID
	if m.tab != tabActive {
		return id, gesture.RegionBody
	}
	switch x {
	case checkCol:
		return id, gesture.RegionCheckbox
	case markCol:
		return id, gesture.RegionMark
	}
	return id, gesture.RegionBody
}

func (m *Model) handleMouse(msg tea.MouseMsg) []tea.Cmd {
	var kind gesture.Kind
	switch msg.Type {
	case tea.MouseLeft:
		kind = gesture.Down
		if m.pressed {
			kind = gesture.Move
		}
	case tea.MouseMotion:
		if !m.pressed {
			return nil
		}
		kind = gesture.Move
	case tea.MouseRelease:
		if !m.pressed {
			return nil
		}
		kind = gesture.Up
	case tea.MouseWheelUp:
		m.moveCursor(-1)
		return nil
	case tea.MouseWheelDown:
		m.moveCursor(1)
		return nil
	default:
		return nil
	}

	ev := gesture.Event{
		Kind: kind,
		At:   m.now(),
		X:    float64(msg.X * cellWidth),
		Y:    float64(msg.Y * cellHeight),
	}
	var cmds []tea.Cmd
	if kind == gesture.Down {
		ev.TaskID, ev.Region = m.hit(msg.X, msg.Y)
	}
	cmds = append(cmds, m.apply(m.mapper.Handle(ev))...)

	wasPressed := m.pressed
	m.pressed = kind != gesture.Up && m.mapper.State() != gesture.Idle
	if m.pressed && !wasPressed {
		cmds = append(cmds, m.tick())
	}
	return cmds
}

// apply turns intents into store calls and drag feedback.
func (m *Model) apply(intents []gesture.Intent) []tea.Cmd {
	var cmds []tea.Cmd
	for _, in := range intents {
		switch in.Kind {
		case gesture.Tap:
			m.selectID(in.TaskID)
		case gesture.ToggleCompletion, gesture.ToggleMark:
			if m.tab == tabActive {
				m.selectID(in.TaskID)
				m.done(m.svc.Apply(m.ctx, in, m.sort), "Toggled "+in.Kind.String())
			}
		case gesture.SwipeArchive:
			if m.tab != tabActive {
				continue
			}
			id := in.TaskID
			m.leaving[id] = true
			cmds = append(cmds, tea.Tick(in.Delay, func(_ time.Time) tea.Msg { return archiveMsg{id: id} }))
		case gesture.DragStart:
			m.dragging = in.TaskID
			m.dropTarget = ""
			m.selectID(in.TaskID)
			m.status = "Drag to reorder"
		case gesture.DragOver:
			m.dropTarget = in.TargetID
		case gesture.Reorder:
			m.dragging, m.dropTarget = "", ""
			m.done(m.svc.Apply(m.ctx, in, m.sort), "Moved")
			m.selectID(in.TaskID)
		case gesture.DragCancel:
			m.dragging, m.dropTarget = "", ""
			m.status = "Reorder cancelled"
		}
	}
	return cmds
}
