package teaui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/gesture"
	"tableflip.dev/mytodo/pkg/prompt"
	"tableflip.dev/mytodo/pkg/task"
	"tableflip.dev/mytodo/pkg/view"
)

type tab int

const (
	tabActive tab = iota
	tabArchive
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputEdit
	inputConfirm
)

type confirmKind int

const (
	confirmDeleteMarked confirmKind = iota
	confirmClearArchive
	confirmRestore
)

// Options configures the UI model.
type Options struct {
	Sort       view.SortMode
	Thresholds gesture.Thresholds
	// Now defaults to time.Now; gestures are timed with it.
	Now func() time.Time
	Log logrus.FieldLogger
}

// A terminal cell is scaled to roughly a pixel box so pointer thresholds
// tuned for pixels keep their meaning.
const (
	cellWidth  = 8
	cellHeight = 16
)

const tickInterval = 100 * time.Millisecond

// messages
type (
	tickMsg    struct{}
	changedMsg struct{}
	archiveMsg struct{ id string }
)

// Model contains UI state
type Model struct {
	svc *app.Service
	ctx context.Context
	now func() time.Time
	th  gesture.Thresholds

	sort   view.SortMode
	tab    tab
	rows   []*task.Task
	cursor int
	top    int

	activeCount   int
	archivedCount int

	input     inputMode
	title     textinput.Model
	memo      textinput.Model
	editing   string
	confirm   confirmKind
	confirmID string
	question  string

	status     string
	termWidth  int
	termHeight int

	mapper     *gesture.Mapper
	pressed    bool
	dragging   string
	dropTarget string
	leaving    map[string]bool

	changes chan struct{}
	cancel  func()
}

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Thresholds == (gesture.Thresholds{}) {
		opts.Thresholds = gesture.DefaultThresholds()
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256
	memo := textinput.New()
	memo.Placeholder = "Memo (optional)"
	memo.CharLimit = 1024

	m := &Model{
		svc:     svc,
		ctx:     ctx,
		now:     opts.Now,
		th:      opts.Thresholds,
		sort:    opts.Sort,
		title:   title,
		memo:    memo,
		status:  "j/k move, a add, x complete, d mark, A archive, tab archive view, ? keys",
		leaving: map[string]bool{},
		changes: make(chan struct{}, 1),
	}
	m.mapper = gesture.NewMapper(gesture.LocatorFunc(m.taskAt),
		gesture.WithThresholds(opts.Thresholds),
		gesture.WithReorderGate(func() bool { return m.tab == tabActive && m.sort.Reorderable() }))
	m.cancel = svc.Subscribe(func(app.Change) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.refresh()
	return m
}

// Close stops listening for store changes.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Init starts listening for changes made outside the UI.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return changedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// refresh reloads the visible rows, keeping the cursor on the same task
// when it is still listed.
func (m *Model) refresh() {
	selected := ""
	if t := m.selected(); t != nil {
		selected = t.ID
	}
	p := m.svc.Project(m.sort)
	m.activeCount, m.archivedCount = len(p.Active), len(p.Archived)
	if m.tab == tabArchive {
		m.rows = p.Archived
	} else {
		m.rows = p.Active
	}
	for i, t := range m.rows {
		if t.ID == selected {
			m.cursor = i
		}
	}
	m.clampCursor()

	for id := range m.leaving {
		if t, ok := m.svc.Get(id); !ok || t.IsArchived {
			delete(m.leaving, id)
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+visible {
		m.top = m.cursor - visible + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

func (m *Model) selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *Model) selectID(id string) {
	for i, t := range m.rows {
		if t.ID == id {
			m.cursor = i
			m.clampCursor()
			return
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// done reports the outcome of a store call in the status line.
func (m *Model) done(err error, ok string) {
	var pe *task.PersistenceError
	switch {
	case err == nil:
		m.status = ok
	case errors.As(err, &pe):
		m.status = "Not saved: " + pe.Err.Error()
	default:
		m.status = "ERR: " + err.Error()
	}
	m.refresh()
}

// Update handles keys, mouse gestures and store notifications.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.clampCursor()
	case changedMsg:
		m.refresh()
		cmds = append(cmds, m.waitForChange())
	case tickMsg:
		if m.pressed {
			cmds = append(cmds, m.apply(m.mapper.Handle(gesture.Event{Kind: gesture.Tick, At: m.now()}))...)
			cmds = append(cmds, m.tick())
		}
	case archiveMsg:
		m.done(m.svc.Archive(m.ctx, msg.id), "Archived")
		delete(m.leaving, msg.id)
	case tea.MouseMsg:
		if m.input == inputNone {
			cmds = append(cmds, m.handleMouse(msg)...)
		}
	case tea.KeyMsg:
		switch m.input {
		case inputAdd, inputEdit:
			cmds = append(cmds, m.handleInputKey(msg))
		case inputConfirm:
			m.handleConfirmKey(msg)
		default:
			if cmd := m.handleKey(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	sel := m.selected()
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.clampCursor()
	case "G", "end":
		m.cursor = len(m.rows) - 1
		m.clampCursor()
	case "tab":
		if m.tab == tabActive {
			m.tab = tabArchive
		} else {
			m.tab = tabActive
		}
		m.cursor, m.top = 0, 0
		m.refresh()
	case "s":
		m.sort = m.sort.Next()
		m.refresh()
		m.status = "Sorted by " + m.sort.String()
	case "a":
		if m.tab == tabActive {
			return m.startInput(inputAdd, nil)
		}
	case "e":
		if sel != nil && m.tab == tabActive {
			return m.startInput(inputEdit, sel)
		}
	case "x":
		if sel != nil && m.tab == tabActive {
			m.done(m.svc.ToggleCompletion(m.ctx, sel.ID), "Toggled completion")
		}
	case "d":
		if sel != nil && m.tab == tabActive {
			m.done(m.svc.ToggleDeletionMark(m.ctx, sel.ID), "Toggled mark")
		}
	case "A":
		if sel != nil && m.tab == tabActive {
			m.done(m.svc.Archive(m.ctx, sel.ID), "Archived")
		}
	case "X":
		if sel != nil {
			m.done(m.svc.Delete(m.ctx, sel.ID), "Deleted")
		}
	case "J":
		m.shift(1)
	case "K":
		m.shift(-1)
	case "D":
		m.ask(confirmDeleteMarked, "")
	case "C":
		m.ask(confirmClearArchive, "")
	case "r":
		if sel != nil && m.tab == tabArchive {
			m.ask(confirmRestore, sel.ID)
		}
	case "?":
		m.status = "x/d/A complete mark archive, J/K reorder, D delete marked, r restore, C clear archive, X delete, q quit"
	}
	return nil
}

// shift moves the selected task one slot in the manual order.
func (m *Model) shift(delta int) {
	sel := m.selected()
	next := m.cursor + delta
	if sel == nil || m.tab != tabActive || next < 0 || next >= len(m.rows) {
		return
	}
	if !m.sort.Reorderable() {
		m.status = "Reorder only works in created order (press s)"
		return
	}
	_, err := m.svc.ReorderOnto(m.ctx, sel.ID, m.rows[next].ID, m.sort)
	m.done(err, "Moved")
	m.selectID(sel.ID)
}

func (m *Model) startInput(mode inputMode, t *task.Task) tea.Cmd {
	m.input = mode
	m.title.Reset()
	m.memo.Reset()
	m.editing = ""
	if t != nil {
		m.editing = t.ID
		m.title.SetValue(t.Title)
		m.memo.SetValue(t.Memo)
		m.title.CursorEnd()
	}
	m.memo.Blur()
	return tea.Batch(m.title.Focus(), textinput.Blink)
}

func (m *Model) endInput(status string) {
	m.input = inputNone
	m.editing = ""
	m.title.Blur()
	m.memo.Blur()
	m.status = status
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.input == inputAdd {
			m.endInput("Add cancelled")
		} else {
			m.endInput("Edit cancelled")
		}
		return nil
	case "tab", "shift+tab":
		if m.title.Focused() {
			m.title.Blur()
			return m.memo.Focus()
		}
		m.memo.Blur()
		return m.title.Focus()
	case "enter":
		m.commitInput()
		return nil
	}
	var cmd tea.Cmd
	if m.memo.Focused() {
		m.memo, cmd = m.memo.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return cmd
}

func (m *Model) commitInput() {
	title, memo := m.title.Value(), m.memo.Value()
	var (
		t   *task.Task
		err error
	)
	if m.input == inputAdd {
		t, err = m.svc.Create(m.ctx, title, memo)
	} else {
		t, err = m.svc.Update(m.ctx, m.editing, task.Fields{Title: &title, Memo: &memo})
	}
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		m.status = "ERR: " + ve.Reason.Error()
		return
	}
	verb := "Added"
	if m.input == inputEdit {
		verb = "Edited"
	}
	m.endInput("")
	m.done(err, verb)
	if t != nil {
		m.selectID(t.ID)
	}
}

// ask runs the bulk or restore flow with a prompter that declines, which
// yields either the notice to show or the question to put to the user.
func (m *Model) ask(kind confirmKind, id string) {
	probe := &prompt.Script{}
	if err := m.runConfirm(kind, id, probe); err != nil {
		m.done(err, "")
		return
	}
	if len(probe.Confirmed) == 0 {
		m.status = strings.Join(probe.Alerts, " ")
		return
	}
	m.input = inputConfirm
	m.confirm = kind
	m.confirmID = id
	m.question = probe.Confirmed[0]
}

func (m *Model) runConfirm(kind confirmKind, id string, p prompt.Prompter) error {
	var err error
	switch kind {
	case confirmDeleteMarked:
		_, err = m.svc.DeleteMarked(m.ctx, p)
	case confirmClearArchive:
		_, err = m.svc.ClearArchive(m.ctx, p)
	case confirmRestore:
		_, err = m.svc.RestoreWithConfirm(m.ctx, id, p)
	}
	return err
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		p := &prompt.Script{Answers: []bool{true}}
		err := m.runConfirm(m.confirm, m.confirmID, p)
		ok := "Done"
		switch {
		case len(p.Alerts) > 0:
			ok = strings.Join(p.Alerts, " ")
		case m.confirm == confirmDeleteMarked:
			ok = "Deleted marked tasks"
		case m.confirm == confirmClearArchive:
			ok = "Archive cleared"
		}
		m.input = inputNone
		m.done(err, ok)
	case "n", "N", "esc", "q":
		m.input = inputNone
		m.status = "Cancelled"
	}
}
