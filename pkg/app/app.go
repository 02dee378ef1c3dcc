package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tableflip.dev/mytodo/pkg/logger"
	"tableflip.dev/mytodo/pkg/ordering"
	"tableflip.dev/mytodo/pkg/prompt"
	"tableflip.dev/mytodo/pkg/store"
	"tableflip.dev/mytodo/pkg/task"
	"tableflip.dev/mytodo/pkg/view"
)

// Service is the task store. It owns the in-memory collection, writes the
// whole collection through Persistence after every change and tells
// subscribers when the data changed. UIs and CLIs share it.
//
// Memory is the source of truth: if a write fails the change is kept, the
// failure is logged and returned as a *task.PersistenceError.
type Service struct {
	persistence store.Persistence
	log         logrus.FieldLogger
	now         func() time.Time
	newID       func() string
	locale      string

	mu        sync.Mutex
	tasks     []*task.Task
	lastBlob  []byte
	listeners map[int]func(Change)
	nextSub   int
}

// Option customises a Service.
type Option func(*Service)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs replaces the uuid generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLocale sets the collation used for title sorting.
func WithLocale(tag string) Option {
	return func(s *Service) { s.locale = tag }
}

// New builds a Service over p. Call Load before use.
func New(p store.Persistence, opts ...Option) *Service {
	s := &Service{
		persistence: p,
		log:         logger.Discard(),
		now:         time.Now,
		newID:       uuid.NewString,
		locale:      "und",
		listeners:   make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Op names the operation behind a Change.
type Op string

const (
	OpCreate           Op = "create"
	OpUpdate           Op = "update"
	OpToggleCompletion Op = "toggle-completion"
	OpToggleMark       Op = "toggle-mark"
	OpArchive          Op = "archive"
	OpDelete           Op = "delete"
	OpRestore          Op = "restore"
	OpReorder          Op = "reorder"
	OpDeleteMarked     Op = "delete-marked"
	OpClearArchive     Op = "clear-archive"
	OpReload           Op = "reload"
)

// Change is the "data changed" signal. Err carries a failed write.
type Change struct {
	Op  Op
	IDs []string
	Err error
}

// Subscribe registers fn for every Change. Listeners run on the goroutine
// that made the change, after the store lock is released.
func (s *Service) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) emit(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.listeners))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Load replaces the collection with what Persistence holds. Missing or
// unreadable data yields an empty collection; the cause is only logged.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) {
	s.tasks = nil
	s.lastBlob = nil
	if s.persistence == nil {
		return
	}
	data, err := s.persistence.Read(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log.Debug("no stored tasks, starting empty")
		} else {
			s.log.WithError(&task.PersistenceError{Op: "read", Err: err}).WithField("key", store.Key).Warn("could not read tasks, starting empty")
		}
		return
	}
	tasks, err := store.Decode(data)
	if err != nil {
		s.log.WithError(err).WithField("key", store.Key).Warn("stored tasks are invalid, starting empty")
		return
	}
	s.tasks = tasks
	s.lastBlob = data
	s.log.WithField("count", len(tasks)).Debug("loaded tasks")
}

// Reload re-reads the blob after an external write. It reports whether the
// collection changed and emits OpReload if so. A failed read or an invalid
// blob keeps the tasks in memory; only a removed blob empties them.
func (s *Service) Reload(ctx context.Context) bool {
	s.mu.Lock()
	if s.persistence == nil {
		s.mu.Unlock()
		return false
	}
	var tasks []*task.Task
	data, err := s.persistence.Read(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if len(s.tasks) == 0 && s.lastBlob == nil {
			s.mu.Unlock()
			return false
		}
		data = nil
	case err != nil:
		s.mu.Unlock()
		s.log.WithError(&task.PersistenceError{Op: "read", Err: err}).WithField("key", store.Key).Warn("could not re-read tasks, keeping the current list")
		return false
	case bytes.Equal(data, s.lastBlob):
		s.mu.Unlock()
		return false
	default:
		if tasks, err = store.Decode(data); err != nil {
			s.mu.Unlock()
			s.log.WithError(err).WithField("key", store.Key).Warn("stored tasks are invalid, keeping the current list")
			return false
		}
	}
	s.tasks = tasks
	s.lastBlob = data
	s.mu.Unlock()
	s.emit(Change{Op: OpReload})
	return true
}

// Follow reloads whenever another process rewrites the blob, until ctx is
// done.
func (s *Service) Follow(ctx context.Context) error {
	if s.persistence == nil {
		return errors.New("app: no persistence configured")
	}
	events, err := s.persistence.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range events {
			if ev.Err != nil {
				s.log.WithError(ev.Err).Warn("store watcher error, reloading")
			}
			if s.Reload(ctx) {
				s.log.Info("tasks changed on disk, reloaded")
			}
		}
	}()
	return nil
}

// Persist writes the full collection.
func (s *Service) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Service) persistLocked(ctx context.Context) error {
	if s.persistence == nil {
		return nil
	}
	data, err := store.Encode(s.tasks)
	if err != nil {
		return s.writeFailed(err)
	}
	if err := s.persistence.Write(ctx, data); err != nil {
		return s.writeFailed(err)
	}
	s.lastBlob = data
	return nil
}

func (s *Service) writeFailed(err error) error {
	perr := &task.PersistenceError{Op: "write", Err: err}
	s.log.WithError(err).WithFields(logrus.Fields{"op": "write", "key": store.Key}).Error("could not save tasks")
	return perr
}

// mutate runs fn under the lock; when fn reports a change the collection is
// persisted and a Change emitted.
func (s *Service) mutate(ctx context.Context, op Op, fn func() (ids []string, changed bool, err error)) error {
	s.mu.Lock()
	ids, changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	perr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"op": op, "ids": ids}).Debug("tasks changed")
	s.emit(Change{Op: op, IDs: ids, Err: perr})
	return perr
}

func (s *Service) find(id string) *task.Task {
	return task.Find(s.tasks, id)
}

// Create adds a new active task at the end of the manual order. On a write
// failure the created task is returned together with the error.
func (s *Service) Create(ctx context.Context, title, memo string) (*task.Task, error) {
	var created *task.Task
	err := s.mutate(ctx, OpCreate, func() ([]string, bool, error) {
		t, err := task.New(s.newID(), title, memo, s.now(), ordering.NextOrder(s.tasks))
		if err != nil {
			return nil, false, err
		}
		s.tasks = append(s.tasks, t)
		created = t.Clone()
		return []string{t.ID}, true, nil
	})
	return created, err
}

// Update changes the supplied fields of the task id.
func (s *Service) Update(ctx context.Context, id string, f task.Fields) (*task.Task, error) {
	var updated *task.Task
	err := s.mutate(ctx, OpUpdate, func() ([]string, bool, error) {
		t := s.find(id)
		if t == nil {
			return nil, false, &task.NotFoundError{ID: id}
		}
		if err := t.Apply(f); err != nil {
			return nil, false, err
		}
		updated = t.Clone()
		return []string{id}, true, nil
	})
	return updated, err
}

// ToggleCompletion flips completion. Unknown ids are ignored.
func (s *Service) ToggleCompletion(ctx context.Context, id string) error {
	return s.mutate(ctx, OpToggleCompletion, func() ([]string, bool, error) {
		t := s.find(id)
		if t == nil {
			return nil, false, nil
		}
		t.SetCompleted(!t.IsCompleted, s.now())
		return []string{id}, true, nil
	})
}

// ToggleDeletionMark flips the deletion mark. Unknown ids are ignored.
func (s *Service) ToggleDeletionMark(ctx context.Context, id string) error {
	return s.mutate(ctx, OpToggleMark, func() ([]string, bool, error) {
		t := s.find(id)
		if t == nil {
			return nil, false, nil
		}
		t.IsDeleted = !t.IsDeleted
		return []string{id}, true, nil
	})
}

// Archive moves a task to the archive. Its order is left as is.
func (s *Service) Archive(ctx context.Context, id string) error {
	return s.mutate(ctx, OpArchive, func() ([]string, bool, error) {
		t := s.find(id)
		if t == nil || t.IsArchived {
			return nil, false, nil
		}
		t.IsArchived = true
		return []string{id}, true, nil
	})
}

// Delete removes a task for good. Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, OpDelete, func() ([]string, bool, error) {
		n := len(s.tasks)
		s.tasks = remove(s.tasks, func(t *task.Task) bool { return t.ID == id })
		return []string{id}, len(s.tasks) != n, nil
	})
}

// RestoreFromArchive creates a new active task with the title and memo of
// archived. The archived task itself is not touched.
func (s *Service) RestoreFromArchive(ctx context.Context, archived *task.Task) (*task.Task, error) {
	if archived == nil {
		return nil, &task.NotFoundError{}
	}
	var restored *task.Task
	err := s.mutate(ctx, OpRestore, func() ([]string, bool, error) {
		t, err := task.New(s.newID(), archived.Title, archived.Memo, s.now(), ordering.NextOrder(s.tasks))
		if err != nil {
			return nil, false, err
		}
		s.tasks = append(s.tasks, t)
		restored = t.Clone()
		return []string{t.ID, archived.ID}, true, nil
	})
	return restored, err
}

const (
	confirmRestore = "Copy this task to active tasks?"
	restoredNotice = "Task copied to active tasks."
	missingNotice  = "Task is not in the archive."
)

// RestoreWithConfirm asks before restoring the archived task id and
// acknowledges the copy. A declined prompt returns nil, nil.
func (s *Service) RestoreWithConfirm(ctx context.Context, id string, p prompt.Prompter) (*task.Task, error) {
	archived, ok := s.Get(id)
	if !ok || !archived.IsArchived {
		return nil, p.Alert(missingNotice)
	}
	yes, err := p.Confirm(confirmRestore)
	if err != nil || !yes {
		return nil, err
	}
	restored, err := s.RestoreFromArchive(ctx, archived)
	if restored == nil {
		return nil, err
	}
	if aerr := p.Alert(restoredNotice); aerr != nil && err == nil {
		err = aerr
	}
	return restored, err
}

// Reorder moves movedID to targetOrder in the manual order. It is only
// honoured in the created sort mode and reports whether anything moved.
func (s *Service) Reorder(ctx context.Context, movedID string, targetOrder int, mode view.SortMode) (bool, error) {
	if !mode.Reorderable() {
		s.log.WithField("mode", mode).Debug("reorder ignored outside created order")
		return false, nil
	}
	moved := false
	err := s.mutate(ctx, OpReorder, func() ([]string, bool, error) {
		moved = ordering.Reorder(s.tasks, movedID, targetOrder)
		return []string{movedID}, moved, nil
	})
	return moved, err
}

// ReorderOnto moves movedID into the slot held by the active task targetID.
// The target is looked up under the same lock as the shift.
func (s *Service) ReorderOnto(ctx context.Context, movedID, targetID string, mode view.SortMode) (bool, error) {
	if !mode.Reorderable() {
		s.log.WithField("mode", mode).Debug("reorder ignored outside created order")
		return false, nil
	}
	moved := false
	err := s.mutate(ctx, OpReorder, func() ([]string, bool, error) {
		target := s.find(targetID)
		if target == nil || target.IsArchived {
			return nil, false, nil
		}
		moved = ordering.Reorder(s.tasks, movedID, target.Order)
		return []string{movedID}, moved, nil
	})
	return moved, err
}

const (
	noMarkedNotice     = "No tasks marked for deletion."
	emptyArchiveNotice = "Archive is already empty."
	confirmClear       = "Clear all archived tasks?"
)

func confirmDeleteMarked(n int) string {
	if n == 1 {
		return "Delete 1 marked task?"
	}
	return fmt.Sprintf("Delete %d marked tasks?", n)
}

// DeleteMarked removes every marked active task once p confirms. It returns
// how many were removed.
func (s *Service) DeleteMarked(ctx context.Context, p prompt.Prompter) (int, error) {
	return s.bulkRemove(ctx, p, OpDeleteMarked,
		func(t *task.Task) bool { return t.IsDeleted && !t.IsArchived },
		noMarkedNotice, confirmDeleteMarked)
}

// ClearArchive removes every archived task once p confirms.
func (s *Service) ClearArchive(ctx context.Context, p prompt.Prompter) (int, error) {
	return s.bulkRemove(ctx, p, OpClearArchive,
		func(t *task.Task) bool { return t.IsArchived },
		emptyArchiveNotice, func(int) string { return confirmClear })
}

func (s *Service) bulkRemove(ctx context.Context, p prompt.Prompter, op Op, match func(*task.Task) bool, emptyNotice string, question func(n int) string) (int, error) {
	n := s.count(match)
	if n == 0 {
		return 0, p.Alert(emptyNotice)
	}
	yes, err := p.Confirm(question(n))
	if err != nil || !yes {
		return 0, err
	}
	removed := 0
	err = s.mutate(ctx, op, func() ([]string, bool, error) {
		var ids []string
		s.tasks = remove(s.tasks, func(t *task.Task) bool {
			if match(t) {
				ids = append(ids, t.ID)
				return true
			}
			return false
		})
		removed = len(ids)
		return ids, removed > 0, nil
	})
	return removed, err
}

func (s *Service) count(match func(*task.Task) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if match(t) {
			n++
		}
	}
	return n
}

func remove(tasks []*task.Task, drop func(*task.Task) bool) []*task.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if !drop(t) {
			out = append(out, t)
		}
	}
	for i := len(out); i < len(tasks); i++ {
		tasks[i] = nil
	}
	return out
}

// Tasks returns a copy of the whole collection in storage order.
func (s *Service) Tasks() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return task.CloneAll(s.tasks)
}

// Get returns a copy of the task id.
func (s *Service) Get(id string) (*task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(id)
	if t == nil {
		return nil, false
	}
	return t.Clone(), true
}

func (s *Service) Active(mode view.SortMode) []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Active(s.tasks, mode, view.WithLocale(s.locale))
}

func (s *Service) Archived() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Archived(s.tasks)
}

func (s *Service) Project(mode view.SortMode) view.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Project(s.tasks, mode, view.WithLocale(s.locale))
}

// Resolve finds a task by full id or unique id prefix.
func (s *Service) Resolve(ref string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.find(ref); t != nil {
		return t.Clone(), nil
	}
	var match *task.Task
	for _, t := range s.tasks {
		if len(ref) >= 4 && len(t.ID) >= len(ref) && t.ID[:len(ref)] == ref {
			if match != nil {
				return nil, fmt.Errorf("app: id prefix %q is ambiguous", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, &task.NotFoundError{ID: ref}
	}
	return match.Clone(), nil
}
