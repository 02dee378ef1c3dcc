// Package mcp exposes the task store over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/glyph"
	"tableflip.dev/mytodo/pkg/prompt"
	"tableflip.dev/mytodo/pkg/task"
	"tableflip.dev/mytodo/pkg/view"
)

// Service adapts the task store to transport-friendly values.
type Service struct {
	Tasks *app.Service
}

// ErrNotConfirmed is returned by bulk operations called without confirm.
var ErrNotConfirmed = errors.New("set confirm to true to run this destructive operation")

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Memo        string `json:"memo,omitempty"`
	Order       int    `json:"order"`
	IsCompleted bool   `json:"isCompleted"`
	IsDeleted   bool   `json:"isDeleted"`
	IsArchived  bool   `json:"isArchived"`
	Check       string `json:"check"`
	CreatedISO  string `json:"created"`
	CompleteISO string `json:"completed,omitempty"`
	CreatedUnix int64  `json:"createdUnix"`
}

// ListResult is a projected list.
type ListResult struct {
	View  string    `json:"view"`
	Sort  string    `json:"sort,omitempty"`
	Count int       `json:"count"`
	Tasks []TaskDTO `json:"tasks"`
}

func NewService(tasks *app.Service) *Service {
	return &Service{Tasks: tasks}
}

func toDTO(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Memo:        t.Memo,
		Order:       t.Order,
		IsCompleted: t.IsCompleted,
		IsDeleted:   t.IsDeleted,
		IsArchived:  t.IsArchived,
		Check:       glyph.Check(t).String(),
		CreatedISO:  task.FormatTime(t.CreatedAt.Time),
		CreatedUnix: t.CreatedAt.Unix(),
	}
	if t.CompletedAt != nil {
		dto.CompleteISO = task.FormatTime(t.CompletedAt.Time)
	}
	return dto
}

func (s *Service) ready() error {
	if s.Tasks == nil {
		return errors.New("task store is not configured")
	}
	return nil
}

// List returns the active or archived view, at most limit tasks when
// limit is positive.
func (s *Service) List(ctx context.Context, which, sort string, limit int) (ListResult, error) {
	if err := s.ready(); err != nil {
		return ListResult{}, err
	}
	var tasks []*task.Task
	res := ListResult{View: which}
	switch strings.ToLower(which) {
	case "", "active":
		mode, err := view.ParseSortMode(sort)
		if err != nil {
			return ListResult{}, err
		}
		res.View, res.Sort = "active", mode.String()
		tasks = s.Tasks.Active(mode)
	case "archive", "archived":
		res.View = "archive"
		tasks = s.Tasks.Archived()
	default:
		return ListResult{}, fmt.Errorf("unknown view %q (want active or archive)", which)
	}
	res.Count = len(tasks)
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	res.Tasks = make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		res.Tasks = append(res.Tasks, toDTO(t))
	}
	return res, nil
}

func (s *Service) Get(ctx context.Context, id string) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Tasks.Resolve(id)
	if err != nil {
		return TaskDTO{}, err
	}
	return toDTO(t), nil
}

func (s *Service) Create(ctx context.Context, title, memo string) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Tasks.Create(ctx, title, memo)
	if t == nil {
		return TaskDTO{}, err
	}
	return toDTO(t), err
}

func (s *Service) Update(ctx context.Context, id string, f task.Fields) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Tasks.Resolve(id)
	if err != nil {
		return TaskDTO{}, err
	}
	updated, err := s.Tasks.Update(ctx, t.ID, f)
	if updated == nil {
		return TaskDTO{}, err
	}
	return toDTO(updated), err
}

// Mutate applies one of the id-based toggles and returns the task after.
func (s *Service) Mutate(ctx context.Context, id string, op app.Op) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Tasks.Resolve(id)
	if err != nil {
		return TaskDTO{}, err
	}
	switch op {
	case app.OpToggleCompletion:
		err = s.Tasks.ToggleCompletion(ctx, t.ID)
	case app.OpToggleMark:
		err = s.Tasks.ToggleDeletionMark(ctx, t.ID)
	case app.OpArchive:
		err = s.Tasks.Archive(ctx, t.ID)
	case app.OpDelete:
		if err := s.Tasks.Delete(ctx, t.ID); err != nil {
			return TaskDTO{}, err
		}
		return toDTO(t), nil
	default:
		return TaskDTO{}, fmt.Errorf("unsupported operation %q", op)
	}
	if err != nil {
		return TaskDTO{}, err
	}
	return s.Get(ctx, t.ID)
}

func (s *Service) Restore(ctx context.Context, id string) (TaskDTO, error) {
	if err := s.ready(); err != nil {
		return TaskDTO{}, err
	}
	t, err := s.Tasks.Resolve(id)
	if err != nil {
		return TaskDTO{}, err
	}
	if !t.IsArchived {
		return TaskDTO{}, fmt.Errorf("task %s is not archived", t.ID)
	}
	restored, err := s.Tasks.RestoreFromArchive(ctx, t)
	if restored == nil {
		return TaskDTO{}, err
	}
	return toDTO(restored), err
}

// Reorder moves id to position to in the created order.
func (s *Service) Reorder(ctx context.Context, id string, to int) (ListResult, error) {
	if err := s.ready(); err != nil {
		return ListResult{}, err
	}
	t, err := s.Tasks.Resolve(id)
	if err != nil {
		return ListResult{}, err
	}
	moved, err := s.Tasks.Reorder(ctx, t.ID, to, view.SortCreated)
	if err != nil {
		return ListResult{}, err
	}
	if !moved {
		return ListResult{}, fmt.Errorf("task %s was not moved (archived, same position or position out of range)", t.ID)
	}
	return s.List(ctx, "active", view.SortCreated.String(), 0)
}

// DeleteMarked removes marked tasks; confirm stands in for the prompt.
func (s *Service) DeleteMarked(ctx context.Context, confirm bool) (int, string, error) {
	if err := s.ready(); err != nil {
		return 0, "", err
	}
	if !confirm {
		return 0, "", ErrNotConfirmed
	}
	var notice strings.Builder
	n, err := s.Tasks.DeleteMarked(ctx, prompt.Always(&notice))
	return n, strings.TrimSpace(notice.String()), err
}

// ClearArchive removes archived tasks; confirm stands in for the prompt.
func (s *Service) ClearArchive(ctx context.Context, confirm bool) (int, string, error) {
	if err := s.ready(); err != nil {
		return 0, "", err
	}
	if !confirm {
		return 0, "", ErrNotConfirmed
	}
	var notice strings.Builder
	n, err := s.Tasks.ClearArchive(ctx, prompt.Always(&notice))
	return n, strings.TrimSpace(notice.String()), err
}
