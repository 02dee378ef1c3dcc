package app

import (
	"context"

	"tableflip.dev/mytodo/pkg/gesture"
	"tableflip.dev/mytodo/pkg/view"
)

// Apply executes the store side of a gesture intent. Intents that only
// concern the renderer (tap, drag feedback) are ignored here. SwipeArchive
// is applied immediately; renderers that animate wait Intent.Delay first.
func (s *Service) Apply(ctx context.Context, in gesture.Intent, mode view.SortMode) error {
	switch in.Kind {
	case gesture.ToggleCompletion:
		return s.ToggleCompletion(ctx, in.TaskID)
	case gesture.ToggleMark:
		return s.ToggleDeletionMark(ctx, in.TaskID)
	case gesture.SwipeArchive:
		return s.Archive(ctx, in.TaskID)
	case gesture.Reorder:
		_, err := s.ReorderOnto(ctx, in.TaskID, in.TargetID, mode)
		return err
	}
	return nil
}
