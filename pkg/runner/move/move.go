// Package move reorders an active task.
package move

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

// Move puts the task ID at position To, or into the slot of the task Onto
// when set.
type Move struct {
	ID      string
	To      int
	Onto    string
	Sort    view.SortMode
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	if !n.Sort.Reorderable() {
		return fmt.Errorf("tasks can only be moved when sorted by %s, not %s", view.SortCreated, n.Sort)
	}
	t, err := n.Service.Resolve(n.ID)
	if err != nil {
		return err
	}
	if t.IsArchived {
		return fmt.Errorf("task %s is archived", printers.Short(t.ID))
	}

	target := n.To
	if n.Onto != "" {
		onto, err := n.Service.Resolve(n.Onto)
		if err != nil {
			return err
		}
		if onto.IsArchived {
			return fmt.Errorf("task %s is archived", printers.Short(onto.ID))
		}
		target = onto.Order
	}
	if _, err := n.Service.Reorder(ctx, t.ID, target, n.Sort); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(n.Sort)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
