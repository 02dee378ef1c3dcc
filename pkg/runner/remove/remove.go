// Package remove provides the runner logic for permanently deleting tasks.
package remove

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Remove struct {
	IDs     []string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	for _, ref := range n.IDs {
		t, err := n.Service.Resolve(ref)
		if err != nil {
			return err
		}
		if err := n.Service.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
