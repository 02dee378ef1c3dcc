// Package mark provides the runner logic for toggling the deletion mark.
package mark

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Mark struct {
	IDs     []string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Mark) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not mark, no service")
	}
	for _, ref := range n.IDs {
		t, err := n.Service.Resolve(ref)
		if err != nil {
			return err
		}
		if err := n.Service.ToggleDeletionMark(ctx, t.ID); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
