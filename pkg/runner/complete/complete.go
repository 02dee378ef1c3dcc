// Package complete provides the runner logic for toggling task completion.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Complete struct {
	IDs     []string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	for _, ref := range n.IDs {
		t, err := n.Service.Resolve(ref)
		if err != nil {
			return err
		}
		if err := n.Service.ToggleCompletion(ctx, t.ID); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
