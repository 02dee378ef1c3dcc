// Package restore copies an archived task back to the active list.
package restore

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/prompt"
	"tableflip.dev/mytodo/pkg/view"
)

type Restore struct {
	ID       string
	ShowID   bool
	Prompter prompt.Prompter
	Service  *app.Service
	Out      io.Writer
}

func (n *Restore) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not restore, no service")
	}
	t, err := n.Service.Resolve(n.ID)
	if err != nil {
		return err
	}
	restored, err := n.Service.RestoreWithConfirm(ctx, t.ID, n.Prompter)
	if err != nil || restored == nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
