// Package add provides the runner logic for creating tasks.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Add struct {
	Title   string
	Memo    string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if _, err := n.Service.Create(ctx, n.Title, n.Memo); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
