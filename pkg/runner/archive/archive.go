// Package archive provides the runner logic for archiving tasks.
package archive

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Archive struct {
	IDs     []string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (n *Archive) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not archive, no service")
	}
	for _, ref := range n.IDs {
		t, err := n.Service.Resolve(ref)
		if err != nil {
			return err
		}
		if err := n.Service.Archive(ctx, t.ID); err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	active := n.Service.Active(view.SortCreated)
	pp.TitleWithCount("Tasks", len(active))
	pp.Tasks(active...)
	return nil
}
