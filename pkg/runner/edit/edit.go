// Package edit provides the runner logic for changing a task's title or memo.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/task"
)

// Edit updates the fields that are set.
type Edit struct {
	ID      string
	Title   *string
	Memo    *string
	Service *app.Service
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	t, err := n.Service.Resolve(n.ID)
	if err != nil {
		return err
	}
	updated, err := n.Service.Update(ctx, t.ID, task.Fields{Title: n.Title, Memo: n.Memo})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	return pp.Detail(updated)
}
