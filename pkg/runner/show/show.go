// Package show prints one task with its memo.
package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
)

type Show struct {
	ID       string
	Markdown bool
	Service  *app.Service
	Out      io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	t, err := n.Service.Resolve(n.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, Markdown: n.Markdown}
	return pp.Detail(t)
}
