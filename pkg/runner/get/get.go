// Package get lists tasks.
package get

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/view"
)

type Which string

const (
	WhichActive  Which = "active"
	WhichArchive Which = "archive"
	WhichAll     Which = "all"
)

type Get struct {
	ShowID  bool
	Sort    view.SortMode
	Which   Which
	Service *app.Service
	Out     io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	p := n.Service.Project(n.Sort)

	switch n.Which {
	case "", WhichActive, WhichAll:
		pp.TitleWithCount(fmt.Sprintf("Tasks (%s)", p.Mode), len(p.Active))
		pp.Tasks(p.Active...)
		if n.Which != WhichAll {
			return nil
		}
		fallthrough
	case WhichArchive:
		pp.TitleWithCount("Archive", len(p.Archived))
		pp.Archive(p.Archived...)
		return nil
	}
	return fmt.Errorf("unknown list %q", n.Which)
}
