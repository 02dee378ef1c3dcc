// Package report prints the tasks completed in a recent window.
package report

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/timeutil"
)

type Report struct {
	Window  string
	ShowID  bool
	Now     func() time.Time
	Service *app.Service
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	w, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	since, until := w.Bounds(now())
	res, err := n.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.Report(res, w.Label)
	return nil
}
