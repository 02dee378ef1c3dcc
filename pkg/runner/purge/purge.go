// Package purge deletes every task marked for deletion.
package purge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/prompt"
)

type Purge struct {
	Prompter prompt.Prompter
	Service  *app.Service
	Out      io.Writer
}

func (n *Purge) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	removed, err := n.Service.DeleteMarked(ctx, n.Prompter)
	if err != nil {
		return err
	}
	if removed > 0 && n.Out != nil {
		fmt.Fprintf(n.Out, "Deleted %d task(s).\n", removed)
	}
	return nil
}
