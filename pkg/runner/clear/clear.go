// Package clear empties the archive.
package clear

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/prompt"
)

type Clear struct {
	Prompter prompt.Prompter
	Service  *app.Service
	Out      io.Writer
}

func (n *Clear) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not clear, no service")
	}
	removed, err := n.Service.ClearArchive(ctx, n.Prompter)
	if err != nil {
		return err
	}
	if removed > 0 && n.Out != nil {
		fmt.Fprintf(n.Out, "Removed %d archived task(s).\n", removed)
	}
	return nil
}
