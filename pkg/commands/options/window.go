package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Window string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVarP(&o.Window, "window", "w", timeutil.DefaultWindow,
		"Time window to include (for example 3d, 1w, 2w3d).")
}
