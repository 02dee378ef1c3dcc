package options

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/prompt"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Answer yes to the confirmation prompt.")
}

// Prompter asks on the terminal unless --yes was given.
func (o *ConfirmOptions) Prompter(cmd *cobra.Command) prompt.Prompter {
	if o.Yes {
		return prompt.Always(cmd.OutOrStdout())
	}
	return &prompt.Terminal{In: os.Stdin, Out: os.Stdout}
}
