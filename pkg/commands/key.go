package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the symbols used in task lists",
		Example: `
mytodo key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return output.HandleError(k.Do(ctx(cmd)))
		},
	}

	topLevel.AddCommand(cmd)
}
