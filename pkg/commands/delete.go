package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/purge"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete every task marked for deletion",
		Example: `
mytodo mark <task id>
mytodo delete
mytodo delete --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			p := purge.Purge{
				Prompter: co.Prompter(cmd),
				Service:  s.svc,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(p.Do(ctx(cmd)))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
