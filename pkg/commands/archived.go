package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/clear"
	"tableflip.dev/mytodo/pkg/runner/get"
)

func addArchived(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "archived",
		Short: "List archived tasks, newest first",
		Example: `
mytodo archived
mytodo archived clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			g := get.Get{
				ShowID:  io.ShowID,
				Which:   get.WhichArchive,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(ctx(cmd)))
		},
	}

	options.AddShowIDArgs(cmd, io)
	addArchivedClear(cmd)
	topLevel.AddCommand(cmd)
}

func addArchivedClear(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Permanently delete every archived task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			c := clear.Clear{
				Prompter: co.Prompter(cmd),
				Service:  s.svc,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(c.Do(ctx(cmd)))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	parent.AddCommand(cmd)
}
