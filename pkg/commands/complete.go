package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"done", "x"},
		Short:   "Toggle whether tasks are completed",
		Example: `
mytodo complete <task id> [<task id>...]
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			io.IDs = args
			return nil
		},
		ValidArgsFunction: completeTasks(false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			c := complete.Complete{
				IDs:     io.IDs,
				ShowID:  io.ShowID,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(c.Do(ctx(cmd)))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
