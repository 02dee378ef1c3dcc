package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/mark"
)

func addMark(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Toggle the deletion mark on tasks",
		Long:  options.Wrap80(`Marked tasks stay in the list until "mytodo delete" removes them all at once.`),
		Example: `
mytodo mark <task id> [<task id>...]
mytodo delete
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

			m := mark.Mark{
				IDs:     io.IDs,
				ShowID:  io.ShowID,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(m.Do(ctx(cmd)))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
