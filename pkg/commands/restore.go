package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/restore"
)

func addRestore(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}
	var id string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Copy an archived task back into the active list",
		Long:  options.Wrap80("Restore creates a new active task with the title and memo of an archived one. The archived task is left as it is."),
		Example: `
mytodo restore <archived task id>
mytodo restore <archived task id> --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires an archived task id")
			}
			id = args[0]
			return nil
		},
		ValidArgsFunction: completeTasks(true),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := restore.Restore{
				ID:       id,
				ShowID:   io.ShowID,
				Prompter: co.Prompter(cmd),
				Service:  s.svc,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(ctx(cmd)))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
