package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	var id string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change the title or memo of a task",
		Example: `
mytodo edit 3f2a --title "buy oat milk"
mytodo edit 3f2a --memo ""
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			id = args[0]
			return nil
		},
		ValidArgsFunction: completeTasks(false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := edit.Edit{
				ID:    id,
				Title: to.TitleChanged(cmd),
				Memo:  to.MemoChanged(cmd),
				Out:   cmd.OutOrStdout(),
			}
			if e.Title == nil && e.Memo == nil {
				return errors.New("nothing to change, use --title or --memo")
			}
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()
			e.Service = s.svc
			return output.HandleError(e.Do(ctx(cmd)))
		},
	}

	options.AddTitleArgs(cmd, to)
	options.AddMemoArgs(cmd, to)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
