package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	so := &options.SortOptions{}
	var (
		id   string
		to   int
		onto string
	)

	cmd := &cobra.Command{
		Use:     "move",
		Aliases: []string{"mv"},
		Short:   "Reorder a task in the manual (created) order",
		Example: `
mytodo move <task id> --to 1
mytodo move <task id> --onto <other task id>
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			id = args[0]
			if (to == 0) == (onto == "") {
				return errors.New("requires exactly one of --to or --onto")
			}
			return nil
		},
		ValidArgsFunction: completeTasks(false),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			mode, err := so.Mode(s.cfg.Sort())
			if err != nil {
				return output.HandleError(err)
			}
			m := move.Move{
				ID:      id,
				To:      to,
				Onto:    onto,
				Sort:    mode,
				ShowID:  io.ShowID,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(m.Do(ctx(cmd)))
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target position, 1 is the top of the list.")
	cmd.Flags().StringVar(&onto, "onto", "", "Take the position of this task.")
	options.AddSortArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
