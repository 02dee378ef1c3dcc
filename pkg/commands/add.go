package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
mytodo add buy milk
mytodo add "call the bank" --memo "ask about the fee"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			to.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			a := add.Add{
				Title:   to.Title,
				Memo:    to.Memo,
				ShowID:  io.ShowID,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(a.Do(ctx(cmd)))
		},
	}

	options.AddMemoArgs(cmd, to)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
