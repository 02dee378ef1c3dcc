package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	var (
		id       string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one task with its memo and dates",
		Example: `
mytodo show 3f2a
mytodo show 3f2a --markdown
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
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			if output.JSON {
				t, err := s.svc.Resolve(id)
				if err != nil {
					return output.HandleError(err)
				}
				return output.Encode(cmd.OutOrStdout(), t)
			}
			sh := show.Show{
				ID:       id,
				Markdown: markdown,
				Service:  s.svc,
				Out:      cmd.OutOrStdout(),
			}
			return output.HandleError(sh.Do(ctx(cmd)))
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the memo as markdown.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
