package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/runner/get"
	"tableflip.dev/mytodo/pkg/task"
)

func addGet(topLevel *cobra.Command) {
	so := &options.SortOptions{}
	io := &options.IDOptions{}
	var archive, all bool

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List tasks",
		Example: `
mytodo get
mytodo get --sort title
mytodo get --archive
mytodo get --all --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			mode, err := so.Mode(s.cfg.Sort())
			if err != nil {
				return output.HandleError(err)
			}
			which := get.WhichActive
			switch {
			case all:
				which = get.WhichAll
			case archive:
				which = get.WhichArchive
			}

			if output.JSON {
				p := s.svc.Project(mode)
				out := map[string][]*task.Task{}
				if which != get.WhichArchive {
					out["active"] = nonNil(p.Active)
				}
				if which != get.WhichActive {
					out["archive"] = nonNil(p.Archived)
				}
				return output.Encode(cmd.OutOrStdout(), out)
			}

			g := get.Get{
				ShowID:  io.ShowID,
				Sort:    mode,
				Which:   which,
				Service: s.svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(g.Do(ctx(cmd)))
		},
	}

	options.AddSortArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&archive, "archive", "a", false, "List archived tasks instead.")
	cmd.Flags().BoolVar(&all, "all", false, "List active and archived tasks.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func nonNil(tasks []*task.Task) []*task.Task {
	if tasks == nil {
		return []*task.Task{}
	}
	return tasks
}
