package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
	teaui "tableflip.dev/mytodo/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SortOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal user interface",
		Long:  options.Wrap80("Keys: j/k move, a add, e edit, x complete, d mark, A archive, s sort, J/K reorder, D delete marked, tab archive view, r restore, C clear archive, q quit. Click the boxes to toggle, swipe a row left to archive it, long-press and drag to reorder."),
		Example: `
mytodo ui
mytodo ui --sort title
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			mode, err := so.Mode(s.cfg.Sort())
			if err != nil {
				return err
			}
			return teaui.Run(ctx(cmd), s.svc, teaui.Options{
				Sort:       mode,
				Thresholds: s.cfg.Gesture(),
				Log:        s.log,
			})
		},
	}

	options.AddSortArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
