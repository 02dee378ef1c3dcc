package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(mytodo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(mytodo completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

// taskCompletions offers short ids of tasks whose id or title starts with
// toComplete.
func taskCompletions(archived bool, toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil
	}
	defer p.Close()
	svc := app.New(p)
	svc.Load(context.Background())

	var out []string
	for _, t := range svc.Tasks() {
		if t.IsArchived != archived {
			continue
		}
		id := printers.Short(t.ID)
		if strings.HasPrefix(t.ID, toComplete) || strings.HasPrefix(strings.ToLower(t.Title), strings.ToLower(toComplete)) {
			out = append(out, id+"\t"+t.Title)
		}
	}
	return out
}

func completeTasks(archived bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return taskCompletions(archived, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}
