package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mytodo",
		Short: options.Wrap80("A small offline to-do list: add, complete, mark, archive and reorder tasks from the terminal, a TUI or the browser."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addShow(topLevel)
	addGet(topLevel)
	addComplete(topLevel)
	addMark(topLevel)
	addArchive(topLevel)
	addRemove(topLevel)
	addRestore(topLevel)
	addMove(topLevel)
	addDelete(topLevel)
	addArchived(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
