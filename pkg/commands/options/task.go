package options

import (
	"github.com/spf13/cobra"
)

// TaskOptions holds the editable fields of a task.
type TaskOptions struct {
	Title string
	Memo  string
}

func AddMemoArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Memo, "memo", "m", "",
		Wrap80("Free-form note kept with the task. Markdown is rendered by `show --markdown`."))
}

func AddTitleArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"New title for the task.")
}

// TitleChanged and MemoChanged report whether the flag was given at all, so
// an explicit empty memo can clear it.
func (o *TaskOptions) TitleChanged(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("title") {
		return nil
	}
	return &o.Title
}

func (o *TaskOptions) MemoChanged(cmd *cobra.Command) *string {
	if !cmd.Flags().Changed("memo") {
		return nil
	}
	return &o.Memo
}
