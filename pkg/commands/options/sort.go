package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/mytodo/pkg/view"
)

// SortOptions
type SortOptions struct {
	Sort string
}

// sortValue rejects unknown modes while flags are parsed.
type sortValue struct{ s *string }

var _ pflag.Value = sortValue{}

func (v sortValue) String() string {
	if v.s == nil {
		return ""
	}
	return *v.s
}

func (v sortValue) Set(s string) error {
	m, err := view.ParseSortMode(s)
	if err != nil {
		return err
	}
	*v.s = m.String()
	return nil
}

func (sortValue) Type() string { return "mode" }

func AddSortArgs(cmd *cobra.Command, o *SortOptions) {
	cmd.Flags().VarP(sortValue{&o.Sort}, "sort", "s",
		fmt.Sprintf("Sort the active list by one of: %s. Defaults to the configured sort.", strings.Join(view.SortModes(), ", ")))
	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return view.SortModes(), cobra.ShellCompDirectiveNoFileComp
	})
}

// Mode parses the flag, falling back to the configured default.
func (o *SortOptions) Mode(configured string) (view.SortMode, error) {
	if o.Sort != "" {
		return view.ParseSortMode(o.Sort)
	}
	return view.ParseSortMode(configured)
}
