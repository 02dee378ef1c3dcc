package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mytodo/pkg/app"
)

func (pp *PrettyPrint) Report(res app.ReportResult, window string) {
	pp.TitleWithCount(fmt.Sprintf("Completed in the last %s", window), res.Total)
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s – %s\n\n", res.Since.Local().Format("2006.01.02 15:04"), res.Until.Local().Format("2006.01.02 15:04"))
	if res.Total == 0 {
		pp.none()
		return
	}
	for _, section := range res.Sections {
		pp.Title(section.Name)
		table := uitable.New()
		table.MaxColWidth = uint(max(pp.width()/2, 20))
		for _, item := range section.Tasks {
			if pp.ShowID {
				table.AddRow(Short(item.Task.ID), item.CompletedAt.Local().Format("2006.01.02 15:04"), item.Task.Title)
			} else {
				table.AddRow(item.CompletedAt.Local().Format("2006.01.02 15:04"), item.Task.Title)
			}
		}
		fmt.Fprintln(pp.out(), table)
		fmt.Fprintln(pp.out())
	}
}
