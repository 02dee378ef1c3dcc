package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/task"
)

func init() {
	color.NoColor = true
}

func at(h int) task.Timestamp {
	return task.Timestamp{Time: time.Date(2024, 3, 9, h, 5, 0, 0, time.Local)}
}

func TestTasks(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 60, ShowID: true}
	done := at(10)
	pp.Tasks(
		&task.Task{ID: "0123456789abcdef", Title: "Buy milk", Memo: "two litres\nsemi", Order: 1},
		&task.Task{ID: "fedcba9876543210", Title: "Call", Order: 2, IsCompleted: true, CompletedAt: &done, IsDeleted: true},
	)
	out := buf.String()
	for _, want := range []string{"01234567", "  1 ☐ · Buy milk", "two litres", "  2 ☑ ✘ Call"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "semi") {
		t.Fatalf("only the first memo line is shown:\n%s", out)
	}
}

func TestTasksNone(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Tasks()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestArchiveDateRange(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 100}
	done := at(12)
	pp.Archive(
		&task.Task{ID: "a", Title: "Open", CreatedAt: at(9), IsArchived: true},
		&task.Task{ID: "b", Title: "Done", CreatedAt: at(9), CompletedAt: &done, IsCompleted: true, IsArchived: true},
	)
	out := buf.String()
	if !strings.Contains(out, "2024.03.09 〜 XXXX/XX/XX") || !strings.Contains(out, "2024.03.09 〜 2024.03.09") {
		t.Fatalf("unexpected archive output:\n%s", out)
	}
}

func TestDetailPlain(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 40}
	if err := pp.Detail(&task.Task{ID: "abc", Title: "T", Memo: "# heading", CreatedAt: at(9)}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "created   2024.03.09 09:05") || !strings.Contains(out, "# heading") {
		t.Fatalf("unexpected detail:\n%s", out)
	}
}

func TestDetailMarkdown(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 40, Markdown: true}
	if err := pp.Detail(&task.Task{ID: "abc", Title: "T", Memo: "some *memo* text", CreatedAt: at(9)}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "memo") {
		t.Fatalf("memo not rendered:\n%s", buf.String())
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 80}
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	pp.Report(app.ReportResult{
		Since: since, Until: since.Add(7 * 24 * time.Hour), Total: 1,
		Sections: []app.ReportSection{{Name: app.SectionActive, Tasks: []app.ReportItem{
			{Task: &task.Task{ID: "a", Title: "Ship"}, CompletedAt: since.Add(time.Hour)},
		}}},
	}, "1w")
	out := buf.String()
	for _, want := range []string{"Completed in the last 1w", "- 1 task", "Active", "Ship"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
}
