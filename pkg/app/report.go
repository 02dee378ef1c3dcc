package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/mytodo/pkg/task"
)

// ReportItem captures a completed task and when it was completed.
type ReportItem struct {
	Task        *task.Task
	CompletedAt time.Time
}

// ReportSection groups completed tasks by where they live now.
type ReportSection struct {
	Name  string
	Tasks []ReportItem
}

const (
	SectionActive   = "Active"
	SectionArchived = "Archived"
)

// ReportResult encapsulates a completed-tasks report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns tasks completed between the provided bounds, active ones
// first, each section in completion order.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if err := ctx.Err(); err != nil {
		return ReportResult{}, err
	}
	if since.After(until) {
		since, until = until, since
	}

	grouped := map[string][]ReportItem{}
	total := 0
	for _, t := range s.Tasks() {
		if !t.IsCompleted || t.CompletedAt == nil {
			continue
		}
		at := t.CompletedAt.Time
		if at.Before(since) || at.After(until) {
			continue
		}
		name := SectionActive
		if t.IsArchived {
			name = SectionArchived
		}
		grouped[name] = append(grouped[name], ReportItem{Task: t, CompletedAt: at})
		total++
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	for _, name := range []string{SectionActive, SectionArchived} {
		items := grouped[name]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CompletedAt.Before(items[j].CompletedAt)
		})
		result.Sections = append(result.Sections, ReportSection{Name: name, Tasks: items})
	}
	return result, nil
}
