// Package ordering maintains the manual order of active tasks.
package ordering

import "tableflip.dev/mytodo/pkg/task"

// NextOrder is one past the highest order among active tasks, or 1.
func NextOrder(tasks []*task.Task) int {
	return maxActive(tasks) + 1
}

// Reorder moves the active task movedID to targetOrder, shifting the tasks
// in between by one. It reports whether anything changed. Unknown or archived
// ids, an unchanged position and targets outside 1..max are ignored.
func Reorder(tasks []*task.Task, movedID string, targetOrder int) bool {
	moved := task.Find(tasks, movedID)
	if moved == nil || moved.IsArchived {
		return false
	}
	from := moved.Order
	if from == targetOrder || targetOrder < 1 || targetOrder > maxActive(tasks) {
		return false
	}

	for _, t := range tasks {
		if t.IsArchived || t == moved {
			continue
		}
		switch {
		case from < targetOrder && t.Order > from && t.Order <= targetOrder:
			t.Order--
		case from > targetOrder && t.Order >= targetOrder && t.Order < from:
			t.Order++
		}
	}
	moved.Order = targetOrder
	return true
}

// Dense reports whether the active orders are exactly 1..N.
func Dense(tasks []*task.Task) bool {
	seen := make(map[int]bool)
	n := 0
	for _, t := range tasks {
		if t.IsArchived {
			continue
		}
		n++
		if seen[t.Order] {
			return false
		}
		seen[t.Order] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

func maxActive(tasks []*task.Task) int {
	max := 0
	for _, t := range tasks {
		if !t.IsArchived && t.Order > max {
			max = t.Order
		}
	}
	return max
}
