package store

// SortedByDueDate returns a copy of tasks ordered ascending by due date.
// Dates are YYYY-MM-DD strings, so plain string comparison is date order.
func SortedByDueDate(tasks []Task) []Task {
	return bubbleSort(tasks, func(a, b Task) bool { return a.DueDate > b.DueDate })
}

// SortedByStartDate returns a copy of tasks ordered ascending by start date.
func SortedByStartDate(tasks []Task) []Task {
	return bubbleSort(tasks, func(a, b Task) bool { return a.StartDate > b.StartDate })
}

// bubbleSort sorts a copy of tasks with adjacent swaps, stopping early once
// a full pass makes no swap. outOfOrder reports whether a must come after b.
// Swapping only on strict inequality keeps the sort stable.
func bubbleSort(tasks []Task, outOfOrder func(a, b Task) bool) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	for i := 0; i < len(sorted)-1; i++ {
		swapped := false
		for j := 0; j < len(sorted)-i-1; j++ {
			if outOfOrder(sorted[j], sorted[j+1]) {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return sorted
}
