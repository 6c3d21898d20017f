package task

import "taskm/internal/dateutil"

// ComputeStreak counts consecutive calendar days, ending at today (or
// yesterday, when nothing is completed yet today), on which at least one
// task was completed. Days are keyed in the reference timezone; prev
// maps a day key to the preceding one.
func ComputeStreak(tasks []Task, todayKey string, prev func(string) string) int {
	days := make(map[string]struct{})
	for _, t := range tasks {
		if t.CompletedAt != nil {
			days[dateutil.DayKey(*t.CompletedAt)] = struct{}{}
		}
	}
	if len(days) == 0 {
		return 0
	}
	cursor := todayKey
	if _, ok := days[cursor]; !ok {
		cursor = prev(cursor)
	}
	if _, ok := days[cursor]; !ok {
		return 0
	}
	streak := 0
	for {
		if _, ok := days[cursor]; !ok {
			return streak
		}
		streak++
		cursor = prev(cursor)
	}
}
