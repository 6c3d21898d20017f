package task

import (
	"math"
	"sort"
	"strings"

	"taskm/internal/dateutil"
)

// SortTasks returns a new, stably sorted sequence; the input is not
// touched. Unrecognized modes fall back to manual order.
func SortTasks(tasks []Task, mode SortMode) []Task {
	out := append([]Task(nil), tasks...)
	switch mode {
	case SortDue:
		// Tasks without a due date sort after every dated task.
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := dueOrMax(out[i]), dueOrMax(out[j])
			if di != dj {
				return di < dj
			}
			return out[i].Order < out[j].Order
		})
	case SortCreated:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Created > out[j].Created
		})
	case SortCompleted:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Completed != out[j].Completed {
				return !out[i].Completed
			}
			return out[i].Order < out[j].Order
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Order < out[j].Order
		})
	}
	return out
}

func dueOrMax(t Task) string {
	if t.Due == nil {
		return dateutil.MaxKey
	}
	return *t.Due
}

// FilterTasks keeps tasks passing the filter mode whose text contains
// search case-insensitively. Empty search passes everything. Compose
// with SortTasks as filter-then-sort.
func FilterTasks(tasks []Task, filter Filter, search string) []Task {
	q := strings.ToLower(search)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter == FilterActive && t.Completed {
			continue
		}
		if filter == FilterCompleted && !t.Completed {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Text), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Summary is the derived statistics block shown under the list.
type Summary struct {
	Total     int
	Active    int
	Completed int
	Percent   int // rounded, 0 when Total is 0
	Overdue   int // incomplete with due strictly before today
}

func Stats(tasks []Task, todayKey string) Summary {
	var s Summary
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			if t.Due != nil && *t.Due < todayKey {
				s.Overdue++
			}
		}
	}
	s.Active = s.Total - s.Completed
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
