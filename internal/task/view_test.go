package task

import "testing"

func key(s string) *string { return &s }

func TestSortTasksByDue(t *testing.T) {
	tasks := []Task{
		{ID: "undated", Order: 0},
		{ID: "late", Due: key("2024-06-20"), Order: 1},
		{ID: "early", Due: key("2024-06-01"), Order: 2},
		{ID: "tie", Due: key("2024-06-01"), Order: 1},
	}
	got := SortTasks(tasks, SortDue)
	want := []string{"tie", "early", "late", "undated"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("pos %d = %s, want %s", i, got[i].ID, id)
		}
	}
	// Absent due sorts last regardless of order field.
	if got[len(got)-1].ID != "undated" {
		t.Error("undated task did not sort last")
	}
	// Input untouched.
	if tasks[0].ID != "undated" {
		t.Error("SortTasks mutated its input")
	}
}

func TestSortTasksByCreated(t *testing.T) {
	tasks := []Task{
		{ID: "old", Created: 100},
		{ID: "new", Created: 300},
		{ID: "mid", Created: 200},
	}
	got := SortTasks(tasks, SortCreated)
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("pos %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSortTasksByCompleted(t *testing.T) {
	tasks := []Task{
		{ID: "done2", Completed: true, Order: 3},
		{ID: "todo1", Order: 2},
		{ID: "done1", Completed: true, Order: 0},
		{ID: "todo0", Order: 1},
	}
	got := SortTasks(tasks, SortCompleted)
	want := []string{"todo0", "todo1", "done1", "done2"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("pos %d = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSortTasksManualAndUnknownMode(t *testing.T) {
	tasks := []Task{
		{ID: "b", Order: 1},
		{ID: "a", Order: 0},
		{ID: "c", Order: 2},
	}
	for _, mode := range []SortMode{SortManual, SortMode("bogus"), SortMode("")} {
		got := SortTasks(tasks, mode)
		want := []string{"a", "b", "c"}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("mode %q pos %d = %s, want %s", mode, i, got[i].ID, id)
			}
		}
	}
}

func TestFilterTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: "Send invoice", Completed: true},
		{ID: "3", Text: "buy stamps"},
	}
	if got := FilterTasks(tasks, FilterAll, ""); len(got) != 3 {
		t.Errorf("all: %d, want 3", len(got))
	}
	if got := FilterTasks(tasks, FilterActive, ""); len(got) != 2 {
		t.Errorf("active: %d, want 2", len(got))
	}
	if got := FilterTasks(tasks, FilterCompleted, ""); len(got) != 1 {
		t.Errorf("completed: %d, want 1", len(got))
	}
	// Search is a case-insensitive substring match.
	if got := FilterTasks(tasks, FilterAll, "BUY"); len(got) != 2 {
		t.Errorf("search BUY: %d, want 2", len(got))
	}
	if got := FilterTasks(tasks, FilterActive, "buy"); len(got) != 2 {
		t.Errorf("active+buy: %d, want 2", len(got))
	}
	if got := FilterTasks(tasks, FilterAll, "xyz"); len(got) != 0 {
		t.Errorf("search xyz: %d, want 0", len(got))
	}
}

func TestStats(t *testing.T) {
	today := "2024-06-10"
	tasks := []Task{
		{ID: "1", Completed: true},
		{ID: "2", Due: key("2024-06-09")},                  // overdue
		{ID: "3", Due: key("2024-06-09"), Completed: true}, // completed, never overdue
		{ID: "4", Due: key("2024-06-10")},                  // due today is not overdue
		{ID: "5"},
	}
	s := Stats(tasks, today)
	if s.Total != 5 || s.Active != 3 || s.Completed != 2 {
		t.Errorf("counts = %+v", s)
	}
	if s.Percent != 40 {
		t.Errorf("percent = %d, want 40", s.Percent)
	}
	if s.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", s.Overdue)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil, "2024-06-10")
	if s.Percent != 0 || s.Total != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestStatsRounding(t *testing.T) {
	tasks := []Task{
		{Completed: true}, {}, {},
	}
	if got := Stats(tasks, "2024-06-10").Percent; got != 33 {
		t.Errorf("1/3 percent = %d, want 33", got)
	}
	tasks = []Task{
		{Completed: true}, {Completed: true}, {},
	}
	if got := Stats(tasks, "2024-06-10").Percent; got != 67 {
		t.Errorf("2/3 percent = %d, want 67", got)
	}
}
