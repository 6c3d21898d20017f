package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"taskm/internal/dateutil"
	"taskm/internal/logging"
)

// Persister writes a snapshot of the collection and preferences to
// durable storage. The in-memory state is authoritative; a failed write
// is logged and otherwise ignored.
type Persister interface {
	Save(tasks []Task, prefs Prefs) error
}

// Store owns the only mutable copy of the task collection. All mutation
// goes through its methods; every successful mutation persists
// best-effort. Callers get copies, never the backing slice.
type Store struct {
	tasks []Task
	prefs Prefs
	saver Persister
}

func NewStore(tasks []Task, prefs Prefs, saver Persister) *Store {
	return &Store{tasks: tasks, prefs: prefs, saver: saver}
}

// Tasks returns a snapshot copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Prefs() Prefs { return s.prefs }

// Add appends a new task. Invalid text is rejected; an invalid due key
// is dropped silently and the task is created without one.
func (s *Store) Add(text, due string) (Task, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Task{}, ErrEmptyText
	}
	if len([]rune(trimmed)) > MaxTextLen {
		return Task{}, ErrTextTooLong
	}
	t := Task{
		ID:      uuid.NewString(),
		Text:    trimmed,
		Created: time.Now().UnixMilli(),
		Order:   s.nextOrder(),
	}
	if dateutil.IsValidKey(due) {
		t.Due = &due
	}
	s.tasks = append(s.tasks, t)
	s.persist()
	return t, nil
}

// Toggle flips completion and stamps or clears completedAt. Unknown ids
// are ignored.
func (s *Store) Toggle(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		now := time.Now().UnixMilli()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	s.persist()
}

func (s *Store) Remove(id string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist()
}

// ClearCompleted removes every completed task. Does nothing, including
// no persist, when none are completed.
func (s *Store) ClearCompleted() {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		return
	}
	s.tasks = kept
	s.persist()
}

// EditText replaces a task's text. An edit that trims to empty deletes
// the task instead of saving it empty; overlong text is truncated.
func (s *Store) EditText(id, text string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		s.Remove(id)
		return
	}
	if r := []rune(trimmed); len(r) > MaxTextLen {
		trimmed = string(r[:MaxTextLen])
	}
	s.tasks[i].Text = trimmed
	s.persist()
}

// EditDue sets or clears a task's due key. Anything that is not a valid
// day key clears it.
func (s *Store) EditDue(id, due string) {
	i := s.index(id)
	if i < 0 {
		return
	}
	if dateutil.IsValidKey(due) {
		s.tasks[i].Due = &due
	} else {
		s.tasks[i].Due = nil
	}
	s.persist()
}

// Reorder moves srcID immediately before targetID within the currently
// displayed sort order, renumbers every task's order to its index in
// that sequence, and forces the sort preference to manual -- a manual
// move only has a stable effect under manual sort. Unknown or equal ids
// are ignored.
func (s *Store) Reorder(srcID, targetID string) {
	if srcID == targetID {
		return
	}
	arr := SortTasks(s.tasks, s.prefs.Sort)
	si, ti := -1, -1
	for i, t := range arr {
		switch t.ID {
		case srcID:
			si = i
		case targetID:
			ti = i
		}
	}
	if si < 0 || ti < 0 {
		return
	}
	moved := arr[si]
	arr = append(arr[:si], arr[si+1:]...)
	if si < ti {
		ti--
	}
	arr = append(arr[:ti], append([]Task{moved}, arr[ti:]...)...)
	for i := range arr {
		arr[i].Order = i
	}
	s.tasks = arr
	s.prefs.Sort = SortManual
	s.persist()
}

// Append adds already-formed tasks (an import result) to the collection.
func (s *Store) Append(tasks []Task) {
	if len(tasks) == 0 {
		return
	}
	s.tasks = append(s.tasks, tasks...)
	s.persist()
}

func (s *Store) SetTheme(theme Theme) {
	s.prefs.Theme = theme
	s.persist()
}

func (s *Store) SetSort(mode SortMode) {
	s.prefs.Sort = mode
	s.persist()
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextOrder() int {
	if len(s.tasks) == 0 {
		return 0
	}
	max := s.tasks[0].Order
	for _, t := range s.tasks[1:] {
		if t.Order > max {
			max = t.Order
		}
	}
	return max + 1
}

func (s *Store) persist() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.Tasks(), s.prefs); err != nil {
		logging.Info("store", "save failed: %v", err)
	}
}
