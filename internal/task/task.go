// Package task holds the task model, the mutable store that owns the
// collection, and the pure projection functions that derive the visible
// list and its statistics.
package task

import "errors"

// MaxTextLen is the longest task text accepted, counted in runes after
// trimming.
const MaxTextLen = 120

var (
	ErrEmptyText   = errors.New("task text is empty")
	ErrTextTooLong = errors.New("task text exceeds 120 characters")
)

// Task is a single actionable item. Field names track the portable JSON
// document, so a Task marshals directly into the export format.
type Task struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Completed   bool    `json:"completed"`
	Created     int64   `json:"created"` // ms since epoch
	CompletedAt *int64  `json:"completedAt"`
	Due         *string `json:"due"` // day key, nil when unset
	Order       int     `json:"order"`
}

// DueKey returns the due day key or "" when the task has none.
func (t Task) DueKey() string {
	if t.Due == nil {
		return ""
	}
	return *t.Due
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type SortMode string

const (
	SortManual    SortMode = "manual"
	SortDue       SortMode = "due"
	SortCreated   SortMode = "created"
	SortCompleted SortMode = "completed"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Prefs is the persisted user state. It survives restarts; missing keys
// in stored JSON keep their defaults.
type Prefs struct {
	Theme Theme    `json:"theme"`
	Sort  SortMode `json:"sort"`
}

func DefaultPrefs() Prefs {
	return Prefs{Theme: ThemeLight, Sort: SortCreated}
}
