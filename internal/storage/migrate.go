package storage

import (
	"time"

	"github.com/google/uuid"

	"taskm/internal/dateutil"
	"taskm/internal/task"
)

func migrateAll(records []map[string]any) []task.Task {
	tasks := make([]task.Task, 0, len(records))
	for i, rec := range records {
		tasks = append(tasks, MigrateRecord(rec, i))
	}
	return tasks
}

// MigrateRecord repairs one stored record into the current task shape.
// It is applied to every loaded record, current-version or legacy, so
// partially malformed data survives instead of being rejected. Import
// uses the same rule. position supplies the order default.
func MigrateRecord(raw map[string]any, position int) task.Task {
	var t task.Task

	if id, ok := raw["id"].(string); ok && id != "" {
		t.ID = id
	} else {
		t.ID = uuid.NewString()
	}
	if text, ok := raw["text"].(string); ok {
		t.Text = text
	}
	t.Completed = truthy(raw["completed"])
	if ms, ok := asInt64(raw["created"]); ok && ms != 0 {
		t.Created = ms
	} else {
		t.Created = time.Now().UnixMilli()
	}
	if v, present := raw["completedAt"]; present {
		if ms, ok := asInt64(v); ok {
			t.CompletedAt = &ms
		}
	} else if t.Completed {
		now := time.Now().UnixMilli()
		t.CompletedAt = &now
	}
	switch due := raw["due"].(type) {
	case string:
		if dateutil.IsValidKey(due) {
			t.Due = &due
		}
	case float64:
		// Pre-v3 records stored due as a millisecond timestamp.
		key := dateutil.DayKey(int64(due))
		t.Due = &key
	}
	if n, ok := asInt64(raw["order"]); ok {
		t.Order = int(n)
	} else {
		t.Order = position
	}
	return t
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}

// truthy mirrors the loose boolean coercion the stored format grew up
// with: null, false, 0, and "" are false, everything else is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}
