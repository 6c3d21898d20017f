// Package storage persists the task collection and preferences as JSON
// blobs in a small sqlite key-value table. Anything unreadable -- a
// missing key, invalid JSON, a failed query -- is treated as "nothing
// stored"; durable state is advisory, the in-memory copy is
// authoritative.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskm/internal/logging"
	"taskm/internal/task"
)

// Storage keys. TasksKeyLegacy is read-only: records found under it are
// migrated and re-saved under TasksKey on first load.
const (
	TasksKey       = "taskmpro.tasks.v3"
	TasksKeyLegacy = "taskmpro.tasks.v2"
	PrefsKey       = "taskmpro.prefs.v1"
)

type Gateway struct {
	db *sql.DB
}

func Open(dbPath string) (*Gateway, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	g := &Gateway{db: db}
	if err := g.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

func (g *Gateway) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := g.db.Exec(ddl)
	return err
}

// Load reads the stored collection and preferences. When only the
// legacy key is present, every record is migrated and the result is
// written back under the current key immediately. Load never fails:
// unreadable state degrades to an empty collection and default prefs.
func (g *Gateway) Load() ([]task.Task, task.Prefs) {
	return g.loadTasks(), g.loadPrefs()
}

func (g *Gateway) loadTasks() []task.Task {
	raw, ok := g.get(TasksKey)
	if ok {
		var records []map[string]any
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			logging.Info("storage", "stored tasks unreadable, starting empty: %v", err)
			return nil
		}
		return migrateAll(records)
	}

	raw, ok = g.get(TasksKeyLegacy)
	if !ok {
		return nil
	}
	var records []map[string]any
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logging.Info("storage", "legacy tasks unreadable, starting empty: %v", err)
		return nil
	}
	tasks := migrateAll(records)
	// Re-save under the current key so the legacy one is never read again.
	if data, err := json.Marshal(tasks); err == nil {
		if err := g.put(TasksKey, string(data)); err != nil {
			logging.Info("storage", "legacy re-save failed: %v", err)
		}
	}
	logging.Debug("storage", "migrated %d legacy records", len(tasks))
	return tasks
}

func (g *Gateway) loadPrefs() task.Prefs {
	prefs := task.DefaultPrefs()
	raw, ok := g.get(PrefsKey)
	if !ok {
		return prefs
	}
	// Unmarshal over the defaults: missing keys keep their default.
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logging.Info("storage", "stored prefs unreadable, using defaults: %v", err)
		return task.DefaultPrefs()
	}
	return prefs
}

// Save writes both blobs. A failure on one does not stop the other; the
// first error is returned for the caller to log.
func (g *Gateway) Save(tasks []task.Task, prefs task.Prefs) error {
	var first error
	if data, err := json.Marshal(tasks); err != nil {
		first = err
	} else if err := g.put(TasksKey, string(data)); err != nil {
		first = err
	}
	if data, err := json.Marshal(prefs); err != nil {
		if first == nil {
			first = err
		}
	} else if err := g.put(PrefsKey, string(data)); err != nil {
		if first == nil {
			first = err
		}
	}
	return first
}

func (g *Gateway) get(key string) (string, bool) {
	var value string
	err := g.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logging.Info("storage", "read %s failed: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (g *Gateway) put(key, value string) error {
	_, err := g.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
