// Package transfer encodes and decodes the portable task document used
// for export and import.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"taskm/internal/storage"
	"taskm/internal/task"
)

// Version is the portable document version.
const Version = 2

var ErrBadFormat = errors.New("import document is malformed")

// Document is the portable representation: every task field verbatim.
type Document struct {
	Version int         `json:"version"`
	Tasks   []task.Task `json:"tasks"`
}

func Export(tasks []task.Task) Document {
	if tasks == nil {
		// The tasks field is always a list on the wire, even when empty.
		tasks = []task.Task{}
	}
	return Document{Version: Version, Tasks: tasks}
}

// Encode renders the export document as indented JSON.
func Encode(tasks []task.Task) ([]byte, error) {
	return json.MarshalIndent(Export(tasks), "", "  ")
}

// Import decodes an untrusted document and returns the tasks to append.
// Each record goes through the same repair rule as stored data; records
// whose id already exists are dropped, so import never overwrites.
// Returns ErrBadFormat when the payload is not JSON or tasks is not a
// list; no partial result is produced in that case.
func Import(data []byte, existing []task.Task) ([]task.Task, error) {
	var doc struct {
		Tasks json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if len(doc.Tasks) == 0 || string(doc.Tasks) == "null" {
		return nil, fmt.Errorf("%w: missing tasks list", ErrBadFormat)
	}
	var records []map[string]any
	if err := json.Unmarshal(doc.Tasks, &records); err != nil {
		return nil, fmt.Errorf("%w: tasks is not a list", ErrBadFormat)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
	}
	var out []task.Task
	for i, rec := range records {
		t := storage.MigrateRecord(rec, i)
		if _, dup := seen[t.ID]; dup {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ExportFile writes the portable document to path.
func ExportFile(path string, tasks []task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportFile reads a portable document from path. See Import.
func ImportFile(path string, existing []task.Task) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Import(data, existing)
}
