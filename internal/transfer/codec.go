// Package transfer exports and imports task collections as JSON and renders
// the paginated text report.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/existflow/taskpad/internal/logger"
	"github.com/existflow/taskpad/internal/model"
	"github.com/existflow/taskpad/internal/store"
)

// ExportFileName is the fixed name of a JSON export
const ExportFileName = "tasks.json"

// Collection is the store surface the codec needs
type Collection interface {
	Snapshot() []model.Task
	ReplaceAll(ctx context.Context, tasks []model.Task) error
}

// Codec moves whole task collections in and out of a Collection
type Codec struct {
	tasks Collection
	log   *logger.Logger
}

// NewCodec creates a codec over tasks
func NewCodec(tasks Collection) *Codec {
	return &Codec{
		tasks: tasks,
		log:   logger.WithFields(logger.F("component", "transfer")),
	}
}

// Encode renders tasks as an indented JSON array
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses raw as a JSON array of task records. Any other shape yields
// a *store.ImportError.
func Decode(raw []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &store.ImportError{Index: -1, Reason: "file is empty"}
	}
	if trimmed[0] != '[' {
		return nil, &store.ImportError{Index: -1, Reason: "expected a JSON array of tasks"}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &store.ImportError{Index: -1, Reason: "malformed JSON", Err: err}
	}

	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		rec = bytes.TrimSpace(rec)
		if len(rec) == 0 || rec[0] != '{' {
			return nil, &store.ImportError{Index: i, Reason: "expected a task object"}
		}
		var t model.Task
		if err := json.Unmarshal(rec, &t); err != nil {
			return nil, &store.ImportError{Index: i, Reason: "malformed task", Err: err}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Export writes the full collection to w
func (c *Codec) Export(w io.Writer) error {
	data, err := Encode(c.tasks.Snapshot())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportFile writes tasks.json into dir and returns its path
func (c *Codec) ExportFile(dir string) (string, error) {
	var buf bytes.Buffer
	if err := c.Export(&buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName)
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}

	c.log.Info("Tasks exported", logger.F("path", path))
	return path, nil
}

// Import replaces the whole collection with the tasks in raw. It is a
// destructive replace, not a merge; on any error nothing changes.
func (c *Codec) Import(ctx context.Context, raw []byte) error {
	tasks, err := Decode(raw)
	if err != nil {
		return err
	}
	if err := c.tasks.ReplaceAll(ctx, tasks); err != nil {
		return err
	}

	c.log.Info("Tasks imported", logger.F("tasks", len(tasks)))
	return nil
}

// ReadImportFile reads an import payload from disk
func ReadImportFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &store.ImportError{Index: -1, Reason: "cannot read " + filepath.Base(path), Err: err}
	}
	return raw, nil
}

// ImportFile reads path and imports its contents
func (c *Codec) ImportFile(ctx context.Context, path string) error {
	raw, err := ReadImportFile(path)
	if err != nil {
		return err
	}
	return c.Import(ctx, raw)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
