package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
)

// document is the on-disk layout. Fields are declared in key order so the
// encoder emits sorted keys.
type document struct {
	Projects []string        `json:"projects"`
	Sessions []model.Session `json:"sessions"`
	Tasks    []string        `json:"tasks"`
}

// Store reads and writes the single JSON data file.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Load reads the data file. A missing file yields empty collections.
// A malformed file is backed up to <path>.corrupt and also yields empty
// collections; the failure is logged, not returned. Only I/O errors other
// than "not exist" are returned.
func (s *Store) Load() (model.Data, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Empty(), nil
	}
	if err != nil {
		return model.Empty(), fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		backupPath := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backupPath); renameErr != nil {
			slog.Error("could not back up corrupt data file", "path", s.path, "err", renameErr)
		}
		slog.Error("corrupt data file, starting with empty collections",
			"path", s.path, "backup", backupPath, "err", err)
		return model.Empty(), nil
	}

	out := decode(doc)
	slog.Info("loaded data", "path", s.path,
		"projects", len(out.Projects), "tasks", len(out.Tasks), "sessions", len(out.Sessions))
	return out, nil
}

// Save overwrites the data file atomically with pretty-printed JSON.
func (s *Store) Save(d model.Data) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(encode(d), "", "    ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}

	slog.Info("saved data", "path", s.path,
		"projects", len(d.Projects), "tasks", len(d.Tasks), "sessions", len(d.Sessions))
	return nil
}

func encode(d model.Data) document {
	doc := document{
		Projects: nonNil(d.Projects),
		Sessions: d.Sessions,
		Tasks:    make([]string, 0, len(d.Tasks)),
	}
	if doc.Sessions == nil {
		doc.Sessions = []model.Session{}
	}
	for _, t := range d.Tasks {
		doc.Tasks = append(doc.Tasks, t.Key())
	}
	return doc
}

func decode(doc document) model.Data {
	out := model.Empty()
	out.Projects = append(out.Projects, doc.Projects...)
	out.Sessions = append(out.Sessions, doc.Sessions...)
	for _, key := range doc.Tasks {
		task, ok := model.ParseTaskKey(key, doc.Projects)
		if !ok {
			slog.Warn("dropping task without project", "task", key)
			continue
		}
		out.Tasks = append(out.Tasks, task)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
