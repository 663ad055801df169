// Package store owns the persisted collections of users and tasks.
//
// The backing file is a single JSON document with two top-level arrays,
// "users" and "tasks". A missing or empty file is treated as an empty
// database. Numeric status/priority values outside the known range are
// loaded as-is; Validate surfaces them as warnings without rejecting the
// document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File holds the in-memory database and remembers where it was loaded from.
type File struct {
	Path  string `json:"-"`
	Users []User `json:"users"`
	Tasks []Task `json:"tasks"`
}

// Load reads the data file at path. A missing or zero-length file yields an
// empty database rather than an error. Tasks persisted without an ID (files
// written by older versions) are assigned one during load.
func Load(path string) (*File, error) {
	f := &File{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}

	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}

	for i := range f.Tasks {
		if f.Tasks[i].ID == "" {
			f.Tasks[i].ID = uuid.NewString()
		}
	}

	return f, nil
}

// Save writes the database back to its path with 2-space indentation,
// creating the containing directory if needed. The write is a wholesale
// replacement of the previous contents.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// UserByName returns the user with the given username, or nil.
func (f *File) UserByName(username string) *User {
	for i := range f.Users {
		if f.Users[i].Username == username {
			return &f.Users[i]
		}
	}
	return nil
}

// TaskByID returns the task with the given ID, or nil.
func (f *File) TaskByID(id string) *Task {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			return &f.Tasks[i]
		}
	}
	return nil
}

// AddTask appends a task, assigning an ID if it has none.
func (f *File) AddTask(task Task) Task {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	f.Tasks = append(f.Tasks, task)
	return task
}

// SetTaskStatus updates the status of the task with the given ID.
func (f *File) SetTaskStatus(id string, status Status) error {
	t := f.TaskByID(id)
	if t == nil {
		return fmt.Errorf("task %q not found", id)
	}
	t.Status = status
	return nil
}

// UpdateTask applies updater to the task with the given ID.
func (f *File) UpdateTask(id string, updater func(*Task)) error {
	t := f.TaskByID(id)
	if t == nil {
		return fmt.Errorf("task %q not found", id)
	}
	updater(t)
	return nil
}

// DeleteTask removes the task with the given ID. Later tasks shift down one
// position.
func (f *File) DeleteTask(id string) error {
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %q not found", id)
}
