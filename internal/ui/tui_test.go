package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasky/internal/config"
	"tasky/internal/store"
)

func modelWithData(t *testing.T, tasks []store.Task, users []store.User) *tuiModel {
	t.Helper()
	dataFile := filepath.Join(t.TempDir(), "data.json")
	db := &store.File{Path: dataFile, Users: users, Tasks: tasks}
	if err := db.Save(); err != nil {
		t.Fatal(err)
	}
	m := newTUIModel(&config.Config{DataFile: dataFile})
	m.refresh()
	return m
}

func TestViewShowsOverviewAndTasks(t *testing.T) {
	m := modelWithData(t,
		[]store.Task{
			{ID: "1", Username: "alice", Title: "Report", Status: store.StatusTodo, DueDate: "2024-02-01"},
			{ID: "2", Username: "bob", Title: "Cleanup", Status: store.StatusCompleted},
		},
		[]store.User{{Username: "alice"}, {Username: "bob"}},
	)

	got := m.View()
	for _, want := range []string{
		"Tasky Dashboard",
		"Todo: 1  In Progress: 0  Completed: 1  Users: 2",
		"[alice] Report (due 2024-02-01)",
		"x [bob] Cleanup",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in view:\n%s", want, got)
		}
	}
}

func TestViewFilter(t *testing.T) {
	m := modelWithData(t,
		[]store.Task{
			{ID: "1", Username: "alice", Title: "Open", Status: store.StatusTodo},
			{ID: "2", Username: "alice", Title: "Closed", Status: store.StatusCompleted},
		}, nil)
	m.filter = store.StatusCompleted

	got := m.View()
	if strings.Contains(got, "Open") {
		t.Errorf("filtered-out task visible:\n%s", got)
	}
	if !strings.Contains(got, "Closed") {
		t.Errorf("matching task missing:\n%s", got)
	}
	if !strings.Contains(got, "Filter: COMPLETED") {
		t.Errorf("filter indicator missing:\n%s", got)
	}
}

func TestViewLoadError(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")
	m := modelWithData(t, nil, nil)
	// Point at a file with invalid JSON and refresh.
	m.cfg.DataFile = dataFile
	writeBadFile(t, dataFile)
	m.refresh()

	got := m.View()
	if !strings.Contains(got, "Error loading data file") {
		t.Errorf("missing load error in view:\n%s", got)
	}
}

func TestViewHelpScreen(t *testing.T) {
	m := modelWithData(t, nil, nil)
	m.showHelp = true

	got := m.View()
	if !strings.Contains(got, "Keyboard Shortcuts") {
		t.Errorf("missing help in view:\n%s", got)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}

func writeBadFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
}
