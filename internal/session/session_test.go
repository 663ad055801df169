package session

import (
	"errors"
	"testing"

	"tasky/internal/store"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(&store.File{})
}

func loggedIn(t *testing.T, username string) *Manager {
	t.Helper()
	m := newManager(t)
	if err := m.Register(store.User{Username: username, Password: "pw"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return m
}

func TestRegisterDuplicateUsername(t *testing.T) {
	m := newManager(t)

	if err := m.Register(store.User{Username: "alice", Password: "one"}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if !m.LoggedIn() {
		t.Error("expected registration to start a session")
	}

	err := m.Register(store.User{Username: "alice", Password: "two"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register: got %v, want ErrUserExists", err)
	}
	if got := len(m.db.Users); got != 1 {
		t.Errorf("user count: got %d, want 1", got)
	}
}

func TestLogin(t *testing.T) {
	m := newManager(t)
	m.db.Users = []store.User{{Username: "alice", Password: "secret"}}

	tests := []struct {
		name      string
		candidate store.User
		wantErr   error
	}{
		{"exact match", store.User{Username: "alice", Password: "secret"}, nil},
		{"wrong password", store.User{Username: "alice", Password: "wrong"}, ErrInvalidCredentials},
		{"unknown user", store.User{Username: "carol", Password: "secret"}, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.Logout()
			err := m.Login(tt.candidate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login: got %v, want %v", err, tt.wantErr)
			}
			if (err == nil) != m.LoggedIn() {
				t.Errorf("LoggedIn: got %v after err %v", m.LoggedIn(), err)
			}
		})
	}
}

func TestAddTaskAssignsOwner(t *testing.T) {
	m := loggedIn(t, "alice")

	added, err := m.AddTask(store.Task{Title: "Report", Username: "mallory"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if added.Username != "alice" {
		t.Errorf("owner: got %q, want alice", added.Username)
	}
	if added.ID == "" {
		t.Error("expected a task ID")
	}
}

func TestAddTaskRequiresSession(t *testing.T) {
	m := newManager(t)
	_, err := m.AddTask(store.Task{Title: "Orphan"})
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("AddTask: got %v, want ErrNotLoggedIn", err)
	}
	if len(m.db.Tasks) != 0 {
		t.Error("task stored without a session")
	}
}

func TestListAllFiltersByOwner(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "a1", Username: "alice", Title: "Mine"},
		{ID: "b1", Username: "bob", Title: "Not mine"},
		{ID: "a2", Username: "alice", Title: "Also mine"},
	}

	entries := m.ListAll()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Task.Username != "alice" {
			t.Errorf("entry owned by %q leaked into alice's list", e.Task.Username)
		}
	}
	// Positions are positions in the full collection.
	if entries[0].Position != 0 || entries[1].Position != 2 {
		t.Errorf("positions: got %d,%d, want 0,2", entries[0].Position, entries[1].Position)
	}
}

func TestListByStatusGroups(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "1", Username: "alice", Title: "c", Status: store.StatusCompleted},
		{ID: "2", Username: "alice", Title: "t1", Status: store.StatusTodo},
		{ID: "3", Username: "bob", Title: "other", Status: store.StatusTodo},
		{ID: "4", Username: "alice", Title: "t2", Status: store.StatusTodo},
	}

	groups := m.ListByStatus()
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if got := len(groups[0].Entries); got != 2 {
		t.Errorf("todo group: got %d entries, want 2", got)
	}
	if groups[0].Entries[0].Task.Title != "t1" || groups[0].Entries[1].Task.Title != "t2" {
		t.Error("todo group lost relative order")
	}
	if got := len(groups[2].Entries); got != 1 {
		t.Errorf("completed group: got %d entries, want 1", got)
	}
}

func TestListByPriorityGroups(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "1", Username: "alice", Priority: store.PriorityLow},
		{ID: "2", Username: "alice", Priority: store.PriorityUrgent},
	}

	groups := m.ListByPriority()
	if len(groups) != 4 {
		t.Fatalf("got %d groups, want 4", len(groups))
	}
	if len(groups[0].Entries) != 1 || groups[0].Entries[0].Task.ID != "2" {
		t.Errorf("urgent group: got %+v", groups[0].Entries)
	}
	if len(groups[3].Entries) != 1 || groups[3].Entries[0].Task.ID != "1" {
		t.Errorf("low group: got %+v", groups[3].Entries)
	}
}

func TestSortByDueDateOrder(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "1", Username: "alice", DueDate: "2024-03-01"},
		{ID: "2", Username: "alice", DueDate: "2024-01-10"},
		{ID: "3", Username: "alice", DueDate: "2024-02-15"},
	}

	sorted := m.SortByDueDate()
	want := []string{"2024-01-10", "2024-02-15", "2024-03-01"}
	for i, w := range want {
		if sorted[i].DueDate != w {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].DueDate, w)
		}
	}
}

func TestSortByDateIncludesAllOwners(t *testing.T) {
	// Sorting deliberately spans every owner while listing does not; the
	// display layer filters afterwards. Pinned here so the asymmetry is a
	// conscious choice, not an accident.
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "b1", Username: "bob", DueDate: "2024-01-01"},
		{ID: "a1", Username: "alice", DueDate: "2024-02-01"},
	}

	sorted := m.SortByDueDate()
	if len(sorted) != 2 {
		t.Fatalf("got %d tasks, want 2 (all owners)", len(sorted))
	}
	if sorted[0].Username != "bob" {
		t.Errorf("first sorted task: got owner %q, want bob", sorted[0].Username)
	}

	own := m.OwnEntries(sorted)
	if len(own) != 1 || own[0].Task.ID != "a1" {
		t.Errorf("OwnEntries over sorted: got %+v, want just a1", own)
	}
}

func TestSelectBounds(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "t0", Title: "zero"},
		{ID: "t1", Title: "one"},
	}

	tests := []struct {
		index   int
		wantID  string
		wantErr bool
	}{
		{0, "t0", false},
		{1, "t1", false},
		{-1, "", true},
		{2, "", true}, // == size: tolerated by the bound check, fails resolution
		{3, "", true},
	}

	for _, tt := range tests {
		task, err := m.Select(tt.index)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTaskID) {
				t.Errorf("Select(%d): got %v, want ErrInvalidTaskID", tt.index, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Select(%d) failed: %v", tt.index, err)
			continue
		}
		if task.ID != tt.wantID {
			t.Errorf("Select(%d): got %s, want %s", tt.index, task.ID, tt.wantID)
		}
	}
}

func TestCompleteUpdateDelete(t *testing.T) {
	m := loggedIn(t, "alice")
	m.db.Tasks = []store.Task{
		{ID: "t0", Title: "zero", Status: store.StatusTodo},
		{ID: "t1", Title: "one", Status: store.StatusTodo},
		{ID: "t2", Title: "two", Status: store.StatusTodo},
	}

	if err := m.Complete("t0"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if m.db.Tasks[0].Status != store.StatusCompleted {
		t.Errorf("Status: got %v, want COMPLETED", m.db.Tasks[0].Status)
	}

	if err := m.Update("t1", func(task *store.Task) { task.Title = "renamed" }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if m.db.Tasks[1].Title != "renamed" {
		t.Errorf("Title: got %q, want renamed", m.db.Tasks[1].Title)
	}

	if err := m.Delete("t1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(m.db.Tasks) != 2 || m.db.Tasks[1].ID != "t2" {
		t.Errorf("after delete: got %+v", m.db.Tasks)
	}

	// A remembered ID survives deletes of other tasks.
	if err := m.Complete("t2"); err != nil {
		t.Errorf("Complete(t2) after delete failed: %v", err)
	}

	if err := m.Delete("missing"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("Delete(missing): got %v, want ErrInvalidTaskID", err)
	}
}
