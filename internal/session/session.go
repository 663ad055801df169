// Package session applies the business rules of the task manager on top of
// a loaded store: registration, login, and the current user's task
// operations.
package session

import (
	"errors"

	"tasky/internal/store"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidTaskID      = errors.New("invalid task ID")
)

// Entry pairs a task with its position in the slice it was listed from.
// Positions are what the menus display and what Select resolves.
type Entry struct {
	Position int
	Task     store.Task
}

// Group is a headed run of entries, e.g. all of a user's TODO tasks.
type Group struct {
	Heading string
	Entries []Entry
}

// Manager holds the current login session and mutates the store. It is not
// safe for concurrent use.
type Manager struct {
	db      *store.File
	current *store.User
}

func NewManager(db *store.File) *Manager {
	return &Manager{db: db}
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *store.User {
	return m.current
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.current != nil
}

// Register adds candidate to the user collection and starts a session for
// it. Fails with ErrUserExists, leaving the collection untouched, if the
// username is already taken.
func (m *Manager) Register(candidate store.User) error {
	if m.db.UserByName(candidate.Username) != nil {
		return ErrUserExists
	}
	m.db.Users = append(m.db.Users, candidate)
	m.current = &m.db.Users[len(m.db.Users)-1]
	return nil
}

// Login starts a session for candidate if both username and password match
// an existing user exactly. Passwords are compared verbatim.
func (m *Manager) Login(candidate store.User) error {
	for i := range m.db.Users {
		u := &m.db.Users[i]
		if u.Username == candidate.Username && u.Password == candidate.Password {
			m.current = u
			return nil
		}
	}
	return ErrInvalidCredentials
}

// Logout ends the current session.
func (m *Manager) Logout() {
	m.current = nil
}

// AddTask stores task owned by the current user. The owner always comes
// from the session, never from the caller.
func (m *Manager) AddTask(task store.Task) (store.Task, error) {
	if m.current == nil {
		return store.Task{}, ErrNotLoggedIn
	}
	task.Username = m.current.Username
	return m.db.AddTask(task), nil
}

// OwnEntries filters tasks down to the current user's, keeping each task's
// position within the given slice. With a nil session it returns nothing.
func (m *Manager) OwnEntries(tasks []store.Task) []Entry {
	if m.current == nil {
		return nil
	}
	var entries []Entry
	for i, t := range tasks {
		if t.Username == m.current.Username {
			entries = append(entries, Entry{Position: i, Task: t})
		}
	}
	return entries
}

// ListAll returns the current user's tasks with their positions in the
// full collection.
func (m *Manager) ListAll() []Entry {
	return m.OwnEntries(m.db.Tasks)
}

// ListByStatus groups the current user's tasks into TODO, IN PROGRESS and
// COMPLETED runs, preserving relative order within each group.
func (m *Manager) ListByStatus() []Group {
	groups := []Group{
		{Heading: "Todo Tasks"},
		{Heading: "In Progress Tasks"},
		{Heading: "Completed Tasks"},
	}
	for _, e := range m.ListAll() {
		switch e.Task.Status {
		case store.StatusTodo:
			groups[0].Entries = append(groups[0].Entries, e)
		case store.StatusInProgress:
			groups[1].Entries = append(groups[1].Entries, e)
		case store.StatusCompleted:
			groups[2].Entries = append(groups[2].Entries, e)
		}
	}
	return groups
}

// ListByPriority groups the current user's tasks into URGENT, HIGH, NORMAL
// and LOW runs, preserving relative order within each group.
func (m *Manager) ListByPriority() []Group {
	groups := []Group{
		{Heading: "Urgent Tasks"},
		{Heading: "High Tasks"},
		{Heading: "Normal Tasks"},
		{Heading: "Low Tasks"},
	}
	for _, e := range m.ListAll() {
		switch e.Task.Priority {
		case store.PriorityUrgent:
			groups[0].Entries = append(groups[0].Entries, e)
		case store.PriorityHigh:
			groups[1].Entries = append(groups[1].Entries, e)
		case store.PriorityNormal:
			groups[2].Entries = append(groups[2].Entries, e)
		case store.PriorityLow:
			groups[3].Entries = append(groups[3].Entries, e)
		}
	}
	return groups
}

// SortByDueDate returns a sorted copy of the whole task collection. Unlike
// the list operations it is not filtered by owner; callers filter for
// display. See OwnEntries.
func (m *Manager) SortByDueDate() []store.Task {
	return store.SortedByDueDate(m.db.Tasks)
}

// SortByStartDate is SortByDueDate over the start date field.
func (m *Manager) SortByStartDate() []store.Task {
	return store.SortedByStartDate(m.db.Tasks)
}

// Select resolves a position in the full task collection. The bound check
// admits index == size, matching the original tolerance, but resolution of
// that position fails with the same error, so reads stay in bounds.
func (m *Manager) Select(index int) (store.Task, error) {
	if index < 0 || index > len(m.db.Tasks) {
		return store.Task{}, ErrInvalidTaskID
	}
	if index == len(m.db.Tasks) {
		return store.Task{}, ErrInvalidTaskID
	}
	return m.db.Tasks[index], nil
}

// Complete marks the task with the given ID as COMPLETED.
func (m *Manager) Complete(id string) error {
	if err := m.db.SetTaskStatus(id, store.StatusCompleted); err != nil {
		return ErrInvalidTaskID
	}
	return nil
}

// Update applies updater to the task with the given ID. Field values are
// validated by the caller before they reach the updater.
func (m *Manager) Update(id string, updater func(*store.Task)) error {
	if err := m.db.UpdateTask(id, updater); err != nil {
		return ErrInvalidTaskID
	}
	return nil
}

// Delete removes the task with the given ID. Positions of later tasks
// shift down by one.
func (m *Manager) Delete(id string) error {
	if err := m.db.DeleteTask(id); err != nil {
		return ErrInvalidTaskID
	}
	return nil
}
