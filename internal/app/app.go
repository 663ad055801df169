// Package app drives the interactive menu flow: login and registration,
// task entry, the view and select screens, and the final save.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"tasky/internal/config"
	"tasky/internal/menu"
	"tasky/internal/session"
	"tasky/internal/store"
)

// Controller owns the loaded database and the terminal surface.
type Controller struct {
	cfg    *config.Config
	logger *log.Logger
	db     *store.File
	sess   *session.Manager
	reader *menu.Reader
	view   *menu.Presenter
}

// New loads the data file and wires up the menu surface. Schema
// problems in the data file are logged and do not block startup.
func New(cfg *config.Config, logger *log.Logger, in io.Reader, out io.Writer) (*Controller, error) {
	db, err := store.Load(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("load data file: %w", err)
	}
	for _, warning := range db.Validate() {
		logger.Warn("data file issue", "problem", warning)
	}
	logger.Debug("data file loaded", "path", cfg.DataFile, "users", len(db.Users), "tasks", len(db.Tasks))

	return &Controller{
		cfg:    cfg,
		logger: logger,
		db:     db,
		sess:   session.NewManager(db),
		reader: menu.NewReader(in, out),
		view:   menu.NewPresenter(out),
	}, nil
}

// Run executes the menu loop until the user exits or input ends, then
// saves the database.
func (c *Controller) Run() error {
	running := true
	for running {
		c.view.UserMenu()
		choice := c.reader.ReadIntRange("Enter your choice: ", 1, 3)
		if c.reader.EOF() {
			break
		}

		switch choice {
		case 1:
			c.login()
		case 2:
			c.register()
		case 3:
			running = false
		}

		for c.sess.LoggedIn() && !c.reader.EOF() {
			c.mainMenu()
		}
	}

	c.logger.Debug("saving data file", "path", c.db.Path)
	if err := c.db.Save(); err != nil {
		return fmt.Errorf("save data file: %w", err)
	}
	return nil
}

func (c *Controller) readCredentials(heading string) store.User {
	c.view.Heading(heading)
	username := c.reader.ReadString("Username: ")
	password := c.reader.ReadString("Password: ")
	return store.User{Username: username, Password: password}
}

func (c *Controller) login() {
	user := c.readCredentials("Login")
	if err := c.sess.Login(user); err != nil {
		c.view.Error("Invalid username or password.")
		return
	}
	c.view.Success("Login successful.")
}

func (c *Controller) register() {
	user := c.readCredentials("Register")
	if err := c.sess.Register(user); err != nil {
		c.view.Error("Username already exists.")
		return
	}
	c.view.Success("Registration successful.")
}

func (c *Controller) mainMenu() {
	c.view.MainMenu()
	choice := c.reader.ReadIntRange("Enter your choice: ", 1, 4)
	if c.reader.EOF() {
		return
	}

	switch choice {
	case 1:
		c.addTask()
	case 2:
		c.viewTasks()
	case 3:
		c.selectTask()
	case 4:
		c.sess.Logout()
	}
}

func (c *Controller) addTask() {
	c.view.Heading("Add Task")
	task := store.Task{
		Title:       c.reader.ReadString("Title: "),
		Description: c.reader.ReadString("Description: "),
		Status:      store.Status(c.reader.ReadIntRange("Status (1. TODO, 2. IN PROGRESS, 3. DONE): ", 1, 3)),
		Priority:    store.Priority(c.reader.ReadIntRange("Priority (1. URGENT, 2. HIGH, 3. NORMAL, 4. LOW): ", 1, 4)),
		StartDate:   c.reader.ReadDate("Start Date (YYYY-MM-DD): "),
		DueDate:     c.reader.ReadDate("Due Date (YYYY-MM-DD): "),
		Tags:        c.reader.ReadTags("Tags (separated by commas): "),
	}
	if c.reader.EOF() {
		return
	}

	added, err := c.sess.AddTask(task)
	if err != nil {
		c.view.Error("Please login to add a task.")
		return
	}
	c.logger.Debug("task added", "id", added.ID, "title", added.Title)
}

func (c *Controller) viewTasks() {
	for {
		c.view.ViewMenu()
		choice := c.reader.ReadIntRange("Enter your choice: ", 1, 6)
		if c.reader.EOF() {
			return
		}

		switch choice {
		case 1:
			c.view.Entries("All Tasks", c.sess.ListAll())
		case 2:
			c.view.Groups(c.sess.ListByStatus())
		case 3:
			c.view.Groups(c.sess.ListByPriority())
		case 4:
			c.view.Entries("Tasks by Due Date", c.sess.OwnEntries(c.sess.SortByDueDate()))
		case 5:
			c.view.Entries("Tasks by Start Date", c.sess.OwnEntries(c.sess.SortByStartDate()))
		case 6:
			return
		}
	}
}

func (c *Controller) selectTask() {
	id := c.reader.ReadInt("Enter the task ID: ")
	if c.reader.EOF() {
		return
	}
	task, err := c.sess.Select(id)
	if err != nil {
		c.view.Error("Invalid task ID.")
		return
	}

	for {
		c.view.Task(task, id)
		c.view.SelectMenu()
		choice := c.reader.ReadIntRange("Enter your choice: ", 1, 4)
		if c.reader.EOF() {
			return
		}

		switch choice {
		case 1:
			if err := c.complete(task.ID); err != nil {
				c.view.Error("Invalid task ID.")
			}
			return
		case 2:
			task = c.updateTask(task)
		case 3:
			if err := c.delete(task.ID); err != nil {
				c.view.Error("Invalid task ID.")
			}
			return
		case 4:
			return
		}
	}
}

func (c *Controller) complete(id string) error {
	if err := c.sess.Complete(id); err != nil {
		return err
	}
	c.view.Success("Task completed successfully.")
	return nil
}

func (c *Controller) delete(id string) error {
	if err := c.sess.Delete(id); err != nil {
		return err
	}
	c.view.Success("Task deleted successfully.")
	return nil
}

// updateTask edits a working copy field by field and writes it back
// when the user is done. The stored task keeps its ID and owner.
func (c *Controller) updateTask(task store.Task) store.Task {
	for {
		c.view.UpdateMenu()
		choice := c.reader.ReadIntRange("Enter your choice: ", 1, 8)
		if c.reader.EOF() {
			return task
		}

		switch choice {
		case 1:
			task.Title = c.reader.ReadString("Enter the new title: ")
		case 2:
			task.Description = c.reader.ReadString("Enter the new description: ")
		case 3:
			task.Status = store.Status(c.reader.ReadIntRange("Enter the new status (1. TODO, 2. IN PROGRESS, 3. COMPLETED): ", 1, 3))
		case 4:
			task.Priority = store.Priority(c.reader.ReadIntRange("Enter the new priority (1. URGENT, 2. HIGH, 3. NORMAL, 4. LOW): ", 1, 4))
		case 5:
			task.DueDate = c.reader.ReadDate("Enter the new due date: ")
		case 6:
			task.StartDate = c.reader.ReadDate("Enter the new start date: ")
		case 7:
			task.Tags = c.reader.ReadTags("Enter the new tags (separated by comma): ")
		case 8:
			if err := c.sess.Update(task.ID, func(t *store.Task) {
				id, owner := t.ID, t.Username
				*t = task
				t.ID, t.Username = id, owner
			}); err != nil && !errors.Is(err, session.ErrInvalidTaskID) {
				c.logger.Error("update failed", "id", task.ID, "err", err)
			}
			return task
		}
	}
}
