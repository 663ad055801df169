package menu

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"tasky/internal/session"
	"tasky/internal/store"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Presenter renders the numbered menu screens and task listings.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) line() {
	fmt.Fprintln(p.out, "---------------------------------")
}

// Heading prints a section banner.
func (p *Presenter) Heading(heading string) {
	fmt.Fprintln(p.out)
	p.line()
	fmt.Fprintln(p.out, headingStyle.Render("Tasky - "+heading))
	p.line()
}

// UserMenu is the screen shown before a session exists.
func (p *Presenter) UserMenu() {
	p.Heading("Main Menu")
	fmt.Fprintln(p.out, "1. Login")
	fmt.Fprintln(p.out, "2. Register")
	fmt.Fprintln(p.out, "3. Exit")
}

// MainMenu is the screen shown while logged in.
func (p *Presenter) MainMenu() {
	p.Heading("Main Menu")
	fmt.Fprintln(p.out, "1. Add Task")
	fmt.Fprintln(p.out, "2. View Task")
	fmt.Fprintln(p.out, "3. Select Task")
	fmt.Fprintln(p.out, "4. Logout")
}

func (p *Presenter) ViewMenu() {
	p.Heading("View Task")
	fmt.Fprintln(p.out, "1. View All Tasks")
	fmt.Fprintln(p.out, "2. View Tasks by Status")
	fmt.Fprintln(p.out, "3. View Tasks by Priority")
	fmt.Fprintln(p.out, "4. View Tasks by Due Date")
	fmt.Fprintln(p.out, "5. View Tasks by Start Date")
	fmt.Fprintln(p.out, "6. Back")
}

func (p *Presenter) SelectMenu() {
	p.Heading("Select Task")
	fmt.Fprintln(p.out, "1. Complete Task")
	fmt.Fprintln(p.out, "2. Update Task")
	fmt.Fprintln(p.out, "3. Delete Task")
	fmt.Fprintln(p.out, "4. Back")
}

func (p *Presenter) UpdateMenu() {
	p.Heading("Update Task")
	fmt.Fprintln(p.out, "1. Title")
	fmt.Fprintln(p.out, "2. Description")
	fmt.Fprintln(p.out, "3. Status")
	fmt.Fprintln(p.out, "4. Priority")
	fmt.Fprintln(p.out, "5. Due Date")
	fmt.Fprintln(p.out, "6. Start Date")
	fmt.Fprintln(p.out, "7. Tags")
	fmt.Fprintln(p.out, "8. Done")
}

// Task prints one task's details. The displayed ID is the task's
// position in the collection, which is what Select expects back.
func (p *Presenter) Task(task store.Task, position int) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "ID: %d\n", position)
	fmt.Fprintln(p.out, "Title: "+task.Title)
	fmt.Fprintln(p.out, "Description: "+task.Description)
	fmt.Fprintln(p.out, "Status: "+task.Status.String())
	fmt.Fprintln(p.out, "Priority: "+task.Priority.String())
	fmt.Fprintln(p.out, "Due Date: "+task.DueDate)
	fmt.Fprintln(p.out, "Start Date: "+task.StartDate)
	if len(task.Tags) > 0 {
		fmt.Fprintln(p.out, "Tags: "+joinTags(task.Tags))
	}
}

// Entries prints a heading followed by each entry's details.
func (p *Presenter) Entries(heading string, entries []session.Entry) {
	p.Heading(heading)
	for _, e := range entries {
		p.Task(e.Task, e.Position)
	}
}

// Groups prints a sequence of headed listings, empty groups included.
func (p *Presenter) Groups(groups []session.Group) {
	for _, g := range groups {
		p.Entries(g.Heading, g.Entries)
	}
}

// Success prints a confirmation line.
func (p *Presenter) Success(message string) {
	fmt.Fprintln(p.out, successStyle.Render(message))
}

// Error prints a problem line.
func (p *Presenter) Error(message string) {
	fmt.Fprintln(p.out, errorStyle.Render(message))
}

func joinTags(tags []string) string {
	result := ""
	for i, tag := range tags {
		result += tag
		if i != len(tags)-1 {
			result += ", "
		}
	}
	return result
}
