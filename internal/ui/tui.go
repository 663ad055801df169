// Package ui provides the optional read-only terminal dashboard.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasky/internal/config"
	"tasky/internal/store"
)

// RunTUI starts the dashboard. It reloads the data file on a timer and
// never writes it.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	cfg          *config.Config
	loadErr      error
	db           *store.File
	filter       store.Status
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(cfg *config.Config) *tuiModel {
	return &tuiModel{
		cfg:          cfg,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = store.StatusTodo
			return m, nil
		case "2":
			m.filter = store.StatusInProgress
			return m, nil
		case "3":
			m.filter = store.StatusCompleted
			return m, nil
		case "0":
			m.filter = 0
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != 0 {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	if m.loadErr != nil {
		b.WriteString("Error loading data file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.db == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.db)
	writeTasks(&b, m.db, m.filter)
	writeConfig(&b, m.cfg)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	db, err := store.Load(m.cfg.DataFile)
	if err != nil {
		m.loadErr = err
		m.db = nil
		return
	}
	m.loadErr = nil
	m.db = db
}

func writeTitle(b *strings.Builder) {
	title := "Tasky Dashboard"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, db *store.File) {
	counts := statusCounts(db.Tasks)
	b.WriteString("Task Overview\n\n")
	fmt.Fprintf(b, "  Todo: %d  In Progress: %d  Completed: %d  Users: %d\n\n",
		counts[store.StatusTodo],
		counts[store.StatusInProgress],
		counts[store.StatusCompleted],
		len(db.Users),
	)
}

func writeTasks(b *strings.Builder, db *store.File, filter store.Status) {
	b.WriteString("Tasks\n\n")
	shown := 0
	for _, task := range db.Tasks {
		if filter != 0 && task.Status != filter {
			continue
		}
		b.WriteString(formatTask(task))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString("  No tasks to show.\n")
	}
	b.WriteString("\n")
}

func writeConfig(b *strings.Builder, cfg *config.Config) {
	b.WriteString("Configuration\n\n")
	fmt.Fprintf(b, "  Data File: %s\n\n", cfg.DataFile)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by TODO\n")
	b.WriteString("  2            Filter by IN PROGRESS\n")
	b.WriteString("  3            Filter by COMPLETED\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

func statusCounts(tasks []store.Task) map[store.Status]int {
	counts := make(map[store.Status]int)
	for _, task := range tasks {
		counts[task.Status]++
	}
	return counts
}

func formatTask(t store.Task) string {
	icon := " "
	switch t.Status {
	case store.StatusInProgress:
		icon = ">"
	case store.StatusCompleted:
		icon = "x"
	}

	line := fmt.Sprintf("  %s [%s] %s", icon, t.Username, t.Title)
	if t.DueDate != "" {
		line += " (due " + t.DueDate + ")"
	}
	return line
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
