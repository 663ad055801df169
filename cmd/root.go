// Package cmd implements the CLI command structure for tasky.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tasky/internal/app"
	"tasky/internal/config"
	"tasky/internal/logging"
	"tasky/internal/store"
	"tasky/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasky CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasky", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// No subcommand means the interactive menu.
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs, os.Stdout)
	case "doctor":
		return doctorCommand(cfg, remainingArgs, os.Stdout)
	case "version", "--version", "-v":
		return versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts the interactive menu loop.
func runCommand(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		cfg.DataFile = args[0]
	}

	logger := logging.New(cfg)
	controller, err := app.New(cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	return controller.Run()
}

// tuiCommand launches the read-only dashboard.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("tasky tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		cfg.DataFile = remaining[0]
	}
	return ui.RunTUI(ctx, cfg)
}

// lsCommand lists tasks without entering the menu.
func lsCommand(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tasky ls", flag.ContinueOnError)
	userFilter := fs.String("user", "", "Only show one user's tasks")
	statusFilter := fs.String("status", "", "Filter by status (todo|in-progress|completed)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.DataFile = remaining[0]
	}

	db, err := store.Load(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("loading data file: %w", err)
	}

	status, err := parseStatusFilter(*statusFilter)
	if err != nil {
		return err
	}

	shown := 0
	for i, task := range db.Tasks {
		if *userFilter != "" && task.Username != *userFilter {
			continue
		}
		if status != 0 && task.Status != status {
			continue
		}
		printTaskLine(w, i, task)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No tasks found.")
	}
	return nil
}

func parseStatusFilter(s string) (store.Status, error) {
	switch s {
	case "":
		return 0, nil
	case "todo":
		return store.StatusTodo, nil
	case "in-progress":
		return store.StatusInProgress, nil
	case "completed":
		return store.StatusCompleted, nil
	default:
		return 0, fmt.Errorf("invalid status filter: %s (expected todo|in-progress|completed)", s)
	}
}

func printTaskLine(w io.Writer, position int, task store.Task) {
	line := fmt.Sprintf("%3d  %-12s %-12s %s", position, task.Username, task.Status, task.Title)
	if task.DueDate != "" {
		line += "  (due " + task.DueDate + ")"
	}
	fmt.Fprintln(w, line)
}

// doctorCommand checks config and data file health.
func doctorCommand(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tasky doctor", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		cfg.DataFile = remaining[0]
	}

	fmt.Fprintln(w, "Tasky Doctor")
	fmt.Fprintln(w, "============")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	fmt.Fprintf(w, "  Data file:  %s\n", cfg.DataFile)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Log format: %s\n", cfg.LogFormat)
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Data file:")
	if _, err := os.Stat(cfg.DataFile); err != nil {
		fmt.Fprintln(w, "  - Not found (a new file is created on first save)")
	} else {
		fmt.Fprintln(w, "  - Exists")
	}

	db, err := store.Load(cfg.DataFile)
	if err != nil {
		fmt.Fprintf(w, "  - Parse error: %v\n", err)
		return fmt.Errorf("data file is not usable")
	}
	fmt.Fprintln(w, "  - Parses as JSON")
	fmt.Fprintf(w, "  - Users: %d  Tasks: %d\n", len(db.Users), len(db.Tasks))

	warnings := db.Validate()
	if len(warnings) == 0 {
		fmt.Fprintln(w, "  - Schema: valid")
	} else {
		allOK = false
		fmt.Fprintln(w, "  - Schema problems:")
		for _, warning := range warnings {
			fmt.Fprintf(w, "      %s\n", warning)
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "All checks passed.")
	} else {
		fmt.Fprintln(w, "Problems found. The menu still runs; fix the data file to silence warnings.")
	}
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasky version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasky - A terminal task manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasky [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [file]    Start the interactive menu (default command)")
	fmt.Fprintln(w, "  tui [file]    Launch the read-only dashboard")
	fmt.Fprintln(w, "  ls [file]     List tasks")
	fmt.Fprintln(w, "  doctor [file] Check config and data file validity")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -user string")
	fmt.Fprintln(w, "        Only show one user's tasks")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|in-progress|completed)")
}
