package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bordenet/adr/internal/cli"
	"github.com/bordenet/adr/internal/db"
	"github.com/bordenet/adr/internal/prompt"
	"github.com/bordenet/adr/internal/repository"
	"github.com/bordenet/adr/internal/scoring"
	"github.com/bordenet/adr/internal/service"
	"github.com/bordenet/adr/internal/workflow"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.adr/adr.db
	dbPath := os.Getenv("ADR_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".adr", "adr.db")
	}

	// Determine template override directory. Empty means embedded
	// templates only.
	templateDir := os.Getenv("ADR_TEMPLATES")
	if templateDir == "" {
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			templateDir = "./templates"
		} else if home, err := os.UserHomeDir(); err == nil {
			if stat, err := os.Stat(filepath.Join(home, ".adr", "templates")); err == nil && stat.IsDir() {
				templateDir = filepath.Join(home, ".adr", "templates")
			}
		}
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and unit of work
	projectRepo := repository.NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Load the scoring rubric; a broken override file degrades to the
	// defaults with a warning rather than blocking the whole CLI.
	rubricPath := os.Getenv("ADR_RUBRIC")
	if rubricPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			rubricPath = filepath.Join(home, ".adr", "rubric.yaml")
		}
	}
	rubric, err := scoring.LoadRubric(rubricPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using default rubric)\n", err)
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		Workflow: workflow.NewEngine(projectRepo, prompt.NewLibrary(templateDir)),
		Backup:   service.NewBackupService(projectRepo, uow),
		Rubric:   rubric,
	}

	// Detect interactive terminal for forms and the paste screen.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
