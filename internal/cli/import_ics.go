package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goalboard/goalboard/internal/calendar"
	"github.com/goalboard/goalboard/internal/config"
	"github.com/goalboard/goalboard/internal/database"
	"github.com/goalboard/goalboard/internal/database/events"
)

// ICSImportCommand handles importing an iCalendar file from the command line.
type ICSImportCommand struct {
	FilePath     string
	DatabasePath string
	Replace      bool
	Verbose      bool
	DryRun       bool
}

func NewICSImportCommand() *ICSImportCommand {
	return &ICSImportCommand{}
}

func (cmd *ICSImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-ics", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the .ics calendar file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.BoolVar(&cmd.Replace, "replace", false, "Remove events previously imported from this file before importing")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-ics -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import events from an iCalendar (.ics) export.\n\n")
		fmt.Fprintf(os.Stderr, "Events are deduplicated by their UID; re-importing the same file\n")
		fmt.Fprintf(os.Stderr, "adds only events not seen before.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ICSImportCommand) Run() error {
	fmt.Println("Calendar Import")
	fmt.Println("===============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	fmt.Printf("File: %s\n\n", cmd.FilePath)

	parser := calendar.NewICSParser()
	parsed, result, err := parser.ParseFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to parse calendar: %w", err)
	}

	fmt.Printf("Parsed %d events (%d skipped)\n", result.EventsParsed, result.EventsSkipped)

	if cmd.Verbose {
		fmt.Println("\n=== Events ===")
		for i, event := range parsed {
			when := event.StartsAt.Format("2006-01-02 15:04")
			if event.AllDay {
				when = event.StartsAt.Format("2006-01-02") + " (all day)"
			}
			fmt.Printf("%d. %s — %s\n", i+1, when, event.Title)
		}
	}

	if len(parsed) == 0 {
		fmt.Println("No importable events found")
		return nil
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	fmt.Printf("\nSaving to database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := events.NewRepository(db.DB)

	if cmd.Replace {
		removed, err := repo.DeleteEventsFromFile(cmd.FilePath)
		if err != nil {
			return fmt.Errorf("failed to remove previous import: %w", err)
		}
		if removed > 0 {
			fmt.Printf("Removed %d previously imported events\n", removed)
		}
	}

	stored, err := repo.AppendEvents(parsed)
	if err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}

	fmt.Printf("\nImported %d events (%d duplicates skipped)\n", stored, len(parsed)-stored)
	return nil
}
