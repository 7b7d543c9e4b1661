package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goalboard/goalboard/internal/config"
	"github.com/goalboard/goalboard/internal/database"
	"github.com/goalboard/goalboard/internal/database/goals"
	"github.com/goalboard/goalboard/internal/importer"
	"github.com/goalboard/goalboard/internal/metadata"
)

// TrelloImportCommand handles importing a Trello board export from the command line.
type TrelloImportCommand struct {
	FilePath      string
	DatabasePath  string
	MinConfidence int
	Enrich        bool
	Verbose       bool
	DryRun        bool
}

func NewTrelloImportCommand() *TrelloImportCommand {
	return &TrelloImportCommand{}
}

func (cmd *TrelloImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-trello", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the Trello board export JSON file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file")
	fs.IntVar(&cmd.MinConfidence, "min-confidence", config.DefaultMinConfidence, "Confidence score below which a task is not enriched (0-100)")
	fs.BoolVar(&cmd.Enrich, "enrich", true, "Fetch show/movie metadata for classified tasks")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-trello -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a Trello board export as a goal with tasks.\n\n")
		fmt.Fprintf(os.Stderr, "Export your board from Trello via Menu > More > Print and Export > JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Preview a board import:\n")
		fmt.Fprintf(os.Stderr, "  %s import-trello -file board.json -dry-run -verbose\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Import without metadata lookups:\n")
		fmt.Fprintf(os.Stderr, "  %s import-trello -file board.json -enrich=false\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *TrelloImportCommand) Run() error {
	fmt.Println("Trello Import")
	fmt.Println("=============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read board export: %w", err)
	}

	fmt.Printf("File: %s\n\n", cmd.FilePath)

	minConfidence := cmd.MinConfidence
	if !cmd.Enrich {
		// A threshold above the score ceiling keeps every task out of
		// the enrichment stage.
		minConfidence = 101
	}

	provider := metadata.NewTVMazeClient(
		config.DefaultMetadataBaseURL,
		200*time.Millisecond,
		10*time.Second,
	)
	enricher := metadata.NewEnricher(provider, 200*time.Millisecond, minConfidence)

	coordinator := importer.NewCoordinator(enricher, func(p importer.Progress) {
		if !cmd.Verbose {
			return
		}
		if p.Status != "" {
			fmt.Printf("  [%s] %d/%d %s\n", p.Phase, p.Current, p.Total, p.Status)
		} else {
			fmt.Printf("  [%s] %d/%d\n", p.Phase, p.Current, p.Total)
		}
	})

	result, err := coordinator.Run(context.Background(), data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Board: %q (%s / %s)\n", result.GoalTitle, result.GoalType, result.BoardType)
	fmt.Printf("Lists: %d, tasks: %d, checklists: %d, links: %d\n",
		result.Stats.Lists, result.Stats.Tasks, result.Stats.Checklists, result.Stats.Links)

	if cmd.Verbose {
		fmt.Println("\n=== Tasks ===")
		for i, task := range result.Tasks {
			kind := string(task.ContentKind)
			if kind == "" {
				kind = "unknown"
			}
			fmt.Printf("%d. %s [%s] (%s, confidence %d)\n",
				i+1, task.Text, task.Category, kind, task.Confidence)
			if task.HasNewContent {
				fmt.Printf("   New content available (%d seasons known)\n", task.Enrichment.TotalSeasons)
			}
		}
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

	goal := result.Goal()
	if err := goals.NewRepository(db.DB).AppendGoal(goal); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}

	fmt.Printf("\nImported goal %d (%q) with %d tasks\n", goal.ID, goal.Title, len(goal.Tasks))
	return nil
}
