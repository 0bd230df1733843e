package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/db"
	"github.com/motomind/motomind/internal/maintenance"
	"github.com/motomind/motomind/internal/ui"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load maintenance events from a file into PostgreSQL",
		Long: `Import events from a CSV, JSON or YAML file into the
maintenance_events table. The table is created if it does not exist.
The import runs in one transaction: either every event is stored or none.

Examples:
  motomind import events.csv
  motomind import events.json --db postgres://localhost/motomind
  motomind import events.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("db", "", "PostgreSQL URL (default from db.url)")
	cmd.Flags().BoolP("dry-run", "n", false, "Parse the file and show what would be imported")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	url, _ := cmd.Flags().GetString("db")
	if url == "" {
		url = appConfig.DatabaseURL()
	}
	out := cmd.OutOrStdout()

	events, err := maintenance.LoadFile(path)
	if err != nil {
		return util.DataFileError(path, err)
	}
	summary := fmt.Sprintf("%d events, %s total", len(events), util.FormatCurrency(maintenance.TotalCost(events)))

	if dryRun {
		fmt.Fprintln(out, styles.InfoMsg("Would import "+summary))
		return nil
	}
	if url == "" {
		return util.NoDataSourceError()
	}
	if len(events) == 0 {
		fmt.Fprintln(out, styles.WarningMsg("Nothing to import"))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(appConfig.DB.Timeout)*time.Second)
	defer cancel()

	spinner := ui.NewSpinner(fmt.Sprintf("Importing %d events", len(events)))
	spinner.Start()

	conn, err := db.Connect(ctx, url)
	if err != nil {
		spinner.Stop()
		return util.DatabaseConnectionError(url, err)
	}
	defer conn.Close()

	if err := conn.InitSchema(ctx); err != nil {
		spinner.Stop()
		return fmt.Errorf("creating %s: %w", db.EventsTable, err)
	}

	start := time.Now()
	n, err := conn.InsertEvents(ctx, events)
	if err != nil {
		spinner.Error("Import failed")
		return util.NewError("Import failed").
			WithContext(path).
			WithCauses("An event id already exists in the database").
			Wrap(err)
	}
	logger.Debug("import done", zap.Int64("rows", n), zap.Duration("took", time.Since(start)))
	source, _ := filepath.Abs(path)
	if err := conn.RecordImport(ctx, source, time.Now()); err != nil {
		logger.Warn("recording import failed", zap.Error(err))
	}
	spinner.Success(fmt.Sprintf("Imported %s into %s", summary, db.EventsTable))
	return nil
}
