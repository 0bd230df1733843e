package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/db"
	"github.com/motomind/motomind/internal/ui"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and prepare the database",
		Long: `Create the config file with default values if it does not exist.

With --db, the URL is saved as db.url and the maintenance_events table is
created if it is missing.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().String("db", "", "PostgreSQL URL to store and prepare")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	out := cmd.OutOrStdout()
	dbURL, _ := cmd.Flags().GetString("db")

	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return statErr
	}

	if dbURL != "" {
		appConfig.DB.URL = dbURL
		if err := prepareDatabase(cmd.Context(), out, dbURL); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Database: %s\n", util.RedactURL(dbURL))
	}

	if exists && dbURL == "" {
		fmt.Fprintln(out, styles.WarningMsg(fmt.Sprintf("Config already exists at %s", path)))
		return nil
	}
	if err := appConfig.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if exists {
		fmt.Fprintf(out, "Updated config at %s\n", path)
	} else {
		fmt.Fprintf(out, "Wrote default config to %s\n", path)
	}
	return nil
}

// prepareDatabase creates the tables at url and reports the last import.
func prepareDatabase(ctx context.Context, out io.Writer, url string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(appConfig.DB.Timeout)*time.Second)
	defer cancel()

	spinner := ui.NewSpinner("Preparing database")
	spinner.Start()

	conn, err := db.Connect(ctx, url)
	if err != nil {
		spinner.Stop()
		return util.DatabaseConnectionError(url, err)
	}
	defer conn.Close()

	if err := conn.InitSchema(ctx); err != nil {
		spinner.Error("Schema setup failed")
		return fmt.Errorf("creating %s: %w", db.EventsTable, err)
	}
	last, err := conn.LastImport(ctx)
	if err != nil {
		logger.Debug("reading last import", zap.Error(err))
	}
	spinner.Success("Database ready")
	if last != nil {
		fmt.Fprintln(out, styles.MutedMsg(fmt.Sprintf("  Last import: %s from %s",
			util.RelativeTime(last.At, time.Now()), last.Source)))
	}
	return nil
}
