package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/db"
	"github.com/motomind/motomind/internal/maintenance"
	"github.com/motomind/motomind/internal/ui"
	"github.com/motomind/motomind/internal/util"
)

// ═══════════════════════════════════════════════════════════════════════════
// Events Command
// ═══════════════════════════════════════════════════════════════════════════

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse maintenance events",
		Long: `Show maintenance events in the interactive table viewer.

Events come from a data file (--file) or from PostgreSQL (--db, or the
db.url config key). Dates are shown relative to now, costs as currency and
the completion score as a percentage.

Examples:
  motomind events --file events.csv
  motomind events --db postgres://localhost/motomind --vehicle v-101
  motomind events --file events.csv --sort cost:desc --filter vendor=jiffy
  motomind events --file events.csv --export expensive.csv --filter type=repair`,
		Args: cobra.NoArgs,
		RunE: runEvents,
	}

	cmd.Flags().StringP("file", "f", "", "CSV, JSON or YAML file with events")
	cmd.Flags().String("db", "", "PostgreSQL URL (default from db.url)")
	cmd.Flags().String("vehicle", "", "Only events for this vehicle id or name")
	cmd.Flags().String("since", "", "Only events on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of events to load from the database")
	addTableFlags(cmd)

	return cmd
}

// eventSource loads events from a file or the database.
type eventSource struct {
	file    string
	url     string
	vehicle string
	since   time.Time
	limit   int
}

func (s eventSource) load(ctx context.Context) ([]maintenance.Event, error) {
	if s.file != "" {
		events, err := maintenance.LoadFile(s.file)
		if err != nil {
			return nil, util.DataFileError(s.file, err)
		}
		if s.vehicle != "" {
			events = maintenance.ByVehicle(events, s.vehicle)
		}
		if !s.since.IsZero() {
			kept := events[:0]
			for _, e := range events {
				if !e.Date.Before(s.since) {
					kept = append(kept, e)
				}
			}
			events = kept
		}
		if s.limit > 0 && len(events) > s.limit {
			events = events[:s.limit]
		}
		return events, nil
	}

	if s.url == "" {
		return nil, util.NoDataSourceError()
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(appConfig.DB.Timeout)*time.Second)
	defer cancel()

	spinner := ui.NewSpinner("Loading maintenance events")
	spinner.Start()
	defer spinner.Stop()

	conn, err := db.Connect(ctx, s.url)
	if err != nil {
		return nil, util.DatabaseConnectionError(s.url, err)
	}
	defer conn.Close()

	events, err := conn.ListEvents(ctx, db.EventQuery{VehicleID: s.vehicle, Since: s.since, Limit: s.limit})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func parseEventSource(cmd *cobra.Command) (eventSource, error) {
	var s eventSource
	s.file, _ = cmd.Flags().GetString("file")
	s.url, _ = cmd.Flags().GetString("db")
	s.vehicle, _ = cmd.Flags().GetString("vehicle")
	s.limit, _ = cmd.Flags().GetInt("limit")

	if s.file != "" && s.url != "" {
		return s, util.NewError("--file and --db are mutually exclusive").Wrap(util.ErrInvalidFlag)
	}
	if s.file == "" && s.url == "" {
		s.url = appConfig.DatabaseURL()
	}
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, ok := util.ParseDate(since)
		if !ok {
			return s, util.InvalidFlagError("since", since, "--since 2024-01-01")
		}
		s.since = t
	}
	return s, nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	flags, err := parseTableFlags(cmd)
	if err != nil {
		return err
	}
	src, err := parseEventSource(cmd)
	if err != nil {
		return err
	}

	events, err := src.load(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("events loaded", zap.Int("count", len(events)), zap.String("file", src.file))

	// Standard column set; the rarely used ones start hidden
	if len(flags.show) == 0 {
		flags.show = maintenance.DefaultVisible
	}

	tbl, pager, err := newTable(flags, maintenance.Columns(), events, maintenance.Key, datatable.Options[maintenance.Event]{
		EmptyState: "No maintenance events",
		OnRowClick: func(e maintenance.Event) {
			logger.Debug("event opened", zap.String("id", e.ID))
		},
		BulkActions: []datatable.BulkAction[maintenance.Event]{
			{Label: "Copy IDs", Variant: datatable.VariantPrimary, OnClick: copyEventIDs},
		},
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("events: %s total", util.FormatCurrency(maintenance.TotalCost(events)))
	reload := func() ([]maintenance.Event, error) {
		return src.load(context.Background())
	}
	return showTable(cmd, tbl, pager, flags, title, src.file, reload)
}

// copyEventIDs puts the selected event ids on the clipboard, one per line.
func copyEventIDs(selected []maintenance.Event) {
	ids := make([]string, len(selected))
	for i, e := range selected {
		ids[i] = e.ID
	}
	if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
		logger.Warn("clipboard write failed", zap.Error(err))
	}
}
