package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/ui/table"
	"github.com/motomind/motomind/internal/util"
)

// ═══════════════════════════════════════════════════════════════════════════
// Shared table flags
// ═══════════════════════════════════════════════════════════════════════════

// tableFlags holds the view flags shared by every table command.
type tableFlags struct {
	pageSize   int
	page       int
	all        bool
	sort       string
	filters    []string
	hide       []string
	show       []string
	mobileView string
	json       bool
	raw        bool
	noPager    bool
	watch      bool
	export     string
}

// addTableFlags adds the shared flags to a cobra.Command.
func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page-size", 0, "Rows per page (default from table.page_size)")
	cmd.Flags().Int("page", 1, "Page to start on")
	cmd.Flags().Bool("all", false, "Show every row on one page")
	cmd.Flags().String("sort", "", "Sort column, e.g. cost or cost:desc")
	cmd.Flags().StringArray("filter", nil, "Column filter key=query (repeatable, combined with AND)")
	cmd.Flags().StringSlice("hide", nil, "Columns to hide")
	cmd.Flags().StringSlice("show", nil, "Columns to show (hides the rest)")
	cmd.Flags().String("mobile-view", "", "Layout: auto, table or cards (default from table.mobile_view)")
	cmd.Flags().Bool("json", false, "Output the page as JSON")
	cmd.Flags().Bool("raw", false, "Output the page as tab-separated values (for piping)")
	cmd.Flags().Bool("no-pager", false, "Plain table output, no interactive viewer")
	cmd.Flags().Bool("watch", false, "Reload when the data file changes")
	cmd.Flags().String("export", "", "Write the filtered, sorted rows to a CSV file and exit")
}

// parseTableFlags reads the shared flags from a cobra.Command.
func parseTableFlags(cmd *cobra.Command) (tableFlags, error) {
	var f tableFlags
	f.pageSize, _ = cmd.Flags().GetInt("page-size")
	f.page, _ = cmd.Flags().GetInt("page")
	f.all, _ = cmd.Flags().GetBool("all")
	f.sort, _ = cmd.Flags().GetString("sort")
	f.filters, _ = cmd.Flags().GetStringArray("filter")
	f.hide, _ = cmd.Flags().GetStringSlice("hide")
	f.show, _ = cmd.Flags().GetStringSlice("show")
	f.mobileView, _ = cmd.Flags().GetString("mobile-view")
	f.json, _ = cmd.Flags().GetBool("json")
	f.raw, _ = cmd.Flags().GetBool("raw")
	f.noPager, _ = cmd.Flags().GetBool("no-pager")
	f.watch, _ = cmd.Flags().GetBool("watch")
	f.export, _ = cmd.Flags().GetString("export")

	if f.pageSize == 0 {
		f.pageSize = appConfig.Table.PageSize
	}
	if f.pageSize < 0 {
		return f, util.InvalidFlagError("page-size", fmt.Sprint(f.pageSize), "--page-size 50")
	}
	if f.page < 1 {
		return f, util.InvalidFlagError("page", fmt.Sprint(f.page), "--page 2")
	}
	if f.mobileView == "" {
		f.mobileView = appConfig.Table.MobileView
	}
	if _, err := datatable.ParseMobileView(f.mobileView); err != nil {
		return f, util.InvalidFlagError("mobile-view", f.mobileView, "--mobile-view cards")
	}
	if f.json && f.raw {
		return f, util.NewError("--json and --raw are mutually exclusive").Wrap(util.ErrInvalidFlag)
	}
	return f, nil
}

// parseSort parses "key" or "key:asc|desc".
func parseSort(s string) (datatable.SortState, error) {
	key, dir, _ := strings.Cut(s, ":")
	state := datatable.SortState{Key: key, Direction: datatable.SortAscending}
	switch strings.ToLower(dir) {
	case "", "asc":
	case "desc":
		state.Direction = datatable.SortDescending
	default:
		return state, util.InvalidFlagError("sort", s, "--sort cost:desc")
	}
	if key == "" {
		return state, util.InvalidFlagError("sort", s, "--sort cost:desc")
	}
	return state, nil
}

// parseFilters parses repeated key=query pairs. A later pair for the same
// key wins.
func parseFilters(pairs []string) (map[string]string, error) {
	filters := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, query, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, util.InvalidFlagError("filter", p, "--filter vendor=jiffy")
		}
		filters[key] = query
	}
	return filters, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Table construction
// ═══════════════════════════════════════════════════════════════════════════

// newTable builds a table from the flags and the config. The returned pager
// is nil when --all is set.
func newTable[T any](f tableFlags, columns []datatable.Column[T], data []T, key datatable.KeyFunc[T], opts datatable.Options[T]) (*datatable.Table[T], *table.Pager, error) {
	features := datatable.DefaultFeatures()
	features.Striped = appConfig.Table.Striped
	features.Compact = appConfig.Table.Compact
	opts.Features = &features

	mode, _ := datatable.ParseMobileView(f.mobileView)
	opts.MobileView = mode
	opts.Breakpoint = &datatable.Breakpoint{
		Width:      appConfig.Table.Breakpoint,
		Hysteresis: datatable.DefaultBreakpoint.Hysteresis,
	}
	opts.AutoClampPage = appConfig.Table.AutoClamp
	opts.Logger = logger

	var pager *table.Pager
	if !f.all {
		pager = table.NewPager(f.pageSize, f.page)
		opts.Pagination = pager.Pagination()
	}

	tbl, err := datatable.New(columns, data, key, opts)
	if err != nil {
		return nil, nil, util.TableConfigError(err)
	}
	if err := applyView(tbl, f); err != nil {
		return nil, nil, err
	}
	if _, err := table.Sync(pager, tbl); err != nil {
		return nil, nil, util.TableConfigError(err)
	}
	return tbl, pager, nil
}

// applyView applies --show, --hide, --sort and --filter.
func applyView[T any](tbl *datatable.Table[T], f tableFlags) error {
	keys := columnKeys(tbl.Columns())
	flagError := func(flag, value string, err error) error {
		return columnFlagError(flag, value, keys, err)
	}

	if len(f.show) > 0 {
		if err := tbl.SetVisibleColumns(f.show); err != nil {
			return flagError("show", strings.Join(f.show, ","), err)
		}
	}
	for _, k := range f.hide {
		if !tbl.IsColumnVisible(k) {
			if _, ok := tbl.Column(k); !ok {
				return flagError("hide", k, datatable.ErrUnknownColumn)
			}
			continue
		}
		if _, err := tbl.ToggleColumn(k); err != nil {
			return flagError("hide", k, err)
		}
	}

	if f.sort != "" {
		state, err := parseSort(f.sort)
		if err != nil {
			return err
		}
		if err := tbl.SetSort(state); err != nil {
			return flagError("sort", f.sort, err)
		}
	}

	filters, err := parseFilters(f.filters)
	if err != nil {
		return err
	}
	if len(filters) > 0 {
		if err := tbl.SetFilters(filters); err != nil {
			return flagError("filter", strings.Join(f.filters, " "), err)
		}
	}
	return nil
}

// columnFlagError turns a table error caused by a flag into a MotoError
// that lists the valid columns.
func columnFlagError(flag, value string, keys []string, err error) error {
	e := util.NewError(fmt.Sprintf("Invalid value for --%s: %q", flag, value)).
		WithMessage(err.Error()).
		Wrap(err)
	if errors.Is(err, datatable.ErrUnknownColumn) {
		e.WithCauses("Valid columns: " + strings.Join(keys, ", "))
	}
	return e
}

// columnKeys lists the keys of the given columns.
func columnKeys[T any](cols []datatable.Column[T]) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// ═══════════════════════════════════════════════════════════════════════════
// Output
// ═══════════════════════════════════════════════════════════════════════════

// showTable exports (--export) or displays the table.
func showTable[T any](cmd *cobra.Command, tbl *datatable.Table[T], pager *table.Pager, f tableFlags, title, watchPath string, reload func() ([]T, error)) error {
	if f.export != "" {
		return exportTo(cmd, tbl, f.export)
	}

	opts := table.DisplayOptions[T]{
		Title:     title,
		JSON:      f.json,
		Raw:       f.raw,
		NoPager:   f.noPager,
		Pager:     pager,
		ExportDir: appConfig.ExportDir(),
		Logger:    logger,
		Out:       cmd.OutOrStdout(),
	}
	if f.watch {
		if watchPath == "" {
			return util.NewError("--watch needs a data file").
				WithSuggestions("motomind events --file events.csv --watch").
				Wrap(util.ErrInvalidFlag)
		}
		opts.WatchPath = watchPath
		opts.Reload = reload
	}
	return table.Display(tbl, opts)
}

// exportTo writes the CSV export of tbl to path.
func exportTo[T any](cmd *cobra.Command, tbl *datatable.Table[T], path string) error {
	path = util.ExpandHome(path)
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	written, err := table.ExportFile(tbl, dir, name)
	if err != nil {
		return util.NewError("Export failed").WithContext(path).Wrap(err)
	}
	logger.Debug("exported", zap.String("path", written), zap.Int("rows", tbl.PageInfo().TotalRows))
	fmt.Fprintln(cmd.ErrOrStderr(), styles.SuccessMsg(fmt.Sprintf("Exported %d rows to %s", tbl.PageInfo().TotalRows, written)))
	return nil
}

