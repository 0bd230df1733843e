package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/motomind/motomind/internal/dataset"
	"github.com/motomind/motomind/internal/datatable"
	"github.com/motomind/motomind/internal/ui/table"
	"github.com/motomind/motomind/internal/util"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "View any CSV, JSON or YAML table",
		Long: `Show a data file in the interactive table viewer.

Columns are derived from the file: one per field, numeric fields right
aligned and sorted numerically, date fields sorted chronologically. A YAML
column spec (--columns) picks, orders and formats columns instead:

  key_column: id
  hidden: [notes]
  columns:
    - key: cost
      header: Cost
      format: currency
      align: right

Rows are identified by --key (or key_column) when given, otherwise by a
hash of their contents.`,
		Args: cobra.ExactArgs(1),
		RunE: runView,
	}

	cmd.Flags().String("columns", "", "YAML column spec")
	cmd.Flags().String("key", "", "Field that uniquely identifies a row")
	addTableFlags(cmd)

	return cmd
}

// loadDataset reads a data file and its column spec.
func loadDataset(path, specPath, key string) (*dataset.Dataset, *dataset.Spec, error) {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, nil, util.DataFileError(path, err)
	}

	spec := dataset.InferSpec(ds)
	if specPath != "" {
		if spec, err = dataset.LoadSpec(specPath); err != nil {
			return nil, nil, util.DataFileError(specPath, err)
		}
	}
	if key != "" {
		spec.KeyColumn = key
	}
	return ds, spec, nil
}

// datasetTable builds a table over ds from the column spec and the shared
// flags.
func datasetTable(flags tableFlags, ds *dataset.Dataset, spec *dataset.Spec, opts datatable.Options[dataset.Record]) (*datatable.Table[dataset.Record], *table.Pager, error) {
	cols, err := spec.Build(ds)
	if err != nil {
		return nil, nil, util.TableConfigError(err)
	}
	if len(spec.Hidden) > 0 {
		flags.hide = append(append([]string(nil), spec.Hidden...), flags.hide...)
	}
	return newTable(flags, cols, ds.Records, spec.KeyFunc(), opts)
}

func runView(cmd *cobra.Command, args []string) error {
	flags, err := parseTableFlags(cmd)
	if err != nil {
		return err
	}
	specPath, _ := cmd.Flags().GetString("columns")
	key, _ := cmd.Flags().GetString("key")

	path := args[0]
	ds, spec, err := loadDataset(path, specPath, key)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded",
		zap.String("path", path),
		zap.String("format", ds.Format),
		zap.Int("fields", len(ds.Fields)),
		zap.Int("records", len(ds.Records)))

	tbl, pager, err := datasetTable(flags, ds, spec, datatable.Options[dataset.Record]{
		OnRowClick: func(r dataset.Record) {
			logger.Debug("row opened", zap.String("hash", r.Hash()))
		},
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s (%s)", filepath.Base(path), ds.Format)
	reload := func() ([]dataset.Record, error) {
		next, err := dataset.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return next.Records, nil
	}
	return showTable(cmd, tbl, pager, flags, title, path, reload)
}
