package cli

import (
	"github.com/spf13/cobra"

	"github.com/motomind/motomind/internal/dataset"
	"github.com/motomind/motomind/internal/datatable"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a filtered, sorted CSV export of a data file",
		Long: `Export the rows of a data file that pass the filters, in sort order,
as CSV. Only visible columns are written, under their header labels. Every
field is double-quoted. Pagination does not apply: all matching rows are
exported.

Without -o the CSV goes to stdout.

Examples:
  motomind export events.csv -o repairs.csv --filter type=repair --sort cost:desc
  motomind export fleet.yaml --show vin,model,miles | less`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().String("columns", "", "YAML column spec")
	cmd.Flags().String("key", "", "Field that uniquely identifies a row")
	cmd.Flags().String("sort", "", "Sort column, e.g. cost or cost:desc")
	cmd.Flags().StringArray("filter", nil, "Column filter key=query (repeatable, combined with AND)")
	cmd.Flags().StringSlice("hide", nil, "Columns to leave out")
	cmd.Flags().StringSlice("show", nil, "Columns to write (leaves out the rest)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	var flags tableFlags
	flags.all = true
	flags.mobileView = "auto"
	flags.sort, _ = cmd.Flags().GetString("sort")
	flags.filters, _ = cmd.Flags().GetStringArray("filter")
	flags.hide, _ = cmd.Flags().GetStringSlice("hide")
	flags.show, _ = cmd.Flags().GetStringSlice("show")
	output, _ := cmd.Flags().GetString("output")
	specPath, _ := cmd.Flags().GetString("columns")
	key, _ := cmd.Flags().GetString("key")

	ds, spec, err := loadDataset(args[0], specPath, key)
	if err != nil {
		return err
	}
	tbl, _, err := datasetTable(flags, ds, spec, datatable.Options[dataset.Record]{})
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		return tbl.ExportCSV(cmd.OutOrStdout())
	}
	return exportTo(cmd, tbl, output)
}
