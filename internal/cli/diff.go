package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/motomind/motomind/internal/compare"
	"github.com/motomind/motomind/internal/ui/styles"
	"github.com/motomind/motomind/internal/util"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old.csv> <new.csv>",
		Short: "Compare two CSV exports",
		Long: `Show which rows were added or removed between two CSV exports.

Exports are compared line by line, so a changed row shows as one removed
and one added line. Use --stat for the counts only.

Examples:
  motomind diff march.csv april.csv
  motomind diff march.csv april.csv --stat`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().IntP("context", "U", 3, "Number of unchanged rows to show around changes")
	cmd.Flags().Bool("stat", false, "Show only the number of added and removed rows")
	cmd.Flags().Bool("exit-code", false, "Exit with status 1 when the exports differ")

	return cmd
}

// errExportsDiffer makes the command fail under --exit-code.
var errExportsDiffer = util.NewError("Exports differ")

func runDiff(cmd *cobra.Command, args []string) error {
	contextLines, _ := cmd.Flags().GetInt("context")
	statOnly, _ := cmd.Flags().GetBool("stat")
	exitCode, _ := cmd.Flags().GetBool("exit-code")
	if contextLines < 0 {
		return util.InvalidFlagError("context", fmt.Sprint(contextLines), "-U 1")
	}

	oldContent, err := os.ReadFile(args[0])
	if err != nil {
		return util.DataFileError(args[0], err)
	}
	newContent, err := os.ReadFile(args[1])
	if err != nil {
		return util.DataFileError(args[1], err)
	}

	res := compare.Exports(string(oldContent), string(newContent), contextLines)
	out := cmd.OutOrStdout()

	if res.Equal() {
		fmt.Fprintln(out, styles.SuccessMsg("Exports are identical"))
		return nil
	}

	if !statOnly {
		fmt.Fprintln(out, styles.Render(styles.Bold, "--- "+args[0]))
		fmt.Fprintln(out, styles.Render(styles.Bold, "+++ "+args[1]))
		printHunks(out, res.Hunks)
	}
	if res.HeaderChanged {
		fmt.Fprintln(out, styles.WarningMsg("Column headers differ"))
	}
	fmt.Fprintf(out, "%s, %s\n",
		styles.Green(fmt.Sprintf("%d rows added", res.Added)),
		styles.Red(fmt.Sprintf("%d rows removed", res.Removed)))

	if exitCode {
		return errExportsDiffer
	}
	return nil
}

func printHunks(w io.Writer, hunks []compare.Hunk) {
	for _, h := range hunks {
		fmt.Fprintln(w, styles.Render(styles.InfoStyle,
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)))
		for _, l := range h.Lines {
			switch l.Type {
			case compare.LineAdd:
				fmt.Fprintln(w, styles.Render(styles.DiffAddLine, "+"+l.Content))
			case compare.LineDelete:
				fmt.Fprintln(w, styles.Render(styles.DiffRemoveLine, "-"+l.Content))
			default:
				fmt.Fprintln(w, styles.Render(styles.DiffContextLine, " "+l.Content))
			}
		}
	}
}
