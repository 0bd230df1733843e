package table

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/motomind/motomind/internal/datatable"
)

// ExportFile writes the table's CSV export to dir/name. The data goes to a
// temp file that is renamed into place, so a failed export never leaves a
// partial file behind. Returns the final path.
func ExportFile[T any](tbl *datatable.Table[T], dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	finalPath := filepath.Join(dir, name)

	tmpFile, err := os.CreateTemp(dir, "."+name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp export file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if err := tbl.ExportCSV(tmpFile); err != nil {
		tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("closing temp export file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("setting export file mode: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("renaming export file: %w", err)
	}

	success = true
	return finalPath, nil
}
