// =============================================================================
// WizBang Client - File Manager Utility
// =============================================================================
//
// File management utilities for the report exporter:
//   - Export directory management
//   - Export file naming from a placeholder format
//
// NAMING:
//   Export file names are built from a format string with placeholders:
//     {uuid}      - A random UUID
//     {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//     {kind}      - Report kind ("menu", "invoice")
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates a directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// BuildExportName expands an export file name format for a report kind.
func BuildExportName(format, kind string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{kind}", kind)
	return name
}

// BuildExportPath joins the export directory with an expanded file name,
// creating the directory if needed.
func BuildExportPath(dir, format, kind string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, BuildExportName(format, kind)), nil
}
