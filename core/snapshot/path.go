package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for snapshot names a remote client may not use.
var ErrInvalidName = errors.New("invalid snapshot name")

// CheckName accepts relative names that stay inside the store and carry a
// snapshot extension. Absolute paths and ".." segments are refused.
func CheckName(name string) error {
	if !filepath.IsLocal(name) || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q must be a relative path inside the store", ErrInvalidName, name)
	}
	if !IsSnapshotName(name) {
		return fmt.Errorf("%w: %q must end in .json, .yaml or .yml", ErrInvalidName, name)
	}
	return nil
}

// FileSuffix is appended to the catalog title to name exported snapshots.
const FileSuffix = "_TypeCodes.json"

// FileName returns the deterministic snapshot name for a catalog title.
func FileName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "catalog"
	}
	// Path separators in a title would escape the target directory.
	title = strings.NewReplacer("/", "_", "\\", "_").Replace(title)
	return title + FileSuffix
}

// ExportPath places the snapshot next to the catalog's backing file. When the
// catalog has no backing file it falls back to fallbackDir, and to the user's
// home directory when fallbackDir is empty too.
func ExportPath(title, sourcePath, fallbackDir string) string {
	dir := ""
	if sourcePath != "" {
		dir = filepath.Dir(sourcePath)
	} else if fallbackDir != "" {
		dir = fallbackDir
	} else if home, err := os.UserHomeDir(); err == nil {
		dir = home
	}
	return filepath.Join(dir, FileName(title))
}
