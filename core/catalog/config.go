package catalog

import "codesync/core/database"

// Config holds configuration for the live catalog.
type Config struct {
	// Title names the catalog in exported snapshot file names.
	Title string `mapstructure:"title" default:"catalog"`
	// ExportDir receives exports when the catalog has no backing file. Empty means the home directory.
	ExportDir string `mapstructure:"export_dir" default:""`
	// Database is the connection of the SQL catalog.
	Database database.Config `mapstructure:"database"`
}

// SourcePath returns the catalog's backing file, or "" when it has none.
func (c Config) SourcePath() string {
	if c.Database.IsFile() {
		return c.Database.Name
	}
	return ""
}
