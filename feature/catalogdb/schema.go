package catalogdb

import (
	"context"
	"fmt"

	"codesync/core/database"

	"gorm.io/gorm"
)

// RequiredColumns lists the columns each catalog table must have.
var RequiredColumns = map[string][]string{
	ElementRow{}.TableName():   {"id", "kind", "category", "name", "type_id"},
	ParameterRow{}.TableName(): {"id", "element_id", "name", "storage", "read_only", "value", "max_length"},
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ElementRow{}, &ParameterRow{}); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// SchemaReport is the result of Inspect.
type SchemaReport struct {
	// Missing maps table name to the columns it lacks.
	Missing   map[string][]string `json:"missing"`
	Types     int64               `json:"types"`
	Instances int64               `json:"instances"`
}

// OK reports whether every table has every required column.
func (r *SchemaReport) OK() bool {
	return len(r.Missing) == 0
}

// Inspect checks the catalog schema and counts elements. Counting is
// skipped when columns are missing.
func Inspect(ctx context.Context, db *gorm.DB) (*SchemaReport, error) {
	report := &SchemaReport{Missing: map[string][]string{}}

	for _, table := range []string{ElementRow{}.TableName(), ParameterRow{}.TableName()} {
		missing, err := database.MissingColumns(db.WithContext(ctx), table, RequiredColumns[table])
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			report.Missing[table] = missing
		}
	}
	if !report.OK() {
		return report, nil
	}

	if err := db.WithContext(ctx).Model(&ElementRow{}).Where("kind = ?", KindType).Count(&report.Types).Error; err != nil {
		return nil, fmt.Errorf("failed to count types: %w", err)
	}
	if err := db.WithContext(ctx).Model(&ElementRow{}).Where("kind = ?", KindInstance).Count(&report.Instances).Error; err != nil {
		return nil, fmt.Errorf("failed to count instances: %w", err)
	}
	return report, nil
}
