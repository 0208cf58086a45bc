package catalogdb

import "codesync/core/catalog"

// Element kinds stored in the kind column.
const (
	KindType     = "type"
	KindInstance = "instance"
)

// ElementRow is a row of the catalog_elements table.
type ElementRow struct {
	ID       uint   `gorm:"column:id;primaryKey"`
	Kind     string `gorm:"column:kind;size:16;index"`
	Category string `gorm:"column:category;size:255"`
	Name     string `gorm:"column:name;size:255"`
	TypeID   *uint  `gorm:"column:type_id;index"` // instances only
}

// TableName overrides the table name.
func (ElementRow) TableName() string {
	return "catalog_elements"
}

// ParameterRow is a row of the catalog_parameters table.
type ParameterRow struct {
	ID        uint   `gorm:"column:id;primaryKey"`
	ElementID uint   `gorm:"column:element_id;uniqueIndex:idx_element_parameter"`
	Name      string `gorm:"column:name;size:255;uniqueIndex:idx_element_parameter"`
	Storage   string `gorm:"column:storage;size:16;default:text"`
	ReadOnly  bool   `gorm:"column:read_only"`
	Value     string `gorm:"column:value;type:text"`
	MaxLength int    `gorm:"column:max_length"` // 0 = unlimited
}

// TableName overrides the table name.
func (ParameterRow) TableName() string {
	return "catalog_parameters"
}

// StorageKind converts the stored storage name. Unknown names are treated as text.
func (p ParameterRow) StorageKind() catalog.StorageKind {
	switch catalog.StorageKind(p.Storage) {
	case catalog.StorageInteger, catalog.StorageDouble, catalog.StorageElementID:
		return catalog.StorageKind(p.Storage)
	default:
		return catalog.StorageText
	}
}
