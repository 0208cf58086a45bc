package catalogdb

import (
	"context"
	"fmt"

	"codesync/core/utils"

	"github.com/goccy/go-yaml"
	"gorm.io/gorm"
)

// Fixture describes catalog content to seed a database with.
type Fixture struct {
	Types     []FixtureType     `yaml:"types"`
	Instances []FixtureInstance `yaml:"instances"`
}

// FixtureType is an element type. Ref names it for instances to point at.
type FixtureType struct {
	Ref        string             `yaml:"ref"`
	Category   string             `yaml:"category"`
	Name       string             `yaml:"name"`
	Parameters []FixtureParameter `yaml:"parameters"`
}

// FixtureInstance is an element instance of the type named by Type.
type FixtureInstance struct {
	Name       string             `yaml:"name"`
	Type       string             `yaml:"type"`
	Parameters []FixtureParameter `yaml:"parameters"`
}

// FixtureParameter is a parameter value. Storage defaults to text; Value may
// be any YAML scalar and is stored as text.
type FixtureParameter struct {
	Name      string `yaml:"name"`
	Storage   string `yaml:"storage"`
	Value     any    `yaml:"value"`
	ReadOnly  bool   `yaml:"read_only"`
	MaxLength int    `yaml:"max_length"`
}

// ParseFixture decodes a YAML fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture inserts the fixture's rows in a single transaction.
func LoadFixture(ctx context.Context, db *gorm.DB, f *Fixture) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := make(map[string]uint, len(f.Types))

		for _, t := range f.Types {
			row := ElementRow{Kind: KindType, Category: t.Category, Name: t.Name}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert type %s: %w", t.Name, err)
			}
			if t.Ref != "" {
				refs[t.Ref] = row.ID
			}
			if err := createParameters(tx, row.ID, t.Parameters); err != nil {
				return err
			}
		}

		for _, inst := range f.Instances {
			row := ElementRow{Kind: KindInstance, Name: inst.Name}
			if inst.Type != "" {
				id, ok := refs[inst.Type]
				if !ok {
					return fmt.Errorf("instance %s refers to unknown type %q", inst.Name, inst.Type)
				}
				row.TypeID = &id
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert instance %s: %w", inst.Name, err)
			}
			if err := createParameters(tx, row.ID, inst.Parameters); err != nil {
				return err
			}
		}

		return nil
	})
}

func createParameters(tx *gorm.DB, elementID uint, params []FixtureParameter) error {
	for _, p := range params {
		storage := p.Storage
		if storage == "" {
			storage = "text"
		}
		row := ParameterRow{
			ElementID: elementID,
			Name:      p.Name,
			Storage:   storage,
			ReadOnly:  p.ReadOnly,
			Value:     utils.ToString(p.Value),
			MaxLength: p.MaxLength,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert parameter %s: %w", p.Name, err)
		}
	}
	return nil
}
