package codes

import (
	"context"
	"errors"
	"fmt"

	"codesync/core/catalog"
	"codesync/core/reconcile"
	"codesync/core/snapshot"

	"go.uber.org/zap"
)

// ExportRecords projects every element type with a non-empty code into a
// snapshot record, in catalog order. It reads without opening a session.
// Types without the code parameter are skipped.
func ExportRecords(ctx context.Context, cat catalog.Catalog, parameter string, log *zap.Logger) ([]snapshot.TypeRecord, error) {
	if parameter == "" {
		parameter = catalog.CodeParameter
	}
	if log == nil {
		log = zap.NewNop()
	}

	elements, err := cat.Elements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate element types: %w", err)
	}

	records := make([]snapshot.TypeRecord, 0, len(elements))
	for _, element := range elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		param, err := element.Parameter(parameter)
		if err != nil {
			if !errors.Is(err, catalog.ErrParameterNotFound) {
				log.Warn("Skipping element type", zap.String("element", element.ID()), zap.Error(err))
			}
			continue
		}

		code, err := param.Get()
		if err != nil {
			log.Warn("Failed to read code", zap.String("element", element.ID()), zap.Error(err))
			continue
		}
		if !reconcile.HasCode(code) {
			continue
		}

		records = append(records, snapshot.TypeRecord{
			Category: reconcile.CategoryLabel(element.Category()),
			TypeName: element.Name(),
			Code:     code,
		})
	}

	return records, nil
}
