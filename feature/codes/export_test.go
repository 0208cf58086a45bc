package codes

import (
	"context"
	"errors"
	"testing"

	"codesync/core/catalog"
	"codesync/core/catalog/mocks"
	"codesync/core/reconcile"
	"codesync/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRecords(t *testing.T) {
	unreadable := mocks.Code("X")
	unreadable.GetErr = errors.New("corrupt")

	cat := mocks.NewCatalog("Tower").Add(
		mocks.NewElement("1", "Walls", "Basic Wall", mocks.Code("A1010")),
		mocks.NewElement("2", "Doors", "Single-Flush", mocks.Code("")),
		mocks.NewElement("3", "Floors", "Generic 300"),
		mocks.NewElement("4", "", "Generic", mocks.Code("Z1")),
		mocks.NewElement("5", "Roofs", "Flat", unreadable),
	)

	records, err := ExportRecords(context.Background(), cat, "", nil)
	require.NoError(t, err)

	assert.Equal(t, []snapshot.TypeRecord{
		{Category: "Walls", TypeName: "Basic Wall", Code: "A1010"},
		{Category: reconcile.NoCategory, TypeName: "Generic", Code: "Z1"},
	}, records)
	assert.Zero(t, cat.Commits+cat.Rollbacks)
	assert.Empty(t, cat.Labels)
}

func TestExportRecords_CustomParameter(t *testing.T) {
	cat := mocks.NewCatalog("Tower").Add(
		mocks.NewElement("1", "Walls", "Basic Wall", mocks.Code("A1010"), mocks.Text("Assembly Code", "B2")),
	)

	records, err := ExportRecords(context.Background(), cat, "Assembly Code", nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B2", records[0].Code)
}

func TestExportRecords_EnumerationFailure(t *testing.T) {
	cat := mocks.NewCatalog("Tower")
	cat.ElementsErr = errors.New("offline")

	_, err := ExportRecords(context.Background(), cat, catalog.CodeParameter, nil)
	assert.ErrorContains(t, err, "failed to enumerate element types")
}

func TestExportRecords_Empty(t *testing.T) {
	records, err := ExportRecords(context.Background(), mocks.NewCatalog("Tower"), "", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}
