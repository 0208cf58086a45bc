package reconcile

import (
	"context"
	"errors"
	"testing"

	"codesync/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestBuildIndex_FirstWins tests that the first record for a key is kept.
func TestBuildIndex_FirstWins(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	index, err := BuildIndex([]snapshot.TypeRecord{
		{Category: "Walls", TypeName: "Basic Wall", Code: "A1010"},
		{Category: "WALLS", TypeName: "basic wall", Code: "B2020"},
		{Category: "Doors", TypeName: "Single", Code: "C1020"},
	}, zap.New(core))
	require.NoError(t, err)

	record, ok := index.Lookup(Normalize("walls", "BASIC WALL"))
	require.True(t, ok)
	assert.Equal(t, "A1010", record.Code)
	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 1, index.Duplicates())
	assert.Equal(t, 1, logs.FilterMessage("Duplicate key found").Len())
}

// TestBuildIndex_Empty tests that an empty snapshot is a validation error.
func TestBuildIndex_Empty(t *testing.T) {
	_, err := BuildIndex(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSnapshot))

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

// TestBuildIndex_RejectsIncomplete tests that records without a type name or code are skipped.
func TestBuildIndex_RejectsIncomplete(t *testing.T) {
	index, err := BuildIndex([]snapshot.TypeRecord{
		{Category: "Walls", TypeName: "", Code: "A1010"},
		{Category: "Walls", TypeName: "Basic Wall", Code: ""},
		{Category: "Walls", TypeName: "Curtain Wall", Code: "B2010"},
		{Category: "Walls", TypeName: "Glazed", Code: " "},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())
	assert.Equal(t, 2, index.Rejected())

	record, ok := index.Lookup(Normalize("Walls", "Glazed"))
	require.True(t, ok)
	assert.Equal(t, " ", record.Code)

	_, err = BuildIndex([]snapshot.TypeRecord{{Category: "Walls"}}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

// TestBuildIndex_LegacyPlaceholder tests that the desktop exporter's placeholder
// matches elements without a category.
func TestBuildIndex_LegacyPlaceholder(t *testing.T) {
	index, err := BuildIndex([]snapshot.TypeRecord{
		{Category: "Без категории", TypeName: "Generic", Code: "Z1"},
	}, zap.NewNop())
	require.NoError(t, err)

	record, ok := index.Lookup(Normalize(CategoryLabel(""), "Generic"))
	require.True(t, ok)
	assert.Equal(t, NoCategory, record.Category)
	assert.Equal(t, "Z1", record.Code)
}

// TestBuildIndex_EmptyCategory tests that records without a category match the placeholder.
func TestBuildIndex_EmptyCategory(t *testing.T) {
	index, err := BuildIndex([]snapshot.TypeRecord{{TypeName: "Generic", Code: "Z9999"}}, nil)
	require.NoError(t, err)

	_, ok := index.Lookup(Normalize(NoCategory, "generic"))
	assert.True(t, ok)
}

func TestCodeIndex_KeysKeepInsertionOrder(t *testing.T) {
	index, err := BuildIndex([]snapshot.TypeRecord{
		{Category: "B", TypeName: "2", Code: "x"},
		{Category: "A", TypeName: "1", Code: "y"},
		{Category: "b", TypeName: "2", Code: "z"},
		{Category: "C", TypeName: "3", Code: "w"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []CompositeKey{"b|2", "a|1", "c|3"}, index.Keys())
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	store := snapshot.NewFileStore(dir)
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, snapshot.Save(ctx, store, "ok.json", []snapshot.TypeRecord{
			{Category: "Walls", TypeName: "Basic Wall", Code: "A1010"},
		}))
		index, err := LoadIndex(ctx, store, "ok.json", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, index.Len())
	})

	t.Run("Malformed", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "bad.json", []byte("{not json")))
		_, err := LoadIndex(ctx, store, "bad.json", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
		assert.Contains(t, err.Error(), "bad.json")
	})

	t.Run("Empty List", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "empty.json", []byte("[]")))
		_, err := LoadIndex(ctx, store, "empty.json", nil)
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Null Document", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "null.json", []byte("null")))
		_, err := LoadIndex(ctx, store, "null.json", nil)
		assert.ErrorIs(t, err, ErrInvalidSnapshot)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadIndex(ctx, store, "missing.json", nil)
		assert.ErrorIs(t, err, snapshot.ErrNotFound)
		assert.NotErrorIs(t, err, ErrInvalidSnapshot)
	})
}
