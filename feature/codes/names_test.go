package codes

import (
	"context"
	"errors"
	"testing"

	"codesync/core/catalog"
	"codesync/core/catalog/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	assert.Equal(t, "A1010", FullName("A1010", ""))
	assert.Equal(t, "A1010_Exterior wall", FullName("A1010", "Exterior wall"))
}

func nameCatalog() *mocks.Catalog {
	return mocks.NewCatalog("Tower").Add(
		mocks.NewElement("t1", "Walls", "Basic Wall",
			mocks.Code("A1010"), mocks.Text(catalog.DescriptionParameter, "Exterior wall")),
		mocks.NewElement("t2", "Doors", "Single",
			mocks.Code("C1020"), mocks.Text(catalog.DescriptionParameter, "")),
		mocks.NewElement("t3", "Floors", "Generic",
			mocks.Code(""), mocks.Text(catalog.DescriptionParameter, "Slab")),
		mocks.NewElement("t4", "Roofs", "Flat", mocks.Code("B1020")),
	)
}

// TestDeriveNames tests every outcome of name derivation.
func TestDeriveNames(t *testing.T) {
	cat := nameCatalog()

	numeric := &mocks.Parameter{NameValue: catalog.FullNameParameter, Kind: catalog.StorageElementID, Value: "17"}
	locked := mocks.Text(catalog.FullNameParameter, "")
	locked.Locked = true

	wall := mocks.NewInstance("i1", "Wall 1", "t1", mocks.Text(catalog.FullNameParameter, ""))
	door := mocks.NewInstance("i2", "Door 1", "t2", mocks.Text(catalog.FullNameParameter, "C1020"))
	cat.AddInstances(
		wall,
		door,
		mocks.NewInstance("i3", "Floor 1", "t3", mocks.Text(catalog.FullNameParameter, "")),
		mocks.NewInstance("i4", "Roof 1", "t4", mocks.Text(catalog.FullNameParameter, "")),
		mocks.NewInstance("i5", "Orphan", "missing", mocks.Text(catalog.FullNameParameter, "")),
		mocks.NewInstance("i6", "Wall 2", "t1"),
		mocks.NewInstance("i7", "Wall 3", "t1", numeric),
		mocks.NewInstance("i8", "Wall 4", "t1", locked),
	)

	summary, err := DeriveNames(context.Background(), cat, NameOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Visited)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.AlreadyCorrect)
	assert.Equal(t, 1, summary.NoMatch)
	assert.Equal(t, "A1010_Exterior wall", wall.Params[catalog.FullNameParameter].Value)
	assert.Zero(t, door.Params[catalog.FullNameParameter].Sets)
	assert.Equal(t, "17", numeric.Value)

	reasons := make(map[string]string)
	for _, p := range summary.Problems {
		reasons[p.Identifier] = p.Reason
	}
	assert.Equal(t, map[string]string{
		"Roof 1 (i4)": ReasonDescMissing,
		"Orphan (i5)": ReasonTypeNotFound,
		"Wall 2 (i6)": ReasonTargetMissing,
		"Wall 3 (i7)": ReasonTargetNotText,
		"Wall 4 (i8)": ReasonTargetReadOnly,
	}, reasons)

	assert.Equal(t, 1, cat.Commits)
	assert.Equal(t, []string{DefaultNamesLabel}, cat.Labels)
}

func TestDeriveNames_DryRun(t *testing.T) {
	cat := nameCatalog()
	wall := mocks.NewInstance("i1", "Wall 1", "t1", mocks.Text(catalog.FullNameParameter, ""))
	cat.AddInstances(wall)

	summary, err := DeriveNames(context.Background(), cat, NameOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "", wall.Params[catalog.FullNameParameter].Value)
	assert.Equal(t, 1, cat.Rollbacks)
}

func TestDeriveNames_CustomTarget(t *testing.T) {
	cat := nameCatalog()
	wall := mocks.NewInstance("i1", "Wall 1", "t1", mocks.Text("Mark", ""))
	cat.AddInstances(wall)

	summary, err := DeriveNames(context.Background(), cat, NameOptions{Target: "Mark"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, "A1010_Exterior wall", wall.Params["Mark"].Value)
}

func TestDeriveNames_WriteFailures(t *testing.T) {
	cat := nameCatalog()
	failing := mocks.Text(catalog.FullNameParameter, "")
	failing.SetErr = errors.New("disk full")
	short := mocks.Text(catalog.FullNameParameter, "")
	short.MaxLength = 5
	cat.AddInstances(
		mocks.NewInstance("i1", "Wall 1", "t1", failing),
		mocks.NewInstance("i2", "Wall 2", "t1", short),
	)

	summary, err := DeriveNames(context.Background(), cat, NameOptions{})
	require.NoError(t, err)
	require.Len(t, summary.Problems, 2)
	assert.Contains(t, summary.Problems[0].Reason, "disk full")
	assert.Contains(t, summary.Problems[1].Reason, "write did not take effect")
}

func TestDeriveNames_TypeLookupFailure(t *testing.T) {
	cat := nameCatalog()
	broken := mocks.NewElement("t5", "Walls", "Broken", mocks.Code("A2020"))
	broken.ParameterErr = errors.New("connection reset")
	cat.Add(broken)
	cat.AddInstances(mocks.NewInstance("i1", "Wall 1", "t5", mocks.Text(catalog.FullNameParameter, "")))

	summary, err := DeriveNames(context.Background(), cat, NameOptions{})
	require.NoError(t, err)
	require.Len(t, summary.Problems, 1)
	assert.Contains(t, summary.Problems[0].Reason, "connection reset")
	assert.NotEqual(t, ReasonCodeMissing, summary.Problems[0].Reason)
}

func TestDeriveNames_StructuralErrors(t *testing.T) {
	t.Run("Enumeration", func(t *testing.T) {
		cat := nameCatalog()
		cat.InstancesErr = errors.New("offline")

		_, err := DeriveNames(context.Background(), cat, NameOptions{})
		assert.ErrorContains(t, err, "failed to enumerate instances")
		assert.Equal(t, 1, cat.Rollbacks)
		assert.Zero(t, cat.Commits)
	})

	t.Run("Begin", func(t *testing.T) {
		cat := nameCatalog()
		cat.BeginErr = errors.New("locked")

		_, err := DeriveNames(context.Background(), cat, NameOptions{})
		assert.ErrorContains(t, err, "failed to begin session")
	})
}

func TestDeriveNames_IsIdempotent(t *testing.T) {
	cat := nameCatalog()
	wall := mocks.NewInstance("i1", "Wall 1", "t1", mocks.Text(catalog.FullNameParameter, ""))
	cat.AddInstances(wall)

	_, err := DeriveNames(context.Background(), cat, NameOptions{})
	require.NoError(t, err)
	summary, err := DeriveNames(context.Background(), cat, NameOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 1, summary.AlreadyCorrect)
}
