package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVKharkova/foodgram/internal/testutil"
)

func TestListIngredientsByPrefix(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "sunflower oil", "ml")
	testutil.CreateIngredient(t, db, "salt", "g")

	svc := NewCatalogService(db)

	// Prefix matching is case-insensitive.
	matched, err := svc.ListIngredients(ctx, "su")
	require.NoError(t, err)
	require.Len(t, matched, 2)
	names := []string{matched[0].Name, matched[1].Name}
	assert.Contains(t, names, "Sugar")
	assert.Contains(t, names, "sunflower oil")

	// "alt" appears inside "salt" but is not a prefix.
	none, err := svc.ListIngredients(ctx, "alt")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetTagAndIngredient(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	tag := testutil.CreateTag(t, db, "Dinner", "dinner")
	ingredient := testutil.CreateIngredient(t, db, "egg", "pcs")

	svc := NewCatalogService(db)

	gotTag, err := svc.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "dinner", gotTag.Slug)

	gotIngredient, err := svc.GetIngredient(ctx, ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "pcs", gotIngredient.MeasurementUnit)

	_, err = svc.GetTag(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetIngredient(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTags(t *testing.T) {
	db := testutil.OpenDB(t)

	testutil.CreateTag(t, db, "Breakfast", "breakfast")
	testutil.CreateTag(t, db, "Dinner", "dinner")

	tags, err := NewCatalogService(db).ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}
