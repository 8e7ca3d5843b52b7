package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVKharkova/foodgram/internal/models"
	"github.com/AVKharkova/foodgram/internal/testutil"
	"github.com/AVKharkova/foodgram/internal/types"
)

func TestAggregateSumsAcrossCart(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	pancakes, err := f.svc.Create(ctx, f.author.ID, f.request)
	require.NoError(t, err)

	bread := f.request
	bread.Name = "Bread"
	bread.Ingredients = []types.IngredientAmount{{ID: f.flour.ID, Amount: 100}}
	loaf, err := f.svc.Create(ctx, f.author.ID, bread)
	require.NoError(t, err)

	viewer := testutil.CreateUser(t, f.db, "viewer")
	require.NoError(t, f.db.Create(&models.ShoppingCart{UserID: viewer.ID, RecipeID: pancakes.ID}).Error)
	require.NoError(t, f.db.Create(&models.ShoppingCart{UserID: viewer.ID, RecipeID: loaf.ID}).Error)

	items, err := NewShoppingListService(f.db).Aggregate(ctx, viewer.ID)
	require.NoError(t, err)

	// Ordered by ingredient name, flour summed across both recipes.
	require.Len(t, items, 2)
	assert.Equal(t, ShoppingListItem{Name: "egg", MeasurementUnit: "pcs", Total: 2}, items[0])
	assert.Equal(t, ShoppingListItem{Name: "wheat flour", MeasurementUnit: "g", Total: 300}, items[1])
}

func TestAggregateIgnoresOtherCarts(t *testing.T) {
	f := setupRecipeFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.author.ID, f.request)
	require.NoError(t, err)

	other := testutil.CreateUser(t, f.db, "other")
	require.NoError(t, f.db.Create(&models.ShoppingCart{UserID: other.ID, RecipeID: created.ID}).Error)

	items, err := NewShoppingListService(f.db).Aggregate(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRenderShoppingList(t *testing.T) {
	items := []ShoppingListItem{
		{Name: "egg", MeasurementUnit: "pcs", Total: 2},
		{Name: "wheat flour", MeasurementUnit: "g", Total: 300},
	}
	assert.Equal(t, "egg (pcs) — 2\nwheat flour (g) — 300", Render(items))
	assert.Equal(t, "", Render(nil))
}
