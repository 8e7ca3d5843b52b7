package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVKharkova/foodgram/internal/api"
)

func TestFavoriteEndpoints(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author")
	viewer := s.register("viewer")
	created := s.createRecipe(author, s.seedCatalog())
	path := "/api/v1/recipes/" + created.ID.String() + "/favorite"

	w := s.do(http.MethodPost, path, viewer, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var mini api.RecipeMiniView
	decode(t, w, &mini)
	assert.Equal(t, created.ID, mini.ID)
	assert.Equal(t, created.Name, mini.Name)
	assert.Equal(t, created.CookingTime, mini.CookingTime)

	// Double add.
	w = s.do(http.MethodPost, path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The viewer now sees the flag on reads.
	w = s.do(http.MethodGet, "/api/v1/recipes/"+created.ID.String(), viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got api.RecipeView
	decode(t, w, &got)
	assert.True(t, got.IsFavorited)

	w = s.do(http.MethodDelete, path, viewer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Removing what is not there.
	w = s.do(http.MethodDelete, path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing recipe beats missing relation.
	w = s.do(http.MethodDelete, "/api/v1/recipes/"+uuid.NewString()+"/favorite", viewer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShoppingCartEndpoints(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author")
	viewer := s.register("viewer")
	created := s.createRecipe(author, s.seedCatalog())
	path := "/api/v1/recipes/" + created.ID.String() + "/shopping_cart"

	w := s.do(http.MethodPost, path, viewer, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, path, viewer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/recipes/"+uuid.NewString()+"/shopping_cart", viewer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadShoppingCart(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author")
	viewer := s.register("viewer")
	payload := s.seedCatalog()

	pancakes := s.createRecipe(author, payload)

	bread := payload
	bread.Name = "Bread"
	bread.Ingredients = payload.Ingredients[:1]
	bread.Ingredients[0].Amount = 100
	loaf := s.createRecipe(author, bread)

	for _, id := range []uuid.UUID{pancakes.ID, loaf.ID} {
		w := s.do(http.MethodPost, "/api/v1/recipes/"+id.String()+"/shopping_cart", viewer, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/v1/recipes/download_shopping_cart", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_cart.txt")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "egg (pcs) — 2", lines[0])
	assert.Equal(t, "wheat flour (g) — 300", lines[1])
}

func TestDownloadEmptyCart(t *testing.T) {
	s := newTestServer(t)
	viewer := s.register("viewer")

	w := s.do(http.MethodGet, "/api/v1/recipes/download_shopping_cart", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
