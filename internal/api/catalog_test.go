package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVKharkova/foodgram/internal/api"
	"github.com/AVKharkova/foodgram/internal/testutil"
)

func TestTagEndpoints(t *testing.T) {
	s := newTestServer(t)
	tag := testutil.CreateTag(t, s.db, "Dinner", "dinner")
	testutil.CreateTag(t, s.db, "Breakfast", "breakfast")

	w := s.do(http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tags []api.TagView
	decode(t, w, &tags)
	assert.Len(t, tags, 2)

	w = s.do(http.MethodGet, "/api/v1/tags/"+tag.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got api.TagView
	decode(t, w, &got)
	assert.Equal(t, "dinner", got.Slug)

	w = s.do(http.MethodGet, "/api/v1/tags/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/tags/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngredientEndpoints(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateIngredient(t, s.db, "sugar", "g")
	testutil.CreateIngredient(t, s.db, "sunflower oil", "ml")
	testutil.CreateIngredient(t, s.db, "salt", "g")

	w := s.do(http.MethodGet, "/api/v1/ingredients?name=su", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var matched []api.IngredientView
	decode(t, w, &matched)
	assert.Len(t, matched, 2)

	w = s.do(http.MethodGet, "/api/v1/ingredients", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []api.IngredientView
	decode(t, w, &all)
	assert.Len(t, all, 3)

	w = s.do(http.MethodGet, "/api/v1/ingredients/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
