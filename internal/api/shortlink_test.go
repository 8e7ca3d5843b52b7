package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLinkAndRedirect(t *testing.T) {
	s := newTestServer(t)
	author := s.register("author")
	created := s.createRecipe(author, s.seedCatalog())

	w := s.do(http.MethodGet, "/api/v1/recipes/"+created.ID.String()+"/get-link", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ShortLink string `json:"short-link"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.ShortLink)

	// Same link on repeat requests.
	w = s.do(http.MethodGet, "/api/v1/recipes/"+created.ID.String()+"/get-link", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again struct {
		ShortLink string `json:"short-link"`
	}
	decode(t, w, &again)
	assert.Equal(t, resp.ShortLink, again.ShortLink)

	idx := strings.Index(resp.ShortLink, "/s/")
	require.GreaterOrEqual(t, idx, 0, resp.ShortLink)
	w = s.do(http.MethodGet, resp.ShortLink[idx:], "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/v1/recipes/"+created.ID.String(), w.Header().Get("Location"))
}

func TestRedirectUnknownCode(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/s/doesnotexist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
