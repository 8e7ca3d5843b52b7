package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/api"
	"github.com/AVKharkova/foodgram/internal/router"
	"github.com/AVKharkova/foodgram/internal/service"
	"github.com/AVKharkova/foodgram/internal/testutil"
	"github.com/AVKharkova/foodgram/internal/types"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		MediaDir:    t.TempDir(),
		PageSize:    6,
		MaxPageSize: 100,
	}

	images, err := service.NewLocalImageService(cfg.MediaDir)
	require.NoError(t, err)

	authSvc := service.NewAuthService(db, cfg.JWTSecret)
	recipes := service.NewRecipeService(db, images)
	shortLinks := service.NewShortLinkService(db)

	engine := router.Setup(
		cfg,
		api.NewAuthHandler(authSvc),
		api.NewCatalogHandler(service.NewCatalogService(db)),
		api.NewRecipeHandler(cfg, recipes, service.NewRelationService(db),
			service.NewShoppingListService(db), shortLinks),
		api.NewShortLinkHandler(shortLinks),
		authSvc,
		nil,
	)
	return &testServer{t: t, db: db, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// register creates a user over the API and returns their token.
func (s *testServer) register(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "correct horse battery",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &resp)
	return resp.Token
}

// seedCatalog inserts one tag and two ingredients and returns a valid
// recipe write payload referencing them.
func (s *testServer) seedCatalog() types.CreateRecipeRequest {
	s.t.Helper()
	tag := testutil.CreateTag(s.t, s.db, "Dinner", "dinner")
	flour := testutil.CreateIngredient(s.t, s.db, "wheat flour", "g")
	egg := testutil.CreateIngredient(s.t, s.db, "egg", "pcs")
	return types.CreateRecipeRequest{
		Ingredients: []types.IngredientAmount{
			{ID: flour.ID, Amount: 200},
			{ID: egg.ID, Amount: 2},
		},
		Tags:        []uuid.UUID{tag.ID},
		Image:       "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake image bytes")),
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
	}
}

// createRecipe posts the payload and returns the created recipe view.
func (s *testServer) createRecipe(token string, payload types.CreateRecipeRequest) api.RecipeView {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/recipes", token, payload)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var view api.RecipeView
	decode(s.t, w, &view)
	return view
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
