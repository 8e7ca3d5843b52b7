package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/models"
	"github.com/AVKharkova/foodgram/internal/service"
	"github.com/AVKharkova/foodgram/internal/types"
)

type RecipeHandler struct {
	cfg          *config.Config
	recipes      *service.RecipeService
	relations    *service.RelationService
	shoppingList *service.ShoppingListService
	shortLinks   *service.ShortLinkService
}

func NewRecipeHandler(
	cfg *config.Config,
	recipes *service.RecipeService,
	relations *service.RelationService,
	shoppingList *service.ShoppingListService,
	shortLinks *service.ShortLinkService,
) *RecipeHandler {
	return &RecipeHandler{
		cfg:          cfg,
		recipes:      recipes,
		relations:    relations,
		shoppingList: shoppingList,
		shortLinks:   shortLinks,
	}
}

// RegisterPublicRoutes attaches the read endpoints; the group is
// expected to carry the optional-auth middleware.
func (h *RecipeHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/get-link", h.GetLink)
	}
}

// RegisterProtectedRoutes attaches the write and relation endpoints; the
// group is expected to carry the required-auth middleware.
func (h *RecipeHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/download_shopping_cart", h.DownloadShoppingCart)
		recipes.POST("/:id/favorite", h.AddFavorite)
		recipes.DELETE("/:id/favorite", h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Page:  1,
		Limit: h.cfg.PageSize,
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
		if filter.Limit > h.cfg.MaxPageSize {
			filter.Limit = h.cfg.MaxPageSize
		}
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.Author = &authorID
	}
	filter.TagSlugs = c.QueryArray("tags")
	filter.Favorited = c.Query("is_favorited") == "1"
	filter.InCart = c.Query("is_in_shopping_cart") == "1"

	viewer := viewerID(c)
	recipes, total, err := h.recipes.List(c.Request.Context(), filter, viewer)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	results := make([]RecipeView, len(recipes))
	for i := range recipes {
		results[i] = NewRecipeView(&recipes[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": results,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id, viewerID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeView(recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRecipeView(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRecipeView(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	link, err := h.shortLinks.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"short-link": fmt.Sprintf("%s/s/%s", h.baseURL(c), link.ShortCode),
	})
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.relations.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addRelation(c, h.relations.AddToCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFromCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.shoppingList.Aggregate(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.Render(items)))
}

func (h *RecipeHandler) addRelation(c *gin.Context, add func(context.Context, uuid.UUID, uuid.UUID) (*models.Recipe, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := add(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRecipeMiniView(recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(context.Context, uuid.UUID, uuid.UUID) error) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := remove(c.Request.Context(), userID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) baseURL(c *gin.Context) string {
	if h.cfg.PublicBaseURL != "" {
		return strings.TrimRight(h.cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated caller; the required-auth
// middleware guarantees presence on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return value.(uuid.UUID), true
}

// viewerID returns the caller's id or nil for anonymous requests.
func viewerID(c *gin.Context) *uuid.UUID {
	if value, exists := c.Get("user_id"); exists {
		id := value.(uuid.UUID)
		return &id
	}
	return nil
}
