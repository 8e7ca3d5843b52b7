package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AVKharkova/foodgram/internal/models"
	"github.com/AVKharkova/foodgram/internal/types"
)

// RecipeNameMaxLength bounds the recipe name on writes.
const RecipeNameMaxLength = 256

// RecipeFilter narrows and paginates recipe listings.
type RecipeFilter struct {
	Author    *uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Page      int
	Limit     int
}

// RecipeService validates and persists recipe aggregates and serves
// hydrated read views.
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
	}
}

// annotated builds the base read query. For authenticated viewers the
// favorited/in-cart flags come from correlated EXISTS subqueries in the
// same SELECT, so listing N recipes stays a single query.
func (s *RecipeService) annotated(ctx context.Context, viewer *uuid.UUID) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	if viewer != nil {
		query = query.Select(
			`recipes.*,
			EXISTS(SELECT 1 FROM favorites WHERE favorites.recipe_id = recipes.id AND favorites.user_id = ?) AS is_favorited,
			EXISTS(SELECT 1 FROM shopping_carts WHERE shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?) AS is_in_shopping_cart`,
			*viewer, *viewer,
		)
	} else {
		query = query.Select("recipes.*")
	}
	return query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient")
}

// Get returns one hydrated recipe.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.annotated(ctx, viewer).Where("recipes.id = ?", id).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns a page of hydrated recipes plus the total match count.
func (s *RecipeService) List(ctx context.Context, filter RecipeFilter, viewer *uuid.UUID) ([]models.Recipe, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 6
	}

	var total int64
	countQuery := s.applyFilter(s.db.WithContext(ctx).Model(&models.Recipe{}), filter, viewer)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	query := s.applyFilter(s.annotated(ctx, viewer), filter, viewer).
		Order("recipes.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (s *RecipeService) applyFilter(query *gorm.DB, filter RecipeFilter, viewer *uuid.UUID) *gorm.DB {
	if filter.Author != nil {
		query = query.Where("recipes.author_id = ?", *filter.Author)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if viewer != nil && filter.Favorited {
		favorited := s.db.Table("favorites").
			Select("favorites.recipe_id").
			Where("favorites.user_id = ?", *viewer)
		query = query.Where("recipes.id IN (?)", favorited)
	}
	if viewer != nil && filter.InCart {
		inCart := s.db.Table("shopping_carts").
			Select("shopping_carts.recipe_id").
			Where("shopping_carts.user_id = ?", *viewer)
		query = query.Where("recipes.id IN (?)", inCart)
	}
	return query
}

// Create validates the payload, stores the image, and persists the
// recipe row, tag associations, and ingredient lines in one transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, req types.CreateRecipeRequest) (*models.Recipe, error) {
	verr := newValidationError()
	s.validateIngredients(ctx, verr, req.Ingredients)
	s.validateTags(ctx, verr, req.Tags)
	validateName(verr, req.Name)
	validateText(verr, req.Text)
	validateCookingTime(verr, req.CookingTime)
	if strings.TrimSpace(req.Image) == "" {
		verr.add("image", "image is required")
	}
	if !verr.empty() {
		return nil, verr
	}

	imageURL, err := s.images.Store(ctx, req.Image)
	if err != nil {
		verr.add("image", "%s", err.Error())
		return nil, verr
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(req.Name),
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := s.replaceTags(tx, &recipe, req.Tags); err != nil {
			return err
		}
		return s.insertLines(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID, &authorID)
}

// Update applies a partial update. Scalars change field by field; a
// present tag set is replaced whole; a present ingredient list replaces
// every existing line. Author-only.
func (s *RecipeService) Update(ctx context.Context, id, actorID uuid.UUID, req types.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrPermissionDenied
	}

	verr := newValidationError()
	if req.Ingredients != nil {
		s.validateIngredients(ctx, verr, req.Ingredients)
	}
	if req.Tags != nil {
		s.validateTags(ctx, verr, req.Tags)
	}
	if req.Name != nil {
		validateName(verr, *req.Name)
	}
	if req.Text != nil {
		validateText(verr, *req.Text)
	}
	if req.CookingTime != nil {
		validateCookingTime(verr, *req.CookingTime)
	}
	// Omitting image keeps the stored one; sending it empty is rejected.
	if req.Image != nil && strings.TrimSpace(*req.Image) == "" {
		verr.add("image", "image must not be empty")
	}
	if !verr.empty() {
		return nil, verr
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}
	if req.Image != nil {
		imageURL, err := s.images.Store(ctx, *req.Image)
		if err != nil {
			verr.add("image", "%s", err.Error())
			return nil, verr
		}
		updates["image_url"] = imageURL
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := s.replaceTags(tx, &recipe, req.Tags); err != nil {
				return err
			}
		}
		if req.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := s.insertLines(tx, recipe.ID, req.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID, &actorID)
}

// Delete removes a recipe with its lines, relation rows, and short link.
// Author-only.
func (s *RecipeService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.AuthorID != actorID {
		return ErrPermissionDenied
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShortLink{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// validateIngredients checks the entry list against the catalog with a
// single batch existence query over the submitted id set.
func (s *RecipeService) validateIngredients(ctx context.Context, verr *ValidationError, entries []types.IngredientAmount) {
	if len(entries) == 0 {
		verr.add("ingredients", "at least one ingredient is required")
		return
	}

	seen := make(map[uuid.UUID]bool, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if seen[entry.ID] {
			verr.add("ingredients", "ingredient %s is listed more than once", entry.ID)
			continue
		}
		seen[entry.ID] = true
		ids = append(ids, entry.ID)
		if entry.Amount < 1 {
			verr.add("ingredients", "amount for ingredient %s must be at least 1", entry.ID)
		}
	}

	var existing []uuid.UUID
	if err := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		verr.add("ingredients", "failed to check ingredients")
		return
	}
	found := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	for _, id := range ids {
		if !found[id] {
			verr.add("ingredients", "ingredient %s does not exist", id)
		}
	}
}

func (s *RecipeService) validateTags(ctx context.Context, verr *ValidationError, tagIDs []uuid.UUID) {
	if len(tagIDs) == 0 {
		verr.add("tags", "at least one tag is required")
		return
	}

	seen := make(map[uuid.UUID]bool, len(tagIDs))
	unique := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if seen[id] {
			verr.add("tags", "tag %s is listed more than once", id)
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("id IN ?", unique).Count(&count).Error; err != nil {
		verr.add("tags", "failed to check tags")
		return
	}
	if int(count) != len(unique) {
		verr.add("tags", "one or more tags do not exist")
	}
}

func validateName(verr *ValidationError, name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		verr.add("name", "name must not be empty")
		return
	}
	if len([]rune(trimmed)) > RecipeNameMaxLength {
		verr.add("name", "name must not exceed %d characters", RecipeNameMaxLength)
	}
}

func validateText(verr *ValidationError, text string) {
	if strings.TrimSpace(text) == "" {
		verr.add("text", "text must not be empty")
	}
}

func validateCookingTime(verr *ValidationError, minutes int) {
	if minutes < 1 {
		verr.add("cooking_time", "cooking time must be at least 1 minute")
	}
}

func (s *RecipeService) replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uuid.UUID) error {
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

func (s *RecipeService) insertLines(tx *gorm.DB, recipeID uuid.UUID, entries []types.IngredientAmount) error {
	lines := make([]models.RecipeIngredient, len(entries))
	for i, entry := range entries {
		lines[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		}
	}
	return tx.Create(&lines).Error
}
