package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AVKharkova/foodgram/internal/models"
)

// RelationService toggles the (user, recipe) join rows behind favorites
// and the shopping cart. Duplicate adds are resolved by the composite
// unique constraints, so two concurrent adds settle deterministically.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// AddFavorite inserts the favorite row and returns the minimal recipe
// view source. ErrAlreadyExists if the pair is present.
func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.add(ctx, userID, recipeID, &models.Favorite{UserID: userID, RecipeID: recipeID})
}

// RemoveFavorite deletes the favorite row. ErrNotInList if absent.
func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, recipeID, s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}))
}

// AddToCart inserts the shopping-cart row. ErrAlreadyExists if present.
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.add(ctx, userID, recipeID, &models.ShoppingCart{UserID: userID, RecipeID: recipeID})
}

// RemoveFromCart deletes the shopping-cart row. ErrNotInList if absent.
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.remove(ctx, recipeID, s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{}))
}

func (s *RelationService) add(ctx context.Context, userID, recipeID uuid.UUID, row interface{}) (*models.Recipe, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return recipe, nil
}

func (s *RelationService) remove(ctx context.Context, recipeID uuid.UUID, result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.loadRecipe(ctx, recipeID); err != nil {
			return err
		}
		return ErrNotInList
	}
	return nil
}

func (s *RelationService) loadRecipe(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
