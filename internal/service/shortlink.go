package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AVKharkova/foodgram/internal/models"
)

const (
	shortCodeLength = 22
	// Base57: alphanumerics without the easily confused 0, O, 1, l, I.
	shortCodeCharset = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	shortCodeRetries = 5
)

// ShortLinkService maps recipes to shareable short codes.
type ShortLinkService struct {
	db *gorm.DB
}

func NewShortLinkService(db *gorm.DB) *ShortLinkService {
	return &ShortLinkService{db: db}
}

// GetOrCreate returns the recipe's short link, generating and storing a
// fresh code on first request. The short_code unique constraint is the
// arbiter under concurrent creation; a losing insert re-reads the row
// the winner created.
func (s *ShortLinkService) GetOrCreate(ctx context.Context, recipeID uuid.UUID) (*models.ShortLink, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", recipeID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var link models.ShortLink
	err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < shortCodeRetries; attempt++ {
		code, err := generateShortCode()
		if err != nil {
			return nil, err
		}
		link = models.ShortLink{RecipeID: recipeID, ShortCode: code}
		createErr := s.db.WithContext(ctx).Create(&link).Error
		if createErr == nil {
			return &link, nil
		}
		if !isDuplicate(createErr) {
			return nil, createErr
		}
		// Either a concurrent request created the recipe's link first, or
		// the generated code collided. Re-read to tell the two apart.
		if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&link).Error; err == nil {
			return &link, nil
		}
	}
	return nil, fmt.Errorf("unable to generate a unique short code after %d attempts", shortCodeRetries)
}

// Resolve returns the recipe id behind a short code.
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (uuid.UUID, error) {
	var link models.ShortLink
	if err := s.db.WithContext(ctx).Where("short_code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, err
	}
	return link.RecipeID, nil
}

func generateShortCode() (string, error) {
	b := make([]byte, shortCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(shortCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b[i] = shortCodeCharset[n.Int64()]
	}
	return string(b), nil
}
