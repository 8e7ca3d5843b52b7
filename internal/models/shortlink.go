package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShortLink maps an opaque short code to a recipe. Created lazily on the
// first get-link request and reused afterwards; short_code uniqueness is
// enforced at the storage layer.
type ShortLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recipe_id"`
	ShortCode string    `gorm:"size:22;uniqueIndex;not null" json:"short_code"`
}

func (l *ShortLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&Favorite{},
		&ShoppingCart{},
		&ShortLink{},
	}
}
