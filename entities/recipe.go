package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Image       string    `gorm:"not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"type:timestamp;not null;index;<-:create" json:"pub_date"`

	Author            *User               `gorm:"foreignKey:AuthorID"`
	RecipeTags        []*RecipeTag        `gorm:"foreignKey:RecipeID"`
	RecipeIngredients []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	if r.PubDate.IsZero() {
		r.PubDate = time.Now().UTC()
	}
	return nil
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Tag    *Tag    `gorm:"foreignKey:TagID"`
}

// RecipeIngredient holds the amount of one ingredient in one recipe. The
// composite key rejects a second row for the same pair.
type RecipeIngredient struct {
	RecipeID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount       int       `gorm:"not null"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

// RecipeUser is the membership row shared by favorites and the shopping cart.
// Clearing a flag never deletes the row.
type RecipeUser struct {
	RecipeID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	IsFavorited      bool      `gorm:"not null;default:false"`
	IsInShoppingCart bool      `gorm:"not null;default:false"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	User   *User   `gorm:"foreignKey:UserID"`
}
