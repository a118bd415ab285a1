package membership

import (
	"context"
	"fmt"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var flagColumns = map[string]string{
	domain.ListFavorite:     "is_favorited",
	domain.ListShoppingCart: "is_in_shopping_cart",
}

type (
	MembershipRepository interface {
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		// SetFlag switches the list flag of the (recipe, user) row to value and
		// reports false when it already had that value.
		SetFlag(ctx context.Context, list string, recipeID, userID uuid.UUID, value bool) (bool, error)
		ShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *membershipRepository) SetFlag(ctx context.Context, list string, recipeID, userID uuid.UUID, value bool) (bool, error) {
	column, ok := flagColumns[list]
	if !ok {
		return false, fmt.Errorf("unknown list %q", list)
	}

	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if value {
			// concurrent adds race on the primary key, not on a read
			row := entities.RecipeUser{RecipeID: recipeID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&entities.RecipeUser{}).
			Where("recipe_id = ? AND user_id = ? AND "+column+" = ?", recipeID, userID, !value).
			Update(column, value)
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}

func (r *membershipRepository) ShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("recipe_users").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipe_users.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_users.user_id = ? AND recipe_users.is_in_shopping_cart = ?", userID, true).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
