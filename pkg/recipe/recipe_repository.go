package recipe

import (
	"context"

	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		GetRecipes(ctx context.Context, q RecipeQuery) ([]*entities.Recipe, int64, error)
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeUsers(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]entities.RecipeUser, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, ingredients []entities.RecipeIngredient) error
		UpdateRecipe(ctx context.Context, id uuid.UUID, updates map[string]any, tagIDs []uuid.UUID, ingredients []entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
	}

	// RecipeQuery narrows GetRecipes. Zero values disable a condition.
	RecipeQuery struct {
		TagSlugs    []string
		AuthorID    uuid.UUID
		FavoritedBy uuid.UUID
		InCartOf    uuid.UUID
		Offset      int
		Limit       int
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) filtered(ctx context.Context, q RecipeQuery) *gorm.DB {
	db := r.db.WithContext(ctx)
	query := db.Model(&entities.Recipe{})

	if len(q.TagSlugs) > 0 {
		// a subquery keeps one row per recipe however many tags match
		query = query.Where("recipes.id IN (?)", db.Model(&entities.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", q.TagSlugs))
	}
	if q.AuthorID != uuid.Nil {
		query = query.Where("recipes.author_id = ?", q.AuthorID)
	}
	if q.FavoritedBy != uuid.Nil {
		query = query.Where("recipes.id IN (?)", db.Model(&entities.RecipeUser{}).
			Select("recipe_id").
			Where("user_id = ? AND is_favorited = ?", q.FavoritedBy, true))
	}
	if q.InCartOf != uuid.Nil {
		query = query.Where("recipes.id IN (?)", db.Model(&entities.RecipeUser{}).
			Select("recipe_id").
			Where("user_id = ? AND is_in_shopping_cart = ?", q.InCartOf, true))
	}
	return query
}

func preloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("RecipeTags.Tag").
		Preload("RecipeIngredients.Ingredient")
}

func (r *recipeRepository) GetRecipes(ctx context.Context, q RecipeQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.filtered(ctx, q).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := preloadRecipe(r.filtered(ctx, q)).
		Order("recipes.pub_date desc").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := preloadRecipe(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeUsers(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]entities.RecipeUser, error) {
	result := make(map[uuid.UUID]entities.RecipeUser, len(recipeIDs))
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []entities.RecipeUser
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = row
	}
	return result, nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagIDs []uuid.UUID, ingredients []entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := insertTags(tx, recipe.ID, tagIDs); err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

// UpdateRecipe applies updates to the recipe row. Non-nil tagIDs or
// ingredients replace the whole association.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, updates map[string]any, tagIDs []uuid.UUID, ingredients []entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&entities.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if tagIDs != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := insertTags(tx, id, tagIDs); err != nil {
				return err
			}
		}

		if ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredients(tx, id, ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&entities.RecipeTag{}, &entities.RecipeIngredient{}, &entities.RecipeUser{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func insertTags(tx *gorm.DB, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]entities.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, entities.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []entities.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := make([]entities.RecipeIngredient, 0, len(ingredients))
	for _, ri := range ingredients {
		rows = append(rows, entities.RecipeIngredient{RecipeID: recipeID, IngredientID: ri.IngredientID, Amount: ri.Amount})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
