package domain

import (
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = NewNotFoundError("recipe not found")
	ErrUnauthorizedRecipeAccess = NewForbiddenError("only the author can change this recipe")
	ErrDuplicateIngredient      = NewValidationError("ingredients must not repeat")
	ErrEmptyIngredients         = NewValidationError("recipe needs at least one ingredient")
	ErrImageRequired            = NewValidationError("image is required")
	ErrInvalidAmount            = NewValidationError("ingredient amount must be at least 1")
	ErrInvalidImage             = NewValidationError("image must be a png, jpeg, gif or webp picture")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=32767"`
	}

	CreateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" form:"-" validate:"required,min=1,dive"`
		Tags        []string                  `json:"tags" form:"tags" validate:"dive,uuid"`
		Image       string                    `json:"image" form:"-"`
		Name        string                    `json:"name" form:"name" validate:"required,max=200"`
		Text        string                    `json:"text" form:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" form:"cooking_time" validate:"required,min=1,max=32767"`
	}

	// UpdateRecipeRequest is a partial update: nil fields stay as they are,
	// and a non-nil Ingredients or Tags replaces the whole association.
	UpdateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients" form:"-" validate:"omitempty,dive"`
		Tags        []string                  `json:"tags" form:"tags" validate:"omitempty,dive,uuid"`
		Image       *string                   `json:"image" form:"-"`
		Name        *string                   `json:"name" form:"name" validate:"omitempty,min=1,max=200"`
		Text        *string                   `json:"text" form:"text" validate:"omitempty,min=1"`
		CookingTime *int                      `json:"cooking_time" form:"cooking_time" validate:"omitempty,min=1,max=32767"`
	}

	ImageUpload struct {
		Data        []byte
		ContentType string
		Extension   string
	}

	RecipeFilter struct {
		Tags             []string
		AuthorID         string
		IsFavorited      bool
		IsInShoppingCart bool
		PaginationRequest
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		PubDate          time.Time                  `json:"pub_date"`
	}

	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}
)
