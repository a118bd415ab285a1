package handlers

import (
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	p := parsePagination(c)

	filter := domain.RecipeFilter{
		AuthorID:          c.Query("author"),
		IsFavorited:       c.Query("is_favorited") == "1",
		IsInShoppingCart:  c.Query("is_in_shopping_cart") == "1",
		PaginationRequest: p,
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		if len(slug) > 0 {
			filter.Tags = append(filter.Tags, string(slug))
		}
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), filter, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, paginated("recipes", recipes, p, count), fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	var dataURI *string
	if isMultipart(c) {
		ingredients, err := formIngredients(c)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		req.Ingredients = ingredients
		if v := c.FormValue("image"); v != "" {
			dataURI = &v
		}
	} else if req.Image != "" {
		dataURI = &req.Image
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	image, err := requestImage(c, dataURI)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, image, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	dataURI := req.Image
	if isMultipart(c) {
		if c.FormValue("ingredients") != "" {
			ingredients, err := formIngredients(c)
			if err != nil {
				return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
			}
			req.Ingredients = ingredients
		}
		if v := c.FormValue("image"); v != "" {
			dataURI = &v
		}
	}
	if dataURI != nil && *dataURI == "" {
		dataURI = nil
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	image, err := requestImage(c, dataURI)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), c.Params("id"), *req, image, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteRecipe, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formIngredients decodes the "ingredients" form field, sent as a JSON array
// next to the file part.
func formIngredients(c *fiber.Ctx) ([]domain.RecipeIngredientRequest, error) {
	raw := c.FormValue("ingredients")
	if raw == "" {
		return nil, nil
	}

	var ingredients []domain.RecipeIngredientRequest
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, domain.NewValidationError("ingredients must be a JSON array of {id, amount}")
	}
	return ingredients, nil
}

// requestImage prefers an uploaded "image" file over a data URI. It returns
// nil when neither is present.
func requestImage(c *fiber.Ctx, dataURI *string) (*domain.ImageUpload, error) {
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		if files := form.File["image"]; len(files) > 0 {
			img, err := storage.FromFileHeader(files[0])
			if err != nil {
				return nil, err
			}
			return &img, nil
		}
	}

	if dataURI == nil {
		return nil, nil
	}
	img, err := storage.DecodeDataURI(*dataURI)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
