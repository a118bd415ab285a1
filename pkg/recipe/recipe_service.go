package recipe

import (
	"context"
	"errors"
	"sort"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/tag"
	"foodgram-backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipe(ctx context.Context, id string, userID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, image *domain.ImageUpload, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, image *domain.ImageUpload, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userService          user.UserService
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userService user.UserService,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userService:          userService,
		s3:                   s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return nil, 0, err
	}

	q := RecipeQuery{
		TagSlugs: filter.Tags,
		Offset:   filter.Offset(),
		Limit:    filter.Limit,
	}
	if filter.AuthorID != "" {
		authorID, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			// no recipe can match an author that cannot exist
			return []domain.RecipeResponse{}, 0, nil
		}
		q.AuthorID = authorID
	}
	// membership filters only apply to an authenticated caller
	if caller != uuid.Nil {
		if filter.IsFavorited {
			q.FavoritedBy = caller
		}
		if filter.IsInShoppingCart {
			q.InCartOf = caller
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.toRecipeResponses(ctx, recipes, caller)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id string, userID string) (domain.RecipeResponse, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	res, err := s.toRecipeResponses(ctx, []*entities.Recipe{recipe}, caller)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return res[0], nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, image *domain.ImageUpload, userID string) (domain.RecipeResponse, error) {
	caller, err := requireCaller(userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	tagIDs, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	ingredients, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if image == nil {
		return domain.RecipeResponse{}, domain.ErrImageRequired
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), *image, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    caller,
		Name:        req.Name,
		Image:       s.s3.GetPublicLinkKey(objectKey),
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagIDs, ingredients); err != nil {
		s.deleteImage(ctx, objectKey)
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, image *domain.ImageUpload, userID string) (domain.RecipeResponse, error) {
	caller, err := requireCaller(userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID != caller {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	var tagIDs []uuid.UUID
	if req.Tags != nil {
		if tagIDs, err = s.resolveTags(ctx, req.Tags); err != nil {
			return domain.RecipeResponse{}, err
		}
		if tagIDs == nil {
			tagIDs = []uuid.UUID{}
		}
	}

	var ingredients []entities.RecipeIngredient
	if req.Ingredients != nil {
		if len(req.Ingredients) == 0 {
			return domain.RecipeResponse{}, domain.ErrEmptyIngredients
		}
		if ingredients, err = s.resolveIngredients(ctx, req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if req.CookingTime != nil {
		updates["cooking_time"] = *req.CookingTime
	}

	var newKey string
	if image != nil {
		if newKey, err = s.s3.UploadFile(ctx, uuid.NewString(), *image, imageFolder, storage.AllowImage...); err != nil {
			return domain.RecipeResponse{}, err
		}
		updates["image"] = s.s3.GetPublicLinkKey(newKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe.ID, updates, tagIDs, ingredients); err != nil {
		if newKey != "" {
			s.deleteImage(ctx, newKey)
		}
		return domain.RecipeResponse{}, err
	}
	if newKey != "" {
		s.deleteImage(ctx, s.s3.GetObjectKeyFromLink(recipe.Image))
	}

	return s.GetRecipe(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	caller, err := requireCaller(userID)
	if err != nil {
		return err
	}

	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != caller {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}
	s.deleteImage(ctx, s.s3.GetObjectKeyFromLink(recipe.Image))
	return nil
}

func (s *recipeService) getRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	recipeID, err := domain.ParseID(id, domain.ErrRecipeNotFound)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// resolveTags collapses repeated ids and fails unless every tag exists.
func (s *recipeService) resolveTags(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, domain.ErrInvalidTag
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	count, err := s.tagRepository.CountByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, domain.ErrInvalidTag
	}
	return ids, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, raw []domain.RecipeIngredientRequest) ([]entities.RecipeIngredient, error) {
	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	rows := make([]entities.RecipeIngredient, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		if seen[id] {
			return nil, domain.ErrDuplicateIngredient
		}
		if r.Amount < 1 {
			return nil, domain.ErrInvalidAmount
		}
		seen[id] = true
		ids = append(ids, id)
		rows = append(rows, entities.RecipeIngredient{IngredientID: id, Amount: r.Amount})
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyIngredients
	}

	count, err := s.ingredientRepository.CountByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, domain.ErrIngredientNotFound
	}
	return rows, nil
}

func (s *recipeService) deleteImage(ctx context.Context, objectKey string) {
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("failed to delete image %s: %v", objectKey, err)
	}
}

func (s *recipeService) toRecipeResponses(ctx context.Context, recipes []*entities.Recipe, caller uuid.UUID) ([]domain.RecipeResponse, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authors := make([]*entities.User, 0, len(recipes))
	seenAuthor := map[uuid.UUID]bool{}
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if r.Author != nil && !seenAuthor[r.AuthorID] {
			seenAuthor[r.AuthorID] = true
			authors = append(authors, r.Author)
		}
	}

	authorResponses, err := s.userService.ToUserResponses(ctx, authors, caller)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[string]domain.UserResponse, len(authorResponses))
	for _, a := range authorResponses {
		authorByID[a.ID] = a
	}

	memberships, err := s.recipeRepository.GetRecipeUsers(ctx, caller, recipeIDs)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		membership := memberships[r.ID]
		res = append(res, domain.RecipeResponse{
			ID:               r.ID.String(),
			Tags:             tagResponses(r.RecipeTags),
			Author:           authorByID[r.AuthorID.String()],
			Ingredients:      ingredientResponses(r.RecipeIngredients),
			IsFavorited:      membership.IsFavorited,
			IsInShoppingCart: membership.IsInShoppingCart,
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			PubDate:          r.PubDate,
		})
	}
	return res, nil
}

func tagResponses(rows []*entities.RecipeTag) []domain.TagResponse {
	res := make([]domain.TagResponse, 0, len(rows))
	for _, rt := range rows {
		if rt.Tag != nil {
			res = append(res, tag.ToTagResponse(rt.Tag))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

func ingredientResponses(rows []*entities.RecipeIngredient) []domain.RecipeIngredientResponse {
	res := make([]domain.RecipeIngredientResponse, 0, len(rows))
	for _, ri := range rows {
		if ri.Ingredient == nil {
			continue
		}
		res = append(res, domain.RecipeIngredientResponse{
			ID:              ri.IngredientID.String(),
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

func ToShortRecipeResponse(r *entities.Recipe) domain.ShortRecipeResponse {
	return domain.ShortRecipeResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func requireCaller(userID string) (uuid.UUID, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return uuid.Nil, err
	}
	if caller == uuid.Nil {
		return uuid.Nil, domain.ErrAuthRequired
	}
	return caller, nil
}
