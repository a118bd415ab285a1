package ingredient

import (
	"context"
	"errors"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, name string) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		ImportIngredients(ctx context.Context, rows []domain.IngredientRow) (domain.ImportIngredientsResult, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, name string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, name)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, toIngredientResponse(i))
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredientID, err := domain.ParseID(id, domain.ErrIngredientNotFound)
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	i, err := s.ingredientRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(i), nil
}

// ImportIngredients creates every (name, unit) pair that does not exist yet.
// Blank rows are skipped.
func (s *ingredientService) ImportIngredients(ctx context.Context, rows []domain.IngredientRow) (domain.ImportIngredientsResult, error) {
	var result domain.ImportIngredientsResult

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		unit := strings.TrimSpace(row.MeasurementUnit)
		if name == "" || unit == "" {
			continue
		}

		created, err := s.ingredientRepository.FirstOrCreate(ctx, name, unit)
		if err != nil {
			return result, err
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}

	log.Infof("imported ingredients: %d created, %d existing", result.Created, result.Existing)
	return result, nil
}

func toIngredientResponse(i *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              i.ID.String(),
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}
