package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/internal/metrics"
	"foodgram-backend/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MembershipService interface {
		AddFavorite(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error)
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error
		DownloadShoppingCart(ctx context.Context, userID string) (string, error)
	}

	membershipService struct {
		membershipRepository MembershipRepository
	}
)

var (
	alreadyIn = map[string]error{
		domain.ListFavorite:     domain.ErrAlreadyFavorited,
		domain.ListShoppingCart: domain.ErrAlreadyInCart,
	}
	notIn = map[string]error{
		domain.ListFavorite:     domain.ErrNotFavorited,
		domain.ListShoppingCart: domain.ErrNotInShoppingCart,
	}
)

func NewMembershipService(membershipRepository MembershipRepository) MembershipService {
	return &membershipService{membershipRepository: membershipRepository}
}

func (s *membershipService) AddFavorite(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error) {
	return s.add(ctx, domain.ListFavorite, recipeID, userID)
}

func (s *membershipService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	return s.remove(ctx, domain.ListFavorite, recipeID, userID)
}

func (s *membershipService) AddToShoppingCart(ctx context.Context, recipeID string, userID string) (domain.ShortRecipeResponse, error) {
	return s.add(ctx, domain.ListShoppingCart, recipeID, userID)
}

func (s *membershipService) RemoveFromShoppingCart(ctx context.Context, recipeID string, userID string) error {
	return s.remove(ctx, domain.ListShoppingCart, recipeID, userID)
}

func (s *membershipService) add(ctx context.Context, list, recipeID, userID string) (res domain.ShortRecipeResponse, err error) {
	defer func() { metrics.RecordMembershipToggle(list, "add", err) }()

	caller, rid, err := s.resolve(ctx, recipeID, userID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}

	changed, err := s.membershipRepository.SetFlag(ctx, list, rid, caller, true)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if !changed {
		return domain.ShortRecipeResponse{}, alreadyIn[list]
	}

	r, err := s.membershipRepository.GetRecipeByID(ctx, rid)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	return recipe.ToShortRecipeResponse(r), nil
}

func (s *membershipService) remove(ctx context.Context, list, recipeID, userID string) (err error) {
	defer func() { metrics.RecordMembershipToggle(list, "remove", err) }()

	caller, rid, err := s.resolve(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	changed, err := s.membershipRepository.SetFlag(ctx, list, rid, caller, false)
	if err != nil {
		return err
	}
	if !changed {
		return notIn[list]
	}
	return nil
}

// resolve checks the caller is authenticated and the recipe exists.
func (s *membershipService) resolve(ctx context.Context, recipeID, userID string) (uuid.UUID, uuid.UUID, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if caller == uuid.Nil {
		return uuid.Nil, uuid.Nil, domain.ErrAuthRequired
	}

	rid, err := domain.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if _, err := s.membershipRepository.GetRecipeByID(ctx, rid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return uuid.Nil, uuid.Nil, err
	}
	return caller, rid, nil
}

func (s *membershipService) DownloadShoppingCart(ctx context.Context, userID string) (string, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return "", err
	}
	if caller == uuid.Nil {
		return "", domain.ErrAuthRequired
	}

	items, err := s.membershipRepository.ShoppingList(ctx, caller)
	if err != nil {
		return "", err
	}
	return FormatShoppingList(items), nil
}

// FormatShoppingList renders one "<name> - <total> <unit>" line per item.
func FormatShoppingList(items []domain.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s - %d %s", item.Name, item.TotalAmount, item.MeasurementUnit))
	}
	return strings.Join(lines, "\n")
}
