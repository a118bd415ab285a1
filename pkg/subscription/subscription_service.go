package subscription

import (
	"context"
	"errors"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/metrics"
	"foodgram-backend/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID string, userID string) error
		GetSubscriptions(ctx context.Context, req domain.SubscriptionListRequest, userID string) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepository: subscriptionRepository}
}

func (s *subscriptionService) Subscribe(ctx context.Context, authorID string, userID string, recipesLimit int) (res domain.SubscriptionResponse, err error) {
	defer func() { metrics.RecordSubscription("subscribe", err) }()

	caller, author, err := s.resolve(ctx, authorID, userID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if author.ID == caller {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	created, err := s.subscriptionRepository.CreateSubscription(ctx, author.ID, caller)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if !created {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	feed, err := s.toFeed(ctx, []*entities.User{author}, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	return feed[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, authorID string, userID string) (err error) {
	defer func() { metrics.RecordSubscription("unsubscribe", err) }()

	caller, author, err := s.resolve(ctx, authorID, userID)
	if err != nil {
		return err
	}

	deleted, err := s.subscriptionRepository.DeleteSubscription(ctx, author.ID, caller)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotSubscribed
	}
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, req domain.SubscriptionListRequest, userID string) ([]domain.SubscriptionResponse, int64, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return nil, 0, err
	}
	if caller == uuid.Nil {
		return nil, 0, domain.ErrAuthRequired
	}

	authors, count, err := s.subscriptionRepository.GetSubscribedAuthors(ctx, caller, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	feed, err := s.toFeed(ctx, authors, req.RecipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return feed, count, nil
}

func (s *subscriptionService) resolve(ctx context.Context, authorID, userID string) (uuid.UUID, *entities.User, error) {
	caller, err := domain.ParseCallerID(userID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if caller == uuid.Nil {
		return uuid.Nil, nil, domain.ErrAuthRequired
	}

	id, err := domain.ParseID(authorID, domain.ErrUserNotFound)
	if err != nil {
		return uuid.Nil, nil, err
	}
	author, err := s.subscriptionRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, nil, domain.ErrUserNotFound
		}
		return uuid.Nil, nil, err
	}
	return caller, author, nil
}

// toFeed renders authors the caller follows, so is_subscribed is always true.
func (s *subscriptionService) toFeed(ctx context.Context, authors []*entities.User, recipesLimit int) ([]domain.SubscriptionResponse, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.subscriptionRepository.CountAuthorRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.subscriptionRepository.GetAuthorRecipes(ctx, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}

		short := make([]domain.ShortRecipeResponse, 0, len(recipes))
		for _, r := range recipes {
			short = append(short, recipe.ToShortRecipeResponse(r))
		}

		res = append(res, domain.SubscriptionResponse{
			Email:        a.Email,
			ID:           a.ID.String(),
			Username:     a.Username,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			IsSubscribed: true,
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return res, nil
}
