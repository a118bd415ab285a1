package subscription

import (
	"context"

	"foodgram-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	SubscriptionRepository interface {
		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		// CreateSubscription returns false when the pair already exists.
		CreateSubscription(ctx context.Context, authorID, subscriberID uuid.UUID) (bool, error)
		DeleteSubscription(ctx context.Context, authorID, subscriberID uuid.UUID) (bool, error)
		GetSubscribedAuthors(ctx context.Context, subscriberID uuid.UUID, page, limit int) ([]*entities.User, int64, error)
		GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error)
		CountAuthorRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	}

	subscriptionRepository struct {
		db *gorm.DB
	}
)

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, authorID, subscriberID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Subscription{AuthorID: authorID, SubscriberID: subscriberID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, authorID, subscriberID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("author_id = ? AND subscriber_id = ?", authorID, subscriberID).
		Delete(&entities.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetSubscribedAuthors returns the authors subscriberID follows, oldest
// subscription first.
func (r *subscriptionRepository) GetSubscribedAuthors(ctx context.Context, subscriberID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64

	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Model(&entities.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Order("subscriptions.created_at asc, users.username asc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

// GetAuthorRecipes returns the newest recipes first. A negative limit
// returns all of them.
func (r *subscriptionRepository) GetAuthorRecipes(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *subscriptionRepository) CountAuthorRecipes(ctx context.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	result := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AuthorID] = row.Total
	}
	return result, nil
}
