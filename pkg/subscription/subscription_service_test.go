package subscription

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeRules(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewSubscriptionService(NewSubscriptionRepository(db))
	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")

	_, err := svc.Subscribe(ctx, reader.ID.String(), reader.ID.String(), -1)
	assert.ErrorIs(t, err, domain.ErrSelfSubscription)

	res, err := svc.Subscribe(ctx, author.ID.String(), reader.ID.String(), -1)
	require.NoError(t, err)
	assert.Equal(t, "author", res.Username)
	assert.True(t, res.IsSubscribed)
	assert.Empty(t, res.Recipes)
	assert.Zero(t, res.RecipesCount)

	_, err = svc.Subscribe(ctx, author.ID.String(), reader.ID.String(), -1)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	var n int64
	require.NoError(t, db.Model(&entities.Subscription{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = svc.Subscribe(ctx, uuid.NewString(), reader.ID.String(), -1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewSubscriptionService(NewSubscriptionRepository(db))
	author := testutil.CreateUser(t, db, "author")
	reader := testutil.CreateUser(t, db, "reader")

	assert.ErrorIs(t, svc.Unsubscribe(ctx, author.ID.String(), reader.ID.String()), domain.ErrNotSubscribed)

	_, err := svc.Subscribe(ctx, author.ID.String(), reader.ID.String(), -1)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, author.ID.String(), reader.ID.String()))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, author.ID.String(), reader.ID.String()), domain.ErrNotSubscribed)

	assert.ErrorIs(t, svc.Unsubscribe(ctx, uuid.NewString(), reader.ID.String()), domain.ErrUserNotFound)
}

func TestGetSubscriptionsFeed(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewSubscriptionService(NewSubscriptionRepository(db))
	first := testutil.CreateUser(t, db, "zed")
	second := testutil.CreateUser(t, db, "amy")
	reader := testutil.CreateUser(t, db, "reader")
	salt := testutil.CreateIngredient(t, db, "salt", "g")
	for _, name := range []string{"one", "two", "three"} {
		testutil.CreateRecipe(t, db, first, name, nil, map[uuid.UUID]int{salt.ID: 1})
	}

	_, err := svc.Subscribe(ctx, first.ID.String(), reader.ID.String(), -1)
	require.NoError(t, err)
	_, err = svc.Subscribe(ctx, second.ID.String(), reader.ID.String(), -1)
	require.NoError(t, err)

	req := domain.SubscriptionListRequest{RecipesLimit: 2, PaginationRequest: domain.PaginationRequest{Page: 1, Limit: 10}}
	feed, total, err := svc.GetSubscriptions(ctx, req, reader.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, feed, 2)

	assert.Equal(t, "zed", feed[0].Username, "insertion order")
	assert.Len(t, feed[0].Recipes, 2)
	assert.EqualValues(t, 3, feed[0].RecipesCount)
	assert.Equal(t, "three", feed[0].Recipes[0].Name)
	assert.Equal(t, "amy", feed[1].Username)
	assert.Empty(t, feed[1].Recipes)

	req.RecipesLimit = -1
	feed, _, err = svc.GetSubscriptions(ctx, req, reader.ID.String())
	require.NoError(t, err)
	assert.Len(t, feed[0].Recipes, 3)

	_, _, err = svc.GetSubscriptions(ctx, req, "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}
