package membership

import (
	"context"
	"errors"
	"sync"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, MembershipService, *entities.User, *entities.Recipe) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	author := testutil.CreateUser(t, db, "author")
	eggs := testutil.CreateIngredient(t, db, "eggs", "pcs")
	r := testutil.CreateRecipe(t, db, author, "omelette", nil, map[uuid.UUID]int{eggs.ID: 2})
	return db, NewMembershipService(NewMembershipRepository(db)), author, r
}

func loadRow(t *testing.T, db *gorm.DB, recipeID, userID uuid.UUID) (entities.RecipeUser, int64) {
	t.Helper()
	var rows []entities.RecipeUser
	require.NoError(t, db.Where("recipe_id = ? AND user_id = ?", recipeID, userID).Find(&rows).Error)
	if len(rows) == 0 {
		return entities.RecipeUser{}, 0
	}
	return rows[0], int64(len(rows))
}

func TestFavoriteAddTwice(t *testing.T) {
	ctx := context.Background()
	db, svc, user, r := setup(t)

	short, err := svc.AddFavorite(ctx, r.ID.String(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.ShortRecipeResponse{ID: r.ID.String(), Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}, short)

	_, err = svc.AddFavorite(ctx, r.ID.String(), user.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)

	row, n := loadRow(t, db, r.ID, user.ID)
	assert.EqualValues(t, 1, n)
	assert.True(t, row.IsFavorited)
	assert.False(t, row.IsInShoppingCart)
}

func TestFavoriteRemoveTwice(t *testing.T) {
	ctx := context.Background()
	db, svc, user, r := setup(t)

	assert.ErrorIs(t, svc.RemoveFavorite(ctx, r.ID.String(), user.ID.String()), domain.ErrNotFavorited)

	_, err := svc.AddFavorite(ctx, r.ID.String(), user.ID.String())
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFavorite(ctx, r.ID.String(), user.ID.String()))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, r.ID.String(), user.ID.String()), domain.ErrNotFavorited)

	row, n := loadRow(t, db, r.ID, user.ID)
	assert.EqualValues(t, 1, n, "removing a flag keeps the row")
	assert.False(t, row.IsFavorited)
}

func TestFavoriteAndCartShareRow(t *testing.T) {
	ctx := context.Background()
	db, svc, user, r := setup(t)

	_, err := svc.AddFavorite(ctx, r.ID.String(), user.ID.String())
	require.NoError(t, err)
	_, err = svc.AddToShoppingCart(ctx, r.ID.String(), user.ID.String())
	require.NoError(t, err)

	row, n := loadRow(t, db, r.ID, user.ID)
	assert.EqualValues(t, 1, n)
	assert.True(t, row.IsFavorited)
	assert.True(t, row.IsInShoppingCart)

	_, err = svc.AddToShoppingCart(ctx, r.ID.String(), user.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	require.NoError(t, svc.RemoveFavorite(ctx, r.ID.String(), user.ID.String()))
	row, n = loadRow(t, db, r.ID, user.ID)
	assert.EqualValues(t, 1, n)
	assert.False(t, row.IsFavorited)
	assert.True(t, row.IsInShoppingCart)

	require.NoError(t, svc.RemoveFromShoppingCart(ctx, r.ID.String(), user.ID.String()))
	assert.ErrorIs(t, svc.RemoveFromShoppingCart(ctx, r.ID.String(), user.ID.String()), domain.ErrNotInShoppingCart)
}

func TestMembershipUnknownRecipe(t *testing.T) {
	ctx := context.Background()
	_, svc, user, _ := setup(t)

	_, err := svc.AddFavorite(ctx, uuid.NewString(), user.ID.String())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.RemoveFromShoppingCart(ctx, "nope", user.ID.String()), domain.ErrRecipeNotFound)

	_, err = svc.AddFavorite(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestConcurrentAddsSucceedOnce(t *testing.T) {
	ctx := context.Background()
	_, svc, user, r := setup(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToShoppingCart(ctx, r.ID.String(), user.ID.String())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyInCart):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, rejected)
}

func TestShoppingListAggregation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := NewMembershipService(NewMembershipRepository(db))

	author := testutil.CreateUser(t, db, "author")
	buyer := testutil.CreateUser(t, db, "buyer")
	eggs := testutil.CreateIngredient(t, db, "eggs", "pcs")
	milk := testutil.CreateIngredient(t, db, "milk", "ml")
	a := testutil.CreateRecipe(t, db, author, "a", nil, map[uuid.UUID]int{eggs.ID: 2})
	b := testutil.CreateRecipe(t, db, author, "b", nil, map[uuid.UUID]int{eggs.ID: 3, milk.ID: 100})
	c := testutil.CreateRecipe(t, db, author, "c", nil, map[uuid.UUID]int{milk.ID: 900})

	empty, err := svc.DownloadShoppingCart(ctx, buyer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	for _, r := range []*entities.Recipe{a, b} {
		_, err := svc.AddToShoppingCart(ctx, r.ID.String(), buyer.ID.String())
		require.NoError(t, err)
	}
	// favorites alone do not count
	_, err = svc.AddFavorite(ctx, c.ID.String(), buyer.ID.String())
	require.NoError(t, err)

	text, err := svc.DownloadShoppingCart(ctx, buyer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "eggs - 5 pcs\nmilk - 100 ml", text)
}

func TestFormatShoppingList(t *testing.T) {
	assert.Equal(t, "", FormatShoppingList(nil))
	assert.Equal(t, "salt - 1 g", FormatShoppingList([]domain.ShoppingListItem{{Name: "salt", MeasurementUnit: "g", TotalAmount: 1}}))
}
