package ingredient

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIngredientsFiltersByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	testutil.CreateIngredient(t, db, "Eggs", "pcs")
	testutil.CreateIngredient(t, db, "Eggplant", "g")
	testutil.CreateIngredient(t, db, "Milk", "ml")

	res, err := svc.GetIngredients(context.Background(), "EGG")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Eggplant", res[0].Name)
	assert.Equal(t, "Eggs", res[1].Name)

	all, err := svc.GetIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetIngredient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	milk := testutil.CreateIngredient(t, db, "Milk", "ml")

	res, err := svc.GetIngredient(context.Background(), milk.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ml", res.MeasurementUnit)

	_, err = svc.GetIngredient(context.Background(), "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestImportIngredientsIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewIngredientService(NewIngredientRepository(db))
	rows := []domain.IngredientRow{
		{Name: "Eggs", MeasurementUnit: "pcs"},
		{Name: " Flour ", MeasurementUnit: "g"},
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "", MeasurementUnit: "g"},
	}

	first, err := svc.ImportIngredients(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportIngredientsResult{Created: 2, Existing: 1}, first)

	second, err := svc.ImportIngredients(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, domain.ImportIngredientsResult{Created: 0, Existing: 3}, second)
}
