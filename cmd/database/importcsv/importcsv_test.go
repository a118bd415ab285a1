package importcsv

import (
	"strings"
	"testing"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIngredients(t *testing.T) {
	input := "name,measurement_unit\nабрикосовое варенье,г\n\"salt, coarse\",g\n\neggs, pcs\n"

	rows, err := ReadIngredients(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.IngredientRow{
		{Name: "абрикосовое варенье", MeasurementUnit: "г"},
		{Name: "salt, coarse", MeasurementUnit: "g"},
		{Name: "eggs", MeasurementUnit: "pcs"},
	}, rows)
}

func TestReadIngredientsRejectsBadRows(t *testing.T) {
	_, err := ReadIngredients(strings.NewReader("eggs,pcs,extra\n"))
	assert.ErrorContains(t, err, "line 1")
}
