package domain

var (
	MessageSuccessGetIngredients = "success get ingredients"
	MessageSuccessGetIngredient  = "success get ingredient"

	MessageFailedGetIngredients = "failed to get ingredients"
	MessageFailedGetIngredient  = "failed to get ingredient"

	ErrIngredientNotFound = NewNotFoundError("ingredient not found")
)

type (
	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	IngredientRow struct {
		Name            string
		MeasurementUnit string
	}

	ImportIngredientsResult struct {
		Created  int `json:"created"`
		Existing int `json:"existing"`
	}
)
