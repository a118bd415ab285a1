package domain

const (
	ShoppingCartFileName = "shopping_cart.txt"

	ListFavorite     = "favorite"
	ListShoppingCart = "shopping_cart"
)

var (
	MessageSuccessAddFavorite        = "recipe added to favorite"
	MessageSuccessRemoveFavorite     = "recipe removed from favorite"
	MessageSuccessAddShoppingCart    = "recipe added to shopping cart"
	MessageSuccessRemoveShoppingCart = "recipe removed from shopping cart"

	MessageFailedAddFavorite          = "failed to add recipe to favorite"
	MessageFailedRemoveFavorite       = "failed to remove recipe from favorite"
	MessageFailedAddShoppingCart      = "failed to add recipe to shopping cart"
	MessageFailedRemoveShoppingCart   = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShoppingCart = "failed to download shopping cart"

	ErrAlreadyFavorited  = NewValidationError("This recipe is already in favorite")
	ErrNotFavorited      = NewValidationError("This recipe is not in favorite")
	ErrAlreadyInCart     = NewValidationError("This recipe is already in shopping cart")
	ErrNotInShoppingCart = NewValidationError("This recipe is not in shopping cart")
)

type (
	// ShoppingListItem is one aggregated line of the shopping cart export.
	ShoppingListItem struct {
		Name            string
		MeasurementUnit string
		TotalAmount     int
	}
)
