package domain

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfSubscription    = NewValidationError("You can't subscribe to yourself")
	ErrAlreadySubscribed   = NewValidationError("You already subscribed")
	ErrNotSubscribed       = NewValidationError("You are not subscribed")
	ErrInvalidRecipesLimit = NewValidationError("recipes_limit must be a non-negative integer")
)

type (
	SubscriptionListRequest struct {
		// RecipesLimit < 0 means no limit.
		RecipesLimit int
		PaginationRequest
	}

	SubscriptionResponse struct {
		Email        string                `json:"email"`
		ID           string                `json:"id"`
		Username     string                `json:"username"`
		FirstName    string                `json:"first_name"`
		LastName     string                `json:"last_name"`
		IsSubscribed bool                  `json:"is_subscribed"`
		Recipes      []ShortRecipeResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
