package handlers

import (
	"strconv"

	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/subscription"

	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	limit, err := parseRecipesLimit(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubscribe, err)
	}

	res, err := h.subscriptionService.Subscribe(c.Context(), c.Params("id"), middleware.UserID(c), limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	if err := h.subscriptionService.Unsubscribe(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUnsubscribe, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *subscriptionHandler) GetSubscriptions(c *fiber.Ctx) error {
	limit, err := parseRecipesLimit(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSubscriptions, err)
	}

	req := domain.SubscriptionListRequest{
		RecipesLimit:      limit,
		PaginationRequest: parsePagination(c),
	}

	res, count, err := h.subscriptionService.GetSubscriptions(c.Context(), req, middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, paginated("subscriptions", res, req.PaginationRequest, count), fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}

// parseRecipesLimit returns -1 when recipes_limit is absent.
func parseRecipesLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return -1, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, domain.ErrInvalidRecipesLimit
	}
	return limit, nil
}
