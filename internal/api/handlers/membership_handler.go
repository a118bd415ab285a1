package handlers

import (
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/membership"

	"github.com/gofiber/fiber/v2"
)

type (
	MembershipHandler interface {
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	membershipHandler struct {
		membershipService membership.MembershipService
	}
)

func NewMembershipHandler(membershipService membership.MembershipService) MembershipHandler {
	return &membershipHandler{membershipService: membershipService}
}

func (h *membershipHandler) AddFavorite(c *fiber.Ctx) error {
	res, err := h.membershipService.AddFavorite(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *membershipHandler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.membershipService.RemoveFavorite(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRemoveFavorite, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *membershipHandler) AddToShoppingCart(c *fiber.Ctx) error {
	res, err := h.membershipService.AddToShoppingCart(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAddShoppingCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddShoppingCart)
}

func (h *membershipHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	if err := h.membershipService.RemoveFromShoppingCart(c.Context(), c.Params("id"), middleware.UserID(c)); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRemoveShoppingCart, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *membershipHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	text, err := h.membershipService.DownloadShoppingCart(c.Context(), middleware.UserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDownloadShoppingCart, err)
	}

	c.Attachment(domain.ShoppingCartFileName)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(text)
}
