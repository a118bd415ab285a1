package handlers

import (
	"strconv"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
)

func parsePagination(c *fiber.Ctx) domain.PaginationRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = domain.DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}

	return domain.PaginationRequest{Page: page, Limit: limit}
}

func paginated(key string, items any, p domain.PaginationRequest, count int64) fiber.Map {
	return fiber.Map{
		key:          items,
		"pagination": domain.NewPaginationResponse(p, count),
	}
}
