package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"matamazon/internal/log"
	"matamazon/internal/store"
	"matamazon/internal/validate"
)

type SearchHandler struct {
	Sys *store.System
}

// Search answers GET /api/v1/search?q=&max_price= with the matching in-stock
// products, cheapest first.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		log.Warn(c, "validation.fail", map[string]any{"field": "q"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing query"})
	}

	var maxPrice *float64
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		v, ok := validate.Price(raw)
		if !ok {
			log.Warn(c, "validation.fail", map[string]any{"field": "max_price", "value": raw})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "enter a valid max_price"})
		}
		maxPrice = &v
	}

	products, err := h.Sys.SearchProducts(q, maxPrice)
	if err != nil {
		log.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not run search"})
	}
	return c.JSON(fiber.Map{"count": len(products), "products": products})
}
