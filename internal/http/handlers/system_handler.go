package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"matamazon/internal/log"
	"matamazon/internal/store"
)

type SystemHandler struct {
	Sys *store.System
}

// Status renders the HTML landing page with entity counts.
func (h *SystemHandler) Status(c *fiber.Ctx) error {
	return c.Render("status", fiber.Map{
		"Customers": len(h.Sys.Customers()),
		"Suppliers": len(h.Sys.Suppliers()),
		"Products":  len(h.Sys.Products()),
		"Orders":    len(h.Sys.Orders()),
	})
}

// Snapshot answers GET /api/v1/snapshot with the plain-text system export:
// customers, then suppliers, then products, one rendered line each.
func (h *SystemHandler) Snapshot(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Sys.ExportSnapshot(&buf); err != nil {
		log.Error(c, "snapshot.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build snapshot"})
	}
	c.Type("txt", "utf-8")
	return c.SendString(buf.String())
}

// OrdersByCity answers GET /api/v1/orders-by-city with the flat
// city -> rendered-orders object.
func (h *SystemHandler) OrdersByCity(c *fiber.Ctx) error {
	return c.JSON(h.Sys.OrdersByCity())
}
