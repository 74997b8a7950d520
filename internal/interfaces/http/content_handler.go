package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
)

// ContentHandler edits the natural stones description.
type ContentHandler struct {
	service *application.ContentService
	catalog *catalog.Catalog
	gate    *SessionGate
	render  *renderer
}

func NewContentHandler(service *application.ContentService, cat *catalog.Catalog, gate *SessionGate, r *renderer) *ContentHandler {
	return &ContentHandler{service: service, catalog: cat, gate: gate, render: r}
}

// GetContent returns the stored description, or the static one.
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	desc, err := h.current(c)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to load description"})
	}
	return c.JSON(fiber.Map{"description": desc})
}

func (h *ContentHandler) Show(c *fiber.Ctx) error {
	desc, err := h.current(c)
	msg := ""
	if err != nil {
		msg = "Failed to load description"
	}
	return h.render.page(c, "admin_content", "Natural Stones Description", fiber.Map{
		"Description": desc,
		"Error":       msg,
		"Saved":       c.Query("saved") == "1",
	})
}

type contentRequest struct {
	Description string `json:"description" form:"description"`
}

func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	var req contentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	block, err := h.service.SaveDescription(c.UserContext(), req.Description, h.gate.Owner(c))
	if err != nil {
		msg := application.UserMessage(err, "Failed to save description")
		if wantsJSON(c) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
		}
		c.Status(fiber.StatusInternalServerError)
		return h.render.page(c, "admin_content", "Natural Stones Description", fiber.Map{
			"Description": req.Description,
			"Error":       msg,
			"Saved":       false,
		})
	}

	if wantsJSON(c) {
		return c.JSON(block)
	}
	return c.Redirect("/admin/content?saved=1", fiber.StatusSeeOther)
}

func (h *ContentHandler) current(c *fiber.Ctx) (string, error) {
	desc, err := h.service.Description(c.UserContext())
	if err != nil {
		return "", err
	}
	if desc == "" {
		if cat, ok := h.catalog.Category(catalog.NaturalStones); ok {
			desc = cat.Description
		}
	}
	return desc, nil
}
