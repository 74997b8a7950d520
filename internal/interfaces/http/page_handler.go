package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/logger"
)

// PageHandler renders the public home and category pages.
type PageHandler struct {
	render    *renderer
	catalog   *catalog.Catalog
	gallery   *application.GalleryService
	content   *application.ContentService
	brochures *application.BrochureService
	log       *logger.Logger
}

func NewPageHandler(r *renderer, cat *catalog.Catalog, gallery *application.GalleryService, content *application.ContentService, brochures *application.BrochureService, log *logger.Logger) *PageHandler {
	return &PageHandler{
		render:    r,
		catalog:   cat,
		gallery:   gallery,
		content:   content,
		brochures: brochures,
		log:       log.WithComponent("pages"),
	}
}

type lightboxView struct {
	Image    catalog.Image
	Prev     int
	Next     int
	Position int
	Count    int
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return h.render.page(c, "home", "", fiber.Map{"Home": h.catalog.Home})
}

// Category returns the handler of one category page.
func (h *PageHandler) Category(slug string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, ok := h.catalog.Category(slug)
		if !ok {
			return fiber.ErrNotFound
		}

		images := cat.Gallery
		description := cat.Description
		if slug == catalog.NaturalStones {
			images, description = h.naturalStones(c.UserContext(), cat)
		}

		data := fiber.Map{
			"Category":       cat,
			"Description":    description,
			"Images":         images,
			"MailEnabled":    h.brochures != nil && h.brochures.MailEnabled(),
			"BrochureStatus": c.Query("brochure"),
			"Lightbox":       openLightbox(images, c.Query("view")),
		}
		return h.render.page(c, "category", cat.Name, data)
	}
}

// naturalStones appends the curated rows to the static gallery and prefers
// the stored description. Store failures fall back to the static data.
func (h *PageHandler) naturalStones(ctx context.Context, cat catalog.Category) ([]catalog.Image, string) {
	images := append([]catalog.Image(nil), cat.Gallery...)
	description := cat.Description

	if h.gallery != nil {
		rows, err := h.gallery.GetAllImages(ctx)
		if err != nil {
			h.log.WithError(err).Warn("curated gallery unavailable, showing static images")
		}
		for _, row := range rows {
			images = append(images, catalog.Image{Src: row.ImageURL, Title: row.Title})
		}
	}
	if h.content != nil {
		stored, err := h.content.Description(ctx)
		if err != nil {
			h.log.WithError(err).Warn("stored description unavailable, showing static text")
		}
		if stored != "" {
			description = stored
		}
	}
	return images, description
}

// openLightbox parses ?view=i. Anything but a valid index keeps it closed.
func openLightbox(images []catalog.Image, raw string) *lightboxView {
	if raw == "" {
		return nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	lb, ok := catalog.OpenLightbox(len(images), i)
	if !ok {
		return nil
	}
	return &lightboxView{
		Image:    images[lb.Index],
		Prev:     lb.Prev(),
		Next:     lb.Next(),
		Position: lb.Position(),
		Count:    lb.Count,
	}
}

// NotFound renders the fallback page for unknown routes.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return h.render.page(c, "not_found", "Not Found", nil)
}
