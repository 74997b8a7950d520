package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
)

type BrochureHandler struct {
	service *application.BrochureService
}

func NewBrochureHandler(service *application.BrochureService) *BrochureHandler {
	return &BrochureHandler{service: service}
}

// Download sends the category PDF as an attachment.
func (h *BrochureHandler) Download(c *fiber.Ctx) error {
	path, name, err := h.service.File(c.Params("category"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brochure not found"})
	}
	return c.Download(path, name)
}

type brochureMailRequest struct {
	Email string `json:"email" form:"email"`
}

// Email mails the download link to the visitor.
func (h *BrochureHandler) Email(c *fiber.Ctx) error {
	slug := c.Params("category")

	var req brochureMailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := h.service.EmailLink(c.UserContext(), c.IP(), slug, req.Email)
	if wantsJSON(c) {
		if err != nil {
			return c.Status(brochureStatus(err)).JSON(fiber.Map{"error": brochureMessage(err)})
		}
		return c.JSON(fiber.Map{"message": "Brochure link sent"})
	}

	if errors.Is(err, application.ErrUnknownCategory) {
		return fiber.ErrNotFound
	}
	result := "sent"
	if err != nil {
		result = "error"
	}
	return c.Redirect("/"+slug+"?brochure="+result, fiber.StatusSeeOther)
}

func brochureStatus(err error) int {
	switch {
	case errors.Is(err, application.ErrUnknownCategory), errors.Is(err, application.ErrBrochureMissing):
		return fiber.StatusNotFound
	case errors.Is(err, application.ErrInvalidRecipient):
		return fiber.StatusBadRequest
	case errors.Is(err, application.ErrRateLimited):
		return fiber.StatusTooManyRequests
	case errors.Is(err, application.ErrMailDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func brochureMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrUnknownCategory), errors.Is(err, application.ErrBrochureMissing):
		return "Brochure not found"
	case errors.Is(err, application.ErrInvalidRecipient):
		return "Please enter a valid email address"
	case errors.Is(err, application.ErrRateLimited):
		return "Too many requests, please try again later"
	case errors.Is(err, application.ErrMailDisabled):
		return "Brochure mail is not available"
	default:
		return "Failed to send brochure"
	}
}
