package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/logger"
)

type LogoHandler struct {
	service *application.LogoService
	gate    *SessionGate
	render  *renderer
	log     *logger.Logger
}

func NewLogoHandler(service *application.LogoService, gate *SessionGate, r *renderer, log *logger.Logger) *LogoHandler {
	return &LogoHandler{service: service, gate: gate, render: r, log: log.WithComponent("logo-http")}
}

func (h *LogoHandler) Show(c *fiber.Ctx) error {
	return h.render.page(c, "admin_logo", "Update Logo", fiber.Map{
		"Error": "",
		"Saved": c.Query("saved") == "1",
	})
}

// HandleUploadLogo replaces the logo with the multipart file "logo".
func (h *LogoHandler) HandleUploadLogo(c *fiber.Ctx) error {
	files, err := readFiles(c, "logo")
	if err != nil || len(files) == 0 {
		h.log.WithError(err).Warn("failed to retrieve logo file")
		return h.fail(c, errBadForm, "Please choose a logo file")
	}

	setting, err := h.service.ReplaceLogo(c.UserContext(), files[0], h.gate.Owner(c))
	if err != nil {
		h.log.WithError(err).Warn("logo upload failed")
		return h.fail(c, err, application.UserMessage(err, "Failed to update logo"))
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"url": setting.LogoURL})
	}
	return c.Redirect("/admin/logo?saved=1", fiber.StatusSeeOther)
}

func (h *LogoHandler) fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	if wantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	c.Status(status)
	return h.render.page(c, "admin_logo", "Update Logo", fiber.Map{"Error": msg, "Saved": false})
}
