package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/logger"
)

// renderer fills in the data every page shares: logo, navigation and the
// admin flag.
type renderer struct {
	catalog *catalog.Catalog
	logo    *application.LogoService
	gate    *SessionGate
	log     *logger.Logger
}

func (r *renderer) page(c *fiber.Ctx, name, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	data["Nav"] = r.catalog.Categories
	data["Authenticated"] = r.gate != nil && r.gate.IsAuthenticated(c)

	logo := ""
	if r.logo != nil {
		url, err := r.logo.CurrentLogo(c.UserContext())
		if err != nil {
			r.log.WithError(err).Warn("logo lookup failed, rendering without logo")
		}
		logo = url
	}
	data["Logo"] = logo

	return c.Render(name, data)
}

// wantsJSON reports whether the client asked for a JSON answer instead of
// a page.
func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
