package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/logger"
)

type AuthHandler struct {
	service *application.AuthService
	gate    *SessionGate
	render  *renderer
	log     *logger.Logger
}

func NewAuthHandler(service *application.AuthService, gate *SessionGate, r *renderer, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, gate: gate, render: r, log: log.WithComponent("auth")}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginPage shows the form, or skips it for a signed-in admin.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if h.gate.IsAuthenticated(c) {
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
	return h.render.page(c, "login", "Admin Login", fiber.Map{"Error": "", "Email": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		if wantsJSON(c) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		return h.render.page(c, "login", "Admin Login", fiber.Map{"Error": "Invalid request", "Email": ""})
	}
	email := req.Email

	if err := h.service.Login(email, req.Password); err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			h.log.WithField("ip", c.IP()).Warn("admin login rejected")
		}
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		c.Status(fiber.StatusUnauthorized)
		return h.render.page(c, "login", "Admin Login", fiber.Map{"Error": "Invalid email or password", "Email": email})
	}

	if err := h.gate.SignIn(c, email); err != nil {
		h.log.WithError(err).Error("failed to store session")
		return fiber.ErrInternalServerError
	}
	h.log.WithField("ip", c.IP()).Info("admin signed in")

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"message": "Signed in"})
	}
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.gate.SignOut(c); err != nil {
		h.log.WithError(err).Warn("failed to clear session")
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	return h.render.page(c, "admin_dashboard", "Admin", nil)
}
