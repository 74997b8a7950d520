package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/logger"
	"github.com/VSP7988/ISD/internal/metrics"
	"github.com/VSP7988/ISD/internal/web"
)

// Deps is everything the HTTP layer needs. Gallery, Logo, Content and
// Brochures may be nil in tests that do not touch them.
type Deps struct {
	Catalog   *catalog.Catalog
	Auth      *application.AuthService
	Sessions  *session.Store
	Gallery   *application.GalleryService
	Logo      *application.LogoService
	Content   *application.ContentService
	Brochures *application.BrochureService
	DB        Pinger
	Metrics   *metrics.Metrics
	Log       *logger.Logger

	PublicDir   string
	CORSOrigins string
	BodyLimitMB int
}

// NewApp builds the fiber application with views, middleware and routes.
func NewApp(d Deps) *fiber.App {
	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")

	bodyLimit := d.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 1024
	}

	log := d.Log.WithComponent("http")
	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		BodyLimit:             bodyLimit * 1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(requestLog(log, d.Metrics))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	if d.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
			ExposeHeaders:    "Content-Length",
			MaxAge:           86400,
		}))
	}

	RegisterRoutes(app, d)
	return app
}

// RegisterRoutes wires every page, admin screen and API route.
func RegisterRoutes(app *fiber.App, d Deps) {
	gate := NewSessionGate(d.Sessions)
	r := &renderer{catalog: d.Catalog, logo: d.Logo, gate: gate, log: d.Log}

	pages := NewPageHandler(r, d.Catalog, d.Gallery, d.Content, d.Brochures, d.Log)
	auth := NewAuthHandler(d.Auth, gate, r, d.Log)
	health := NewHealthHandler(d.DB)

	app.Get("/healthz", health.Health)
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(web.Static())}))
	if d.PublicDir != "" {
		app.Static("/images", d.PublicDir+"/images")
	}

	app.Get("/", pages.Home)
	for _, cat := range d.Catalog.Categories {
		app.Get(cat.Path(), pages.Category(cat.Slug))
	}

	if d.Brochures != nil {
		brochures := NewBrochureHandler(d.Brochures)
		app.Get("/brochures/:category", brochures.Download)
		app.Post("/brochures/:category/email", brochures.Email)
	}

	app.Get("/login", auth.LoginPage)
	app.Post("/login", auth.Login)
	app.Post("/logout", auth.Logout)

	admin := app.Group("/admin", gate.Guard(r))
	admin.Get("/", auth.Dashboard)

	if d.Logo != nil {
		logo := NewLogoHandler(d.Logo, gate, r, d.Log)
		admin.Get("/logo", logo.Show)
		admin.Post("/logo", logo.HandleUploadLogo)
	}

	if d.Gallery != nil {
		gallery := NewGalleryHandler(d.Gallery, gate, r, d.Log)
		app.Get("/api/natural-stones/images", gallery.GetImages)

		admin.Get("/natural-stones", gallery.Show)
		admin.Post("/natural-stones/images", gallery.Upload)
		admin.Post("/natural-stones/images/:id/title", gallery.UpdateTitle)
		admin.Patch("/natural-stones/images/:id", gallery.UpdateTitle)
		admin.Post("/natural-stones/images/:id/delete", gallery.DeleteImage)
		admin.Delete("/natural-stones/images/:id", gallery.DeleteImage)
	}

	if d.Content != nil {
		content := NewContentHandler(d.Content, d.Catalog, gate, r)
		app.Get("/api/natural-stones/content", content.GetContent)

		admin.Get("/content", content.Show)
		admin.Post("/content", content.UpdateContent)
		admin.Put("/content", content.UpdateContent)
	}

	app.Use(pages.NotFound)
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).Error("request failed")
		}
		return c.Status(code).JSON(fiber.Map{"error": http.StatusText(code)})
	}
}
