package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
)

// GalleryHandler serves the curated natural stones gallery: the public
// JSON list and the admin screen.
type GalleryHandler struct {
	service *application.GalleryService
	gate    *SessionGate
	render  *renderer
	log     *logger.Logger
}

func NewGalleryHandler(service *application.GalleryService, gate *SessionGate, r *renderer, log *logger.Logger) *GalleryHandler {
	return &GalleryHandler{service: service, gate: gate, render: r, log: log.WithComponent("gallery-http")}
}

// GetImages lists the curated rows as JSON.
func (h *GalleryHandler) GetImages(c *fiber.Ctx) error {
	images, err := h.service.GetAllImages(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": application.UserMessage(err, "Failed to load images")})
	}
	return c.JSON(images)
}

// Show renders the admin screen.
func (h *GalleryHandler) Show(c *fiber.Ctx) error {
	board := h.board(c)
	_ = board.Load(c.UserContext())
	return h.show(c, board)
}

// Upload accepts a multipart batch under "files".
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	board := h.board(c)
	if err := board.Load(c.UserContext()); err != nil {
		return h.respond(c, board, err, nil)
	}

	files, err := readFiles(c, "files")
	if err != nil {
		board.Error = "No files received"
		return h.respond(c, board, errBadForm, nil)
	}
	if len(files) == 0 {
		board.Error = "No files received"
		return h.respond(c, board, errBadForm, nil)
	}

	before := len(board.Images)
	err = board.Drop(c.UserContext(), files)
	var added []domain.GalleryImage
	if err == nil {
		added = board.Images[before:]
	}
	return h.respond(c, board, err, added)
}

type titleRequest struct {
	Title string `json:"title" form:"title"`
}

func (h *GalleryHandler) UpdateTitle(c *fiber.Ctx) error {
	var req titleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	board := h.board(c)
	_ = board.Load(c.UserContext())
	err := board.UpdateTitle(c.UserContext(), c.Params("id"), req.Title)
	return h.respond(c, board, err, nil)
}

func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if wantsJSON(c) {
		if err := h.service.DeleteImage(c.UserContext(), id); err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": application.UserMessage(err, "Failed to remove image")})
		}
		return c.SendStatus(fiber.StatusOK)
	}

	board := h.board(c)
	_ = board.Load(c.UserContext())
	err := board.Remove(c.UserContext(), id)
	return h.respond(c, board, err, nil)
}

func (h *GalleryHandler) board(c *fiber.Ctx) *application.GalleryBoard {
	return application.NewGalleryBoard(h.service, h.gate.Owner(c))
}

func (h *GalleryHandler) show(c *fiber.Ctx, board *application.GalleryBoard) error {
	return h.render.page(c, "admin_gallery", "Natural Stones Gallery", fiber.Map{"Board": board})
}

// respond answers an admin action: JSON for API clients, otherwise the
// redirect after a successful form post or the screen with its error.
func (h *GalleryHandler) respond(c *fiber.Ctx, board *application.GalleryBoard, err error, added []domain.GalleryImage) error {
	if wantsJSON(c) {
		if err != nil {
			msg := board.Error
			if msg == "" {
				msg = application.UserMessage(err, "Request failed")
			}
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": msg})
		}
		if added != nil {
			return c.Status(fiber.StatusCreated).JSON(added)
		}
		return c.JSON(board.Images)
	}
	if err != nil {
		c.Status(statusFor(err))
		return h.show(c, board)
	}
	return c.Redirect("/admin/natural-stones", fiber.StatusSeeOther)
}

var errBadForm = errors.New("bad form")

// statusFor maps service failures to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadForm), errors.Is(err, application.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, application.ErrCompression):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, application.ErrUpload), errors.Is(err, application.ErrLoad):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// readFiles reads every file of a multipart field. Files above the upload
// ceiling are not read; their declared size is enough to reject them.
func readFiles(c *fiber.Ctx, field string) ([]application.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File[field]
	files := make([]application.File, 0, len(headers))
	for _, fh := range headers {
		f := application.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
		}
		if fh.Size <= application.MaxUploadBytes {
			data, err := readHeader(fh)
			if err != nil {
				return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
			}
			f.Data = data
		}
		files = append(files, f)
	}
	return files, nil
}

func readHeader(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
