package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/logger"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrBrochureMissing  = errors.New("brochure not available")
	ErrMailDisabled     = errors.New("brochure mail is not configured")
	ErrRateLimited      = errors.New("rate limited")
	ErrInvalidRecipient = errors.New("invalid email address")
)

// BrochureMailer sends the brochure link to a visitor.
type BrochureMailer interface {
	SendBrochureLink(ctx context.Context, to, categoryName, link string) error
}

// BrochureService serves category brochures as downloads and by mail.
type BrochureService struct {
	catalog  *catalog.Catalog
	dir      string
	siteURL  string
	mailer   BrochureMailer
	limiter  *RateLimiter
	validate *validator.Validate
	log      *logger.Logger
}

// NewBrochureService builds the service. mailer may be nil, which disables
// the mail form.
func NewBrochureService(cat *catalog.Catalog, dir, siteURL string, mailer BrochureMailer, limiter *RateLimiter, log *logger.Logger) *BrochureService {
	return &BrochureService{
		catalog:  cat,
		dir:      dir,
		siteURL:  siteURL,
		mailer:   mailer,
		limiter:  limiter,
		validate: validator.New(),
		log:      log.WithComponent("brochure"),
	}
}

// File resolves the brochure PDF of a category on disk.
func (s *BrochureService) File(slug string) (path string, filename string, err error) {
	cat, ok := s.catalog.Category(slug)
	if !ok {
		return "", "", ErrUnknownCategory
	}
	path = filepath.Join(s.dir, cat.Slug+".pdf")
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", "", ErrBrochureMissing
	}
	return path, fmt.Sprintf("Isha Stone - %s Brochure.pdf", cat.Brochure), nil
}

// MailEnabled reports whether EmailLink can send anything.
func (s *BrochureService) MailEnabled() bool {
	return s.mailer != nil
}

// EmailLink mails the download link of a category brochure to "to".
func (s *BrochureService) EmailLink(ctx context.Context, clientID, slug, to string) error {
	if s.mailer == nil {
		return ErrMailDisabled
	}
	cat, ok := s.catalog.Category(slug)
	if !ok {
		return ErrUnknownCategory
	}
	if err := s.validate.Var(to, "required,email"); err != nil {
		return ErrInvalidRecipient
	}
	if _, _, err := s.File(slug); err != nil {
		return err
	}
	if ok, err := s.limiter.Allow(clientID); !ok {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	link := s.siteURL + "/brochures/" + cat.Slug
	if err := s.mailer.SendBrochureLink(ctx, to, cat.Name, link); err != nil {
		s.log.WithError(err).WithField("category", cat.Slug).Error("brochure mail failed")
		return err
	}
	s.log.WithField("category", cat.Slug).Info("brochure link mailed")
	return nil
}
