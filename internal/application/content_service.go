package application

import (
	"context"
	"errors"

	"github.com/VSP7988/ISD/internal/domain"
)

type ContentService struct {
	repo domain.ContentRepository
}

func NewContentService(repo domain.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// Description returns the stored text, or "" when none was saved yet.
func (s *ContentService) Description(ctx context.Context) (string, error) {
	block, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return block.Description, nil
}

func (s *ContentService) SaveDescription(ctx context.Context, description, owner string) (*domain.ContentBlock, error) {
	block, err := s.repo.Save(ctx, description, owner)
	if err != nil {
		return nil, persistenceError(OpUpdate, "Failed to save description", err)
	}
	return block, nil
}
