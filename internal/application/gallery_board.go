package application

import (
	"context"

	"github.com/VSP7988/ISD/internal/domain"
)

// BoardState is the phase of the gallery admin view.
type BoardState string

const (
	StateLoading   BoardState = "loading"
	StateIdle      BoardState = "idle"
	StateUploading BoardState = "uploading"
)

// GalleryBoard is the admin view model of the curated gallery: the rows as
// last seen, the current phase and at most one error message. Each failure
// replaces the previous message; starting a new action clears it.
//
// Edits and deletes are not blocked while a batch is uploading, as in the
// browser version of this screen.
type GalleryBoard struct {
	service *GalleryService
	owner   string

	State  BoardState
	Images []domain.GalleryImage
	Error  string
}

func NewGalleryBoard(service *GalleryService, owner string) *GalleryBoard {
	return &GalleryBoard{service: service, owner: owner, State: StateLoading}
}

// Load fetches the rows. A failure leaves an empty list and an error but
// never keeps the board in StateLoading.
func (b *GalleryBoard) Load(ctx context.Context) error {
	b.State = StateLoading
	defer func() { b.State = StateIdle }()

	images, err := b.service.GetAllImages(ctx)
	if err != nil {
		b.Images = nil
		b.Error = UserMessage(err, "Failed to load images")
		return err
	}
	b.Images = images
	b.Error = ""
	return nil
}

// Drop uploads a batch of files and appends the new rows on success.
func (b *GalleryBoard) Drop(ctx context.Context, files []File) error {
	b.Error = ""
	b.State = StateUploading
	defer func() { b.State = StateIdle }()

	added, err := b.service.AddImages(ctx, files, len(b.Images), b.owner)
	if err != nil {
		b.Error = UserMessage(err, "Failed to upload images")
		return err
	}
	b.Images = append(b.Images, added...)
	return nil
}

// UpdateTitle renames one row.
func (b *GalleryBoard) UpdateTitle(ctx context.Context, id string, title string) error {
	b.Error = ""
	if err := b.service.UpdateTitle(ctx, id, title); err != nil {
		b.Error = UserMessage(err, "Failed to update title")
		return err
	}
	for i := range b.Images {
		if b.Images[i].ID == id {
			b.Images[i].Title = title
		}
	}
	return nil
}

// Remove deletes one row and its stored object.
func (b *GalleryBoard) Remove(ctx context.Context, id string) error {
	b.Error = ""
	if err := b.service.DeleteImage(ctx, id); err != nil {
		b.Error = UserMessage(err, "Failed to remove image")
		return err
	}
	kept := b.Images[:0]
	for _, img := range b.Images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	b.Images = kept
	return nil
}
