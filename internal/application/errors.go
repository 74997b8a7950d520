package application

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gallery failures so the admin view can show a
// specific message.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindCompression ErrorKind = "compression"
	KindUpload      ErrorKind = "upload"
	KindPersistence ErrorKind = "persistence"
	KindLoad        ErrorKind = "load"
)

// Persistence operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// GalleryError is the typed failure of a gallery or logo operation.
// Message is safe to show to the admin.
type GalleryError struct {
	Kind    ErrorKind
	Op      string
	File    string
	Message string
	Err     error
}

func (e *GalleryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GalleryError) Unwrap() error {
	return e.Err
}

// Is matches another *GalleryError by kind and, when set, by op, so the
// sentinels below work with errors.Is.
func (e *GalleryError) Is(target error) bool {
	t, ok := target.(*GalleryError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

var (
	ErrValidation  = &GalleryError{Kind: KindValidation}
	ErrCompression = &GalleryError{Kind: KindCompression}
	ErrUpload      = &GalleryError{Kind: KindUpload}
	ErrPersistence = &GalleryError{Kind: KindPersistence}
	ErrInsert      = &GalleryError{Kind: KindPersistence, Op: OpInsert}
	ErrUpdate      = &GalleryError{Kind: KindPersistence, Op: OpUpdate}
	ErrDelete      = &GalleryError{Kind: KindPersistence, Op: OpDelete}
	ErrLoad        = &GalleryError{Kind: KindLoad}
)

func validationError(file, msg string) *GalleryError {
	return &GalleryError{Kind: KindValidation, File: file, Message: msg}
}

func compressionError(file string, err error) *GalleryError {
	return &GalleryError{Kind: KindCompression, File: file, Message: "Failed to compress image", Err: err}
}

func uploadError(file string, err error) *GalleryError {
	return &GalleryError{Kind: KindUpload, File: file, Message: "Failed to upload image to storage", Err: err}
}

func persistenceError(op, msg string, err error) *GalleryError {
	return &GalleryError{Kind: KindPersistence, Op: op, Message: msg, Err: err}
}

func loadError(err error) *GalleryError {
	return &GalleryError{Kind: KindLoad, Message: "Failed to load images", Err: err}
}

// UserMessage turns any error into the single line shown in the admin view.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ge *GalleryError
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return fallback
}
