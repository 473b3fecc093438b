package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidName         = errors.New("invalid file name")
)

// Storage keeps uploaded files. Names returned by Save are relative to the
// storage root, e.g. "users/0b1c...png".
type Storage interface {
	Save(ctx context.Context, folder, originalName string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

var allowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

func AllowedExtension(originalName string) bool {
	ext := strings.ToLower(filepath.Ext(originalName))
	return slices.Contains(allowedExtensions, ext)
}

// NewFileName returns folder/<uuid><ext> for an allowed original file name.
func NewFileName(folder, originalName string) (string, error) {
	if !AllowedExtension(originalName) {
		return "", ErrUnsupportedFileType
	}
	if folder != "" && !validName(folder) {
		return "", ErrInvalidName
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(folder, uuid.NewString()+ext), nil
}

// validName reports whether name is a slash separated path that stays
// inside the storage root.
func validName(name string) bool {
	if name == "" || strings.Contains(name, `\`) {
		return false
	}
	return filepath.IsLocal(filepath.FromSlash(name))
}
