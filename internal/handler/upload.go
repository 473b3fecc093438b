package handler

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/settings"
	"github.com/haatos/simple-lms/internal/storage"
	"github.com/labstack/echo/v4"
)

// formUpload returns the file sent in field, or nil when the request has
// none. The returned close func must always be called.
func formUpload(c echo.Context, field string) (*service.Upload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, noop, nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &service.Upload{Filename: fh.Filename, Reader: f}, func() { f.Close() }, nil
}

// formString returns nil for missing and empty values so that updates leave
// the field unchanged.
func formString(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.FormValue(name))
	if v == "" {
		return nil
	}
	return &v
}

func formFloat(c echo.Context, name string) (*float64, error) {
	v := formString(c, name)
	if v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &f, nil
}

func formInt(c echo.Context, name string) (*int64, error) {
	v := formString(c, name)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(*v, 10, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &n, nil
}

type UploadHandler struct {
	files storage.Storage
}

func NewUploadHandler(files storage.Storage) *UploadHandler {
	return &UploadHandler{files}
}

func SetupUploadRoutes(e *echo.Echo, files storage.Storage) {
	h := NewUploadHandler(files)
	e.GET("/uploads/*", h.GetUpload)
}

func (h *UploadHandler) GetUpload(c echo.Context) error {
	name := c.Param("*")
	if !storage.AllowedExtension(name) {
		return newError(c, nil, http.StatusNotFound, "not found")
	}
	rc, err := h.files.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) || errors.Is(err, fs.ErrNotExist) {
			return newError(c, err, http.StatusNotFound, "not found")
		}
		return newError(c, err, http.StatusInternalServerError, "unable to read file")
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}

func uploadURL(name string) string {
	return settings.Settings.UploadURL(name)
}
