package service

import (
	"context"
	"errors"
	"io"

	"github.com/haatos/simple-lms/internal/storage"
	"go.uber.org/zap"
)

const (
	UserImageFolder      = "users"
	TeacherPictureFolder = "teachers"
	CourseCoverFolder    = "courses"
)

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// saveUpload stores u below folder and returns the stored name. A nil
// upload stores nothing and returns an empty name.
func saveUpload(
	ctx context.Context,
	files storage.Storage,
	folder string,
	u *Upload,
) (string, error) {
	if u == nil {
		return "", nil
	}
	name, err := files.Save(ctx, folder, u.Filename, u.Reader)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFileType) {
			return "", ErrUnsupportedFile
		}
		return "", err
	}
	return name, nil
}

func deleteUpload(ctx context.Context, files storage.Storage, logger *zap.Logger, name string) {
	if name == "" {
		return
	}
	if err := files.Delete(context.WithoutCancel(ctx), name); err != nil {
		logger.Warn("err deleting upload", zap.String("name", name), zap.Error(err))
	}
}
