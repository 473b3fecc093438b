package storage

import (
	"context"
	"io"
	"os"
	"path"
)

// LocalStorage stores files below a directory. All access goes through an
// os.Root so names can not escape it.
type LocalStorage struct {
	root *os.Root
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{root: root}, nil
}

func (ls *LocalStorage) Close() error {
	return ls.root.Close()
}

func (ls *LocalStorage) Save(
	ctx context.Context,
	folder, originalName string,
	r io.Reader,
) (string, error) {
	name, err := NewFileName(folder, originalName)
	if err != nil {
		return "", err
	}
	if dir := path.Dir(name); dir != "." {
		if err := ls.root.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	f, err := ls.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		ls.root.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		ls.root.Remove(name)
		return "", err
	}
	return name, nil
}

func (ls *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	f, err := ls.root.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

func (ls *LocalStorage) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	return ls.root.Remove(name)
}
