package infra

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload kinds and their size ceilings. The ceiling is enforced from the
// declared Content-Length BEFORE any byte is written, and re-checked while
// streaming in case the declared size lied.
const (
	KindImage = "image"
	KindVideo = "video"

	MaxImageBytes = 10 << 20   // 10 MB
	MaxVideoBytes = 2048 << 20 // 2 GB
)

// ErrFileTooLarge is returned when an upload exceeds its kind's ceiling.
var ErrFileTooLarge = errors.New("archivo demasiado grande")

// ErrUnsupportedType is returned for extensions outside the allow-list.
var ErrUnsupportedType = errors.New("tipo de archivo no soportado")

var allowedExt = map[string]string{
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".webp": KindImage,
	".mp4":  KindVideo,
	".webm": KindVideo,
	".mov":  KindVideo,
}

// FileStore persists admin uploads (QR images, notification videos) on local
// disk and resolves their public URLs. The directory is served statically by
// the router under /uploads.
type FileStore struct {
	root          string
	publicBaseURL string
}

func NewFileStore(root, publicBaseURL string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root dir: %w", err)
	}
	return &FileStore{root: root, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Root returns the on-disk directory backing the store.
func (fs *FileStore) Root() string { return fs.root }

// MaxBytes returns the size ceiling for a kind.
func MaxBytes(kind string) int64 {
	if kind == KindVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

// Save streams one multipart file into the store under a random name.
// Returns the stored file name and its byte size.
func (fs *FileStore) Save(fh *multipart.FileHeader, kind string) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	extKind, ok := allowedExt[ext]
	if !ok || extKind != kind {
		return "", 0, ErrUnsupportedType
	}

	limit := MaxBytes(kind)
	if fh.Size > limit {
		return "", 0, ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dstPath := filepath.Join(fs.root, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	// LimitReader with one spare byte detects bodies larger than declared.
	written, err := io.Copy(dst, io.LimitReader(src, limit+1))
	if err != nil {
		os.Remove(dstPath)
		return "", 0, err
	}
	if written > limit {
		os.Remove(dstPath)
		return "", 0, ErrFileTooLarge
	}

	return name, written, nil
}

// PublicURL resolves the browser-facing URL of a stored file.
func (fs *FileStore) PublicURL(name string) string {
	return fs.publicBaseURL + "/uploads/" + name
}

// Remove deletes a stored file; missing files are not an error.
func (fs *FileStore) Remove(name string) error {
	err := os.Remove(filepath.Join(fs.root, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
