package infra

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFileHeader builds a real *multipart.FileHeader by round-tripping a
// multipart body through the http parser.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), "https://cicloharmony.com/")
	require.NoError(t, err)
	return store
}

func TestSaveImageAndResolveURL(t *testing.T) {
	store := newTestStore(t)
	fh := makeFileHeader(t, "qr.png", []byte("fake png bytes"))

	name, size, err := store.Save(fh, KindImage)
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake png bytes")), size)
	assert.Equal(t, ".png", filepath.Ext(name))

	// Stored under a random name, never the client-supplied one.
	assert.NotEqual(t, "qr.png", name)
	_, err = os.Stat(filepath.Join(store.Root(), name))
	assert.NoError(t, err)

	assert.Equal(t, "https://cicloharmony.com/uploads/"+name, store.PublicURL(name))
}

func TestSaveRejectsOversizedVideo(t *testing.T) {
	store := newTestStore(t)

	// Declared size over the 2048 MB ceiling must be rejected before any
	// byte is written.
	fh := &multipart.FileHeader{Filename: "curso.mp4", Size: 2100 << 20}
	_, _, err := store.Save(fh, KindVideo)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	entries, readErr := os.ReadDir(store.Root())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveRejectsOversizedImage(t *testing.T) {
	store := newTestStore(t)
	fh := &multipart.FileHeader{Filename: "foto.jpg", Size: MaxImageBytes + 1}
	_, _, err := store.Save(fh, KindImage)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store := newTestStore(t)
	fh := makeFileHeader(t, "script.exe", []byte("mz"))
	_, _, err := store.Save(fh, KindImage)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSaveRejectsKindMismatch(t *testing.T) {
	store := newTestStore(t)
	// A video extension uploaded through the image endpoint is refused even
	// though the extension itself is on the allow-list.
	fh := makeFileHeader(t, "video.mp4", []byte("data"))
	_, _, err := store.Save(fh, KindImage)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove("no-existe.png"))
}
