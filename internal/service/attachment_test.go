package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat_relay/internal/config"
	"chat_relay/internal/domain"
	"chat_relay/internal/repository"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

func newAttachmentService(t *testing.T, maxBytes int64) (AttachmentService, string) {
	t.Helper()
	dir := t.TempDir()
	uploads, err := repository.NewUploadRepository(dir, logger.Discard())
	require.NoError(t, err)

	cfg := config.UploadConfig{
		Dir:               dir,
		MaxBytes:          maxBytes,
		AllowedExtensions: []string{"png", "jpg", "jpeg", "gif", "pdf", "doc", "docx", "txt"},
		ImageExtensions:   []string{"png", "jpg", "jpeg", "gif"},
	}
	return NewAttachmentService(uploads, cfg, logger.Discard()), dir
}

// fileHeader builds the header a multipart parser would hand a handler.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestValidateAndStoreMissingParts(t *testing.T) {
	svc, dir := newAttachmentService(t, 1<<20)
	ctx := context.Background()

	_, err := svc.ValidateAndStore(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrNoFilePart)

	_, err = svc.ValidateAndStore(ctx, &multipart.FileHeader{})
	assert.ErrorIs(t, err, apperrors.ErrNoFilename)

	assert.Empty(t, dirEntries(t, dir))
}

func TestValidateAndStoreRejectsDisallowedType(t *testing.T) {
	svc, dir := newAttachmentService(t, 1<<20)
	ctx := context.Background()

	for _, name := range []string{"evil.exe", "noextension", "archive.tar.gz", "script.png.sh"} {
		_, err := svc.ValidateAndStore(ctx, fileHeader(t, name, []byte("MZ")))
		assert.ErrorIs(t, err, apperrors.ErrDisallowedType, name)
	}
	assert.Empty(t, dirEntries(t, dir))
}

func TestValidateAndStoreRejectsOversized(t *testing.T) {
	svc, dir := newAttachmentService(t, 4)

	_, err := svc.ValidateAndStore(context.Background(), fileHeader(t, "big.txt", []byte("12345")))

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
	assert.Empty(t, dirEntries(t, dir))
}

func TestValidateAndStoreWritesSanitizedName(t *testing.T) {
	svc, dir := newAttachmentService(t, 1<<20)
	content := []byte("\x89PNG\r\n\x1a\nrest")

	stored, err := svc.ValidateAndStore(context.Background(), fileHeader(t, "my holiday photo.PNG", content))
	require.NoError(t, err)

	assert.Equal(t, "my_holiday_photo.PNG", stored.Name)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, domain.KindImage, svc.Classify(stored.Name))

	data, err := os.ReadFile(filepath.Join(dir, stored.Name))
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestValidateAndStoreKeepsExistingFiles(t *testing.T) {
	svc, dir := newAttachmentService(t, 1<<20)
	ctx := context.Background()

	first, err := svc.ValidateAndStore(ctx, fileHeader(t, "notes.txt", []byte("mine")))
	require.NoError(t, err)
	second, err := svc.ValidateAndStore(ctx, fileHeader(t, "notes.txt", []byte("yours")))
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", first.Name)
	assert.Equal(t, "notes_1.txt", second.Name)

	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestValidateAndStoreNonASCIINameGetsGeneratedStem(t *testing.T) {
	svc, _ := newAttachmentService(t, 1<<20)

	stored, err := svc.ValidateAndStore(context.Background(), fileHeader(t, "写真.jpg", []byte("x")))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stored.Name, ".jpg"), stored.Name)
	assert.Len(t, stored.Name, len("00000000-0000-0000-0000-000000000000.jpg"))
	assert.Equal(t, domain.KindImage, svc.Classify(stored.Name))
}

func TestClassify(t *testing.T) {
	svc, _ := newAttachmentService(t, 1<<20)

	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.Gif"} {
		assert.Equal(t, domain.KindImage, svc.Classify(name), name)
	}
	for _, name := range []string{"a.pdf", "b.doc", "c.docx", "d.txt", "noext"} {
		assert.Equal(t, domain.KindFile, svc.Classify(name), name)
	}
}

func TestDiscardAndLocate(t *testing.T) {
	svc, _ := newAttachmentService(t, 1<<20)
	ctx := context.Background()

	stored, err := svc.ValidateAndStore(ctx, fileHeader(t, "temp.txt", []byte("x")))
	require.NoError(t, err)

	_, err = svc.Locate(ctx, stored.Name)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, stored.Name))

	_, err = svc.Locate(ctx, stored.Name)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
