package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"chat_relay/internal/domain"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/filename"
	"chat_relay/pkg/logger"
)

const (
	// Upper bound on name_1.ext, name_2.ext, ... candidates tried for one upload.
	maxCollisionAttempts = 1000

	// Bytes kept from the start of each upload for MIME sniffing.
	sniffLen = 3072
)

var ErrTooManyCollisions = errors.New("no free file name")

type UploadRepository interface {
	// Create writes src under name, or under name with a numeric suffix when
	// name is taken. Existing files are never overwritten.
	Create(ctx context.Context, name string, src io.Reader) (*domain.StoredFile, error)

	// Locate returns the path of a stored file, or apperrors.ErrNotFound.
	Locate(ctx context.Context, name string) (string, error)

	Remove(ctx context.Context, name string) error
}

type uploadRepository struct {
	dir string
	log logger.Logger
}

// NewUploadRepository creates dir if it does not exist yet.
func NewUploadRepository(dir string, log logger.Logger) (UploadRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &uploadRepository{dir: dir, log: log}, nil
}

func (r *uploadRepository) Create(ctx context.Context, name string, src io.Reader) (*domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !filename.IsPlain(name) {
		return nil, fmt.Errorf("unsafe file name %q", name)
	}

	f, stored, err := r.claim(name)
	if err != nil {
		r.log.Error("Failed to claim upload name", "error", err, "filename", name)
		return nil, err
	}

	head := &cappedBuffer{limit: sniffLen}
	size, err := io.Copy(io.MultiWriter(f, head), src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		r.log.Error("Failed to write upload", "error", err, "filename", stored)
		if rmErr := os.Remove(filepath.Join(r.dir, stored)); rmErr != nil {
			r.log.Warn("Failed to remove partial upload", "error", rmErr, "filename", stored)
		}
		return nil, fmt.Errorf("failed to write %s: %w", stored, err)
	}

	if stored != name {
		r.log.Info("Upload name taken, stored under new name", "requested", name, "stored", stored)
	}

	return &domain.StoredFile{
		Name:      stored,
		SizeBytes: size,
		MimeType:  mimetype.Detect(head.Bytes()).String(),
	}, nil
}

// claim creates the first free candidate with O_EXCL so two uploads of the
// same name can never end up in one file.
func (r *uploadRepository) claim(name string) (*os.File, string, error) {
	for n := 0; n <= maxCollisionAttempts; n++ {
		candidate := name
		if n > 0 {
			candidate = filename.WithSuffix(name, n)
		}

		f, err := os.OpenFile(filepath.Join(r.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("%s: %w", name, ErrTooManyCollisions)
}

func (r *uploadRepository) Locate(_ context.Context, name string) (string, error) {
	if !filename.IsPlain(name) {
		return "", apperrors.ErrNotFound
	}

	path := filepath.Join(r.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.ErrNotFound
		}
		r.log.Error("Failed to stat upload", "error", err, "filename", name)
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", apperrors.ErrNotFound
	}
	return path, nil
}

func (r *uploadRepository) Remove(_ context.Context, name string) error {
	if !filename.IsPlain(name) {
		return apperrors.ErrNotFound
	}
	err := os.Remove(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return apperrors.ErrNotFound
	}
	return err
}

type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
