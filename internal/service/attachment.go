package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"chat_relay/internal/config"
	"chat_relay/internal/domain"
	"chat_relay/internal/repository"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/filename"
	"chat_relay/pkg/logger"
)

// AttachmentService is the gate every upload passes before it may be
// referenced from the chat log.
type AttachmentService interface {
	// ValidateAndStore checks the upload against the allow-list and size
	// limit, sanitizes its name and writes it. Nothing is written when a
	// check fails.
	ValidateAndStore(ctx context.Context, upload *multipart.FileHeader) (*domain.StoredFile, error)

	// Classify reports whether a stored name is an image or a generic file.
	Classify(storedName string) domain.Kind

	// Discard removes a stored file that never made it into the log.
	Discard(ctx context.Context, storedName string) error

	// Locate resolves a stored name to its path on disk.
	Locate(ctx context.Context, storedName string) (string, error)
}

type attachmentService struct {
	uploads  repository.UploadRepository
	allowed  map[string]struct{}
	images   map[string]struct{}
	maxBytes int64
	log      logger.Logger
}

func NewAttachmentService(uploads repository.UploadRepository, cfg config.UploadConfig, log logger.Logger) AttachmentService {
	return &attachmentService{
		uploads:  uploads,
		allowed:  toSet(cfg.AllowedExtensions),
		images:   toSet(cfg.ImageExtensions),
		maxBytes: cfg.MaxBytes,
		log:      log,
	}
}

func (s *attachmentService) ValidateAndStore(ctx context.Context, upload *multipart.FileHeader) (*domain.StoredFile, error) {
	if upload == nil {
		return nil, apperrors.ErrNoFilePart
	}
	if upload.Filename == "" {
		return nil, apperrors.ErrNoFilename
	}
	if !s.isAllowed(upload.Filename) {
		s.log.Info("Rejected upload with disallowed type", "filename", upload.Filename)
		return nil, apperrors.ErrDisallowedType
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		s.log.Info("Rejected oversized upload", "filename", upload.Filename, "size", upload.Size, "max", s.maxBytes)
		return nil, apperrors.ErrFileTooLarge
	}

	name := s.storageName(upload.Filename)

	src, err := upload.Open()
	if err != nil {
		s.log.Error("Failed to open upload", "error", err, "filename", upload.Filename)
		return nil, fmt.Errorf("open %s: %w", upload.Filename, apperrors.ErrStorageWrite)
	}
	defer src.Close()

	stored, err := s.uploads.Create(ctx, name, src)
	if err != nil {
		return nil, fmt.Errorf("store %s: %v: %w", name, err, apperrors.ErrStorageWrite)
	}

	s.log.Info("Upload stored",
		"filename", stored.Name,
		"original", upload.Filename,
		"size", stored.SizeBytes,
		"mime", stored.MimeType,
	)
	return stored, nil
}

// storageName sanitizes original. Names that lose their stem or extension
// to sanitization (e.g. entirely non-ASCII) get a random stem instead.
func (s *attachmentService) storageName(original string) string {
	ext, _ := filename.Extension(original)

	name := filename.Secure(original)
	if got, ok := filename.Extension(name); ok && got == ext && len(name) > len(ext)+1 {
		return name
	}
	return uuid.NewString() + "." + ext
}

func (s *attachmentService) isAllowed(name string) bool {
	ext, ok := filename.Extension(name)
	if !ok {
		return false
	}
	_, allowed := s.allowed[ext]
	return allowed
}

func (s *attachmentService) Classify(storedName string) domain.Kind {
	ext, _ := filename.Extension(storedName)
	if _, ok := s.images[ext]; ok {
		return domain.KindImage
	}
	return domain.KindFile
}

func (s *attachmentService) Discard(ctx context.Context, storedName string) error {
	if err := s.uploads.Remove(ctx, storedName); err != nil {
		s.log.Warn("Failed to discard upload", "error", err, "filename", storedName)
		return err
	}
	return nil
}

func (s *attachmentService) Locate(ctx context.Context, storedName string) (string, error) {
	return s.uploads.Locate(ctx, storedName)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
