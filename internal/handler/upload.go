package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_relay/internal/domain"
	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

// Room for multipart boundaries and headers on top of the file itself.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	attachmentService service.AttachmentService
	chatService       service.ChatService
	maxBytes          int64
	log               logger.Logger
}

func NewUploadHandler(attachmentService service.AttachmentService, chatService service.ChatService, maxBytes int64, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		attachmentService: attachmentService,
		chatService:       chatService,
		maxBytes:          maxBytes,
		log:               log,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		_ = c.Error(apperrors.ErrInternalServer)
		return
	}
	ctx := c.Request.Context()

	header, err := h.filePart(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	stored, err := h.attachmentService.ValidateAndStore(ctx, header)
	if err != nil {
		_ = c.Error(err)
		return
	}

	isImage := h.attachmentService.Classify(stored.Name) == domain.KindImage
	if _, err := h.chatService.AppendAttachment(ctx, session.ID, *stored, isImage); err != nil {
		// Do not leave a file nobody can reach from the log.
		_ = h.attachmentService.Discard(ctx, stored.Name)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": apperrors.StatusSuccess})
}

// filePart extracts the "file" part. A part sent without a filename is what
// browsers submit when nothing was selected.
func (h *UploadHandler) filePart(c *gin.Context) (*multipart.FileHeader, error) {
	limit := h.maxBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		return nil, apperrors.ErrFileTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.ErrFileTooLarge
		}
		h.log.Debug("Upload without multipart body", "error", err)
		return nil, apperrors.ErrNoFilePart
	}

	if files := form.File["file"]; len(files) > 0 {
		return files[0], nil
	}
	if _, ok := form.Value["file"]; ok {
		return nil, apperrors.ErrNoFilename
	}
	return nil, apperrors.ErrNoFilePart
}

func (h *UploadHandler) Serve(c *gin.Context) {
	path, err := h.attachmentService.Locate(c.Request.Context(), c.Param("filename"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	c.File(path)
}
