package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"chat_relay/internal/domain"
	"chat_relay/internal/repository"
	apperrors "chat_relay/pkg/errors"
	"chat_relay/pkg/logger"
)

var (
	ErrAuthorRequired   = errors.New("author id is required")
	ErrFilenameRequired = errors.New("stored filename is required")
)

// ChatService owns the shared log: it appends records and projects the log
// for a given viewer.
type ChatService interface {
	AppendText(ctx context.Context, authorID, body string) (domain.RecordHandle, error)
	AppendAttachment(ctx context.Context, authorID string, file domain.StoredFile, isImage bool) (domain.RecordHandle, error)
	Project(ctx context.Context, viewerID string) ([]domain.ViewRecord, error)
	Count() int
}

type chatService struct {
	messageLog repository.MessageLogRepository
	log        logger.Logger
	now        func() time.Time
}

func NewChatService(messageLog repository.MessageLogRepository, log logger.Logger) ChatService {
	return &chatService{
		messageLog: messageLog,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AppendText stores body as sent. Only the emptiness check ignores
// surrounding whitespace.
func (s *chatService) AppendText(ctx context.Context, authorID, body string) (domain.RecordHandle, error) {
	if authorID == "" {
		return domain.RecordHandle{}, ErrAuthorRequired
	}
	if strings.TrimSpace(body) == "" {
		return domain.RecordHandle{}, apperrors.ErrEmptyMessage
	}

	msg := domain.TextMessage{
		RecordMeta: s.newMeta(),
		AuthorID:   authorID,
		Body:       body,
	}
	return s.append(ctx, msg)
}

func (s *chatService) AppendAttachment(ctx context.Context, authorID string, file domain.StoredFile, isImage bool) (domain.RecordHandle, error) {
	if authorID == "" {
		return domain.RecordHandle{}, ErrAuthorRequired
	}
	if file.Name == "" {
		return domain.RecordHandle{}, ErrFilenameRequired
	}

	attachment := domain.NewAttachment(file.Name, file.SizeBytes, file.MimeType)

	var msg domain.Message
	if isImage {
		msg = domain.ImageMessage{RecordMeta: s.newMeta(), AuthorID: authorID, Attachment: attachment}
	} else {
		msg = domain.FileMessage{RecordMeta: s.newMeta(), AuthorID: authorID, Attachment: attachment}
	}
	return s.append(ctx, msg)
}

func (s *chatService) append(ctx context.Context, msg domain.Message) (domain.RecordHandle, error) {
	index, err := s.messageLog.Append(ctx, msg)
	if err != nil {
		s.log.Error("Failed to append message", "error", err, "type", msg.Kind())
		return domain.RecordHandle{}, err
	}
	return domain.RecordHandle{ID: msg.Meta().ID, Index: index}, nil
}

// Project returns every record in log order, labelled for viewerID. The
// result is never nil.
func (s *chatService) Project(ctx context.Context, viewerID string) ([]domain.ViewRecord, error) {
	messages, err := s.messageLog.List(ctx)
	if err != nil {
		s.log.Error("Failed to list messages", "error", err)
		return nil, err
	}

	views := make([]domain.ViewRecord, 0, len(messages))
	for _, m := range messages {
		views = append(views, domain.NewViewRecord(m, viewerID))
	}
	return views, nil
}

func (s *chatService) Count() int {
	return s.messageLog.Len()
}

func (s *chatService) newMeta() domain.RecordMeta {
	return domain.RecordMeta{ID: uuid.New(), CreatedAt: s.now()}
}
