package repository

import (
	"context"
	"errors"
	"sync"

	"chat_relay/internal/domain"
	"chat_relay/pkg/logger"
)

var ErrNilMessage = errors.New("message is nil")

// MessageLogRepository is the append-only, process-lifetime chat log.
type MessageLogRepository interface {
	// Append adds message to the tail and returns its position.
	Append(ctx context.Context, message domain.Message) (int, error)

	// List returns every record in insertion order. The slice is a copy.
	List(ctx context.Context) ([]domain.Message, error)

	Len() int
}

type messageLogRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
	log      logger.Logger
}

func NewMessageLogRepository(log logger.Logger) MessageLogRepository {
	return &messageLogRepository{
		messages: make([]domain.Message, 0, 64),
		log:      log,
	}
}

func (r *messageLogRepository) Append(_ context.Context, message domain.Message) (int, error) {
	if message == nil {
		return 0, ErrNilMessage
	}

	r.mu.Lock()
	r.messages = append(r.messages, message)
	index := len(r.messages) - 1
	r.mu.Unlock()

	r.log.Debug("Message appended", "index", index, "type", message.Kind(), "author", message.Author())
	return index, nil
}

func (r *messageLogRepository) List(_ context.Context) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make([]domain.Message, len(r.messages))
	copy(copied, r.messages)
	return copied, nil
}

func (r *messageLogRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}
