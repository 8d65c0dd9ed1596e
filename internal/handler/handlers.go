package handler

import (
	"chat_relay/internal/config"
	"chat_relay/internal/service"
	"chat_relay/pkg/logger"
)

type Handlers struct {
	Health *HealthHandler
	Page   *PageHandler
	Chat   *ChatHandler
	Upload *UploadHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(services.Chat),
		Page:   NewPageHandler(),
		Chat:   NewChatHandler(services.Chat, log),
		Upload: NewUploadHandler(services.Attachment, services.Chat, cfg.Upload.MaxBytes, log),
	}
}
