package service

import (
	"chat_relay/internal/config"
	"chat_relay/internal/repository"
	"chat_relay/pkg/logger"
)

type Services struct {
	Session    IdentityProvider
	Chat       ChatService
	Attachment AttachmentService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	services := &Services{
		Session:    NewSessionService(cfg.Session, log),
		Chat:       NewChatService(repos.MessageLog, log),
		Attachment: NewAttachmentService(repos.Upload, cfg.Upload, log),
	}

	log.Info("Services initialized",
		"allowed_extensions", cfg.Upload.AllowedExtensions,
		"max_upload_bytes", cfg.Upload.MaxBytes,
	)
	return services
}
