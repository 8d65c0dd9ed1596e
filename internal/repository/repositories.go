package repository

import (
	"chat_relay/pkg/logger"
)

type Repositories struct {
	MessageLog MessageLogRepository
	Upload     UploadRepository
}

func NewRepositories(uploadDir string, log logger.Logger) (*Repositories, error) {
	upload, err := NewUploadRepository(uploadDir, log)
	if err != nil {
		return nil, err
	}

	repos := &Repositories{
		MessageLog: NewMessageLogRepository(log),
		Upload:     upload,
	}

	log.Info("Repositories initialized", "upload_dir", uploadDir)
	return repos, nil
}
