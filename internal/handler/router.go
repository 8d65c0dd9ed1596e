package handler

import (
	"github.com/gin-gonic/gin"

	"chat_relay/internal/config"
	"chat_relay/internal/middleware"
	"chat_relay/internal/service"
	"chat_relay/pkg/logger"
)

// NewRouter wires every route. All of them, static uploads included, run
// behind the session middleware.
func NewRouter(handlers *Handlers, services *service.Services, cfg *config.Config, log logger.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	router.GET("/health", handlers.Health.Check)

	chat := router.Group("")
	chat.Use(middleware.SessionMiddleware(services.Session, cfg.Session, log))
	{
		chat.GET("/", handlers.Page.Index)
		chat.POST("/send_message", handlers.Chat.SendMessage)
		chat.POST("/upload_file", handlers.Upload.Upload)
		chat.GET("/get_messages", handlers.Chat.GetMessages)
		chat.GET("/uploads/:filename", handlers.Upload.Serve)
	}

	return router
}
