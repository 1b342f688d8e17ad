package bootstrap

import (
	"context"
	"log"

	"hcp-interaction-be/internal/config"
	"hcp-interaction-be/internal/controller"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/internal/pkg/logger"
	"hcp-interaction-be/internal/repository/memory"
	"hcp-interaction-be/internal/repository/unitofwork"
	"hcp-interaction-be/internal/service"
	"hcp-interaction-be/pkg/assistant"
	"hcp-interaction-be/pkg/persistence"
	"hcp-interaction-be/pkg/sessionkv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	InteractionController controller.IInteractionController
	LogController         controller.ILogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Redis holds the chat session id per client. When Redis is down the
	// service still works, sessions just stop surviving restarts.
	var sessions sessionkv.Store
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
		sessions = sessionkv.NewMemoryStore()
	} else {
		sessions = sessionkv.NewRedisStore(rdb, cfg.App.SessionTTL)
	}

	workspaceRepo := memory.NewWorkspaceRepository()

	assistantClient := assistant.NewClient(cfg.Assistant.BaseURL, cfg.Assistant.Timeout)
	persistenceClient := persistence.NewClient(cfg.Persistence.BaseURL, cfg.Persistence.Timeout)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.AuditTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.AuditTopic,
		uowFactory,
		sysLogger,
	)

	interactionService := service.NewInteractionService(
		workspaceRepo,
		sessions,
		assistantClient,
		persistenceClient,
		mapper.NewFieldMapper(),
		publisherService,
		sysLogger,
	)
	logService := service.NewLogService(uowFactory, sysLogger)

	// 5. Controllers
	interactionController := controller.NewInteractionController(interactionService)
	logController := controller.NewLogController(logService)

	return &Container{
		InteractionController: interactionController,
		LogController:         logController,
		ConsumerService:       consumerService,
		Logger:                sysLogger,
	}
}
