package bootstrap

import (
	"log"

	"bookgpt-be/internal/config"
	"bookgpt-be/internal/controller"
	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/internal/repository/contract"
	"bookgpt-be/internal/repository/implementation"
	"bookgpt-be/internal/repository/memory"
	"bookgpt-be/internal/repository/redisstore"
	"bookgpt-be/internal/service"
	"bookgpt-be/pkg/books"
	"bookgpt-be/pkg/database"
	"bookgpt-be/pkg/llm"
	"bookgpt-be/pkg/llm/factory"
	"bookgpt-be/pkg/nlp"
	"bookgpt-be/pkg/recommend"

	pktNats "bookgpt-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Background Services (Exposed for main.go to run)
	AnalyticsService service.IAnalyticsService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Invalid REDIS_URL, falling back to in-memory sessions: %v", err)
			sessionRepo = memory.NewSessionRepository()
		} else {
			sessionRepo = redisstore.NewSessionRepository(redis.NewClient(opts))
			log.Printf("[INFO] Using Session Backend: REDIS")
		}
	} else {
		sessionRepo = memory.NewSessionRepository()
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	// 3. LLM Provider
	// Missing OpenAI credentials leave the provider nil; the generator
	// then reports every call as unconfigured instead of failing at boot.
	var llmProvider llm.LLMProvider
	if cfg.Ai.LLMProvider == "openai" && cfg.Keys.OpenAI == "" {
		log.Printf("[WARN] OPENAI_API_KEY not set, recommendations disabled")
	} else {
		provider, err := factory.NewLLMProvider(
			cfg.Ai.LLMProvider,
			cfg.Ai.LLMModel,
			cfg.Keys.OpenAI,
			cfg.Ai.OllamaBaseURL,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
		}
		llmProvider = provider
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	generator := recommend.NewGenerator(llmProvider, sysLogger)

	// 4. Book Catalog
	booksClient := books.NewClient(cfg.Keys.GoogleBooks, sysLogger)
	resolver := books.NewResolver(booksClient, cfg.Session.AffiliateTag)

	// 5. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	publisherService := service.NewPublisherService(pubSub, natsPub, sysLogger)

	// 6. Analytics Storage (optional)
	var analyticsRepo *implementation.AnalyticsRepository
	var analyticsService service.IAnalyticsService
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Printf("[WARN] Failed to connect to analytics database: %v", err)
		} else {
			analyticsRepo = implementation.NewAnalyticsRepository(db)
			if err := analyticsRepo.Migrate(); err != nil {
				log.Printf("[WARN] Failed to migrate analytics schema: %v", err)
			}
			analyticsService = service.NewAnalyticsService(pubSub, service.AnalyticsTopic, analyticsRepo, sysLogger)
		}
	}

	// 7. Services
	chatService := service.NewChatService(
		sessionRepo,
		nlp.NewEvaluator(),
		generator,
		resolver,
		publisherService,
		sysLogger,
		cfg.Session.MaxBooks,
	)

	adminService := service.NewAdminService(
		cfg.Admin.Email,
		cfg.Admin.PasswordHash,
		cfg.Admin.JWTSecret,
		analyticsRepo,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		ChatController:   controller.NewChatController(chatService),
		AdminController:  controller.NewAdminController(adminService),
		AnalyticsService: analyticsService,
		Logger:           sysLogger,
	}
}
