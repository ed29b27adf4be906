package bootstrap

import (
	"context"
	"log"
	"time"

	"retail-storefront/internal/config"
	"retail-storefront/internal/controller"
	"retail-storefront/internal/pkg/logger"
	"retail-storefront/internal/repository/contract"
	"retail-storefront/internal/repository/memory"
	"retail-storefront/internal/repository/redisrepo"
	"retail-storefront/internal/service"
	"retail-storefront/pkg/retail"

	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	StorefrontController controller.IStorefrontController
	CartController       controller.ICartController
	ChatController       controller.IChatController
	EventController      controller.IEventController
	OAuthController      controller.IOAuthController

	// Shared infrastructure the server mounts directly
	SessionRepository contract.SessionRepository
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Catalog service client
	retailClient, err := retail.New(context.Background(), retail.Config{
		ProjectId: cfg.Retail.ProjectId,
		Location:  cfg.Retail.Location,
		CatalogId: cfg.Retail.CatalogId,
		Branch:    cfg.Retail.Branch,
		Endpoint:  cfg.Retail.Endpoint,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize catalog service client: %v", err)
	}
	log.Printf("[INFO] Catalog client ready, project %s catalog %s branch %s",
		cfg.Retail.ProjectId, cfg.Retail.CatalogId, cfg.Retail.Branch)

	// 3. Session storage: Redis when configured, in-process memory otherwise.
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessionRepo := newSessionRepository(cfg.App.RedisURL, sessionTTL)

	// 4. Services
	eventService := service.NewEventService(retailClient, sysLogger)
	catalogService := service.NewCatalogService(
		retailClient,
		eventService,
		cfg.Retail.SearchServingConfig,
		cfg.Retail.RecommendationServingConfig,
	)
	cartService := service.NewCartService(retailClient, eventService)
	chatService := service.NewChatService(retailClient, cfg.Retail.SearchServingConfig)
	oauthService := service.NewOAuthService(cfg.OAuth)

	// 5. Controllers
	return &Container{
		StorefrontController: controller.NewStorefrontController(catalogService),
		CartController:       controller.NewCartController(cartService),
		ChatController:       controller.NewChatController(chatService),
		EventController:      controller.NewEventController(eventService),
		OAuthController:      controller.NewOAuthController(oauthService),

		SessionRepository: sessionRepo,
	}
}

// newSessionRepository prefers Redis so sessions survive restarts, but a
// storefront without Redis still runs: any connection trouble logs a warning
// and falls back to process memory.
func newSessionRepository(redisURL string, ttl time.Duration) contract.SessionRepository {
	if redisURL == "" {
		log.Printf("[INFO] Using in-memory session storage")
		return memory.NewSessionRepository(ttl)
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Falling back to in-memory sessions", err)
		return memory.NewSessionRepository(ttl)
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
		return memory.NewSessionRepository(ttl)
	}

	log.Printf("[INFO] Using Redis session storage at %s", opt.Addr)
	return redisrepo.NewSessionRepository(rdb, ttl)
}
