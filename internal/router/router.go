package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"assembly-line-api/internal/authz"
	"assembly-line-api/internal/client"
	"assembly-line-api/internal/config"
	"assembly-line-api/internal/handler"
	"assembly-line-api/internal/metrics"
	"assembly-line-api/internal/middleware"
	"assembly-line-api/internal/repository"
	"assembly-line-api/internal/scheduling"
	"assembly-line-api/internal/service"
	"assembly-line-api/internal/ws"
)

// Setup wires repositories, services and handlers into the HTTP engine
func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, hub *ws.Hub, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// Repositories
	cardRepo := repository.NewCardRepository(db)
	assemblerRepo := repository.NewAssemblerRepository(db)
	andonRepo := repository.NewAndonRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)

	// SMS gateway; no URL configured means alerts stay on the terminals
	var smsClient client.SMSClient
	if cfg.Notify.GatewayURL != "" {
		smsClient = client.NewSMSClient(cfg.Notify.GatewayURL, cfg.Notify.APIKey, cfg.Notify.Timeout, logger, m)
	} else {
		smsClient = client.NewNoOpSMSClient()
	}

	policy := scheduling.Policy{
		MinRawHours:            cfg.Scheduling.MinRawHours,
		MinActualDurationHours: cfg.Scheduling.MinActualDurationHours,
	}

	// Services
	cardService := service.NewCardService(cardRepo, policy, hub, m, logger)
	assemblerService := service.NewAssemblerService(assemblerRepo, logger)
	andonService := service.NewAndonService(andonRepo, cardRepo, smsClient, redisClient, cfg.Notify, hub, m, logger)
	ideaService := service.NewIdeaService(ideaRepo, hub, logger)

	// Handlers
	cardHandler := handler.NewCardHandler(cardService)
	assemblerHandler := handler.NewAssemblerHandler(assemblerService)
	andonHandler := handler.NewAndonHandler(andonService)
	ideaHandler := handler.NewIdeaHandler(ideaService, hub)
	healthHandler := handler.NewHealthHandler(redisClient)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.Server.BasePath)
	api.Use(middleware.Auth(cfg.JWT.Secret))
	{
		api.GET("/ws", ideaHandler.ServeWS)

		cards := api.Group("/cards")
		{
			cards.GET("", middleware.RequireCapability(authz.CapViewCards), cardHandler.ListCards)
			cards.POST("", middleware.RequireCapability(authz.CapManageCards), cardHandler.CreateCard)
			cards.POST("/validate-dependencies", middleware.RequireCapability(authz.CapViewCards), cardHandler.ValidateDependencies)
			cards.POST("/reset-status", middleware.RequireCapability(authz.CapBulkOperations), cardHandler.ResetStatuses)
			cards.DELETE("", middleware.RequireCapability(authz.CapBulkOperations), cardHandler.DeleteAllCards)
			cards.GET("/number/:cardNumber", middleware.RequireCapability(authz.CapViewCards), cardHandler.GetCardByNumber)
			cards.GET("/:id", middleware.RequireCapability(authz.CapViewCards), cardHandler.GetCard)
			cards.PATCH("/:id", middleware.RequireCapability(authz.CapManageCards), cardHandler.UpdateCard)
			cards.DELETE("/:id", middleware.RequireCapability(authz.CapManageCards), cardHandler.DeleteCard)
			cards.POST("/:id/transition", middleware.RequireCapability(authz.CapTransitionCards), cardHandler.TransitionCard)
			cards.POST("/:id/position", middleware.RequireCapability(authz.CapManageCards), cardHandler.MoveCard)
		}

		assemblers := api.Group("/assemblers")
		{
			assemblers.GET("", middleware.RequireCapability(authz.CapViewCards), assemblerHandler.ListAssemblers)
			assemblers.POST("", middleware.RequireCapability(authz.CapManageAssemblers), assemblerHandler.CreateAssembler)
			assemblers.GET("/:id", middleware.RequireCapability(authz.CapViewCards), assemblerHandler.GetAssembler)
			assemblers.PATCH("/:id", middleware.RequireCapability(authz.CapManageAssemblers), assemblerHandler.UpdateAssembler)
			assemblers.DELETE("/:id", middleware.RequireCapability(authz.CapManageAssemblers), assemblerHandler.DeleteAssembler)
		}

		andon := api.Group("/andon")
		{
			andon.GET("", middleware.RequireCapability(authz.CapViewCards), andonHandler.ListAndons)
			andon.POST("", middleware.RequireCapability(authz.CapRaiseAndon), andonHandler.RaiseAndon)
			andon.GET("/:id", middleware.RequireCapability(authz.CapViewCards), andonHandler.GetAndon)
			andon.PATCH("/:id/status", middleware.RequireCapability(authz.CapResolveAndon), andonHandler.UpdateAndonStatus)
		}

		ideas := api.Group("/ideas")
		{
			ideas.GET("/threads", middleware.RequireCapability(authz.CapViewCards), ideaHandler.ListThreads)
			ideas.POST("/threads", middleware.RequireCapability(authz.CapPostIdeas), ideaHandler.CreateThread)
			ideas.GET("/threads/:id", middleware.RequireCapability(authz.CapViewCards), ideaHandler.GetThread)
			ideas.GET("/threads/:id/messages", middleware.RequireCapability(authz.CapViewCards), ideaHandler.ListMessages)
			ideas.POST("/threads/:id/messages", middleware.RequireCapability(authz.CapPostIdeas), ideaHandler.PostMessage)
		}
	}

	return r
}
