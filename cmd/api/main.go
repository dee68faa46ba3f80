package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizdirectory/cmd/internal/config"
	"bizdirectory/cmd/internal/domain/database"
	"bizdirectory/cmd/internal/domain/database/repository"
	"bizdirectory/cmd/internal/http/handler"
	mw "bizdirectory/cmd/internal/http/middleware"
	"bizdirectory/cmd/internal/infrastructure/aws/mailer"
	"bizdirectory/cmd/internal/infrastructure/aws/storage"
	"bizdirectory/cmd/internal/infrastructure/aws/websocket"
	"bizdirectory/cmd/internal/infrastructure/ratelimit"
	"bizdirectory/cmd/internal/service"
	"bizdirectory/cmd/internal/service/jobs"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/uid"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.Log.GommonLevel())

	db, err := database.Init(database.Options{
		Driver:     cfg.Database.Driver,
		DSN:        cfg.Database.DSN,
		SQLitePath: cfg.Database.SQLitePath,
		LogQueries: cfg.Database.LogQueries,
	})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	uid.Init(cfg.MachineID)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	featuredRepo := repository.NewFeaturedRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	connRepo := repository.NewConnectionRepository(db)

	// AWS integrations are optional outside production
	var gateway websocket.GatewayClient = websocket.NoopGateway{}
	if cfg.AWS.GatewayEndpoint != "" {
		gw, err := websocket.NewAWSGatewayClient(ctx, cfg.AWS.GatewayEndpoint, cfg.AWS.Region)
		if err != nil {
			log.Fatalf("failed to init websocket gateway: %v", err)
		}
		gateway = gw
	}

	var mail mailer.Mailer
	if cfg.AWS.SESSender != "" {
		m, err := mailer.NewSESMailer(ctx, cfg.AWS.Region, cfg.AWS.SESSender)
		if err != nil {
			log.Fatalf("failed to init SES mailer: %v", err)
		}
		mail = m
	}

	var s3Client storage.S3Client
	if cfg.AWS.S3Bucket != "" {
		s3Client, err = storage.NewStorageClient(ctx, cfg.AWS.Region, cfg.AWS.S3Bucket)
		if err != nil {
			log.Fatalf("failed to init S3 client: %v", err)
		}
	} else {
		log.Warn("no S3 bucket configured, evidence uploads are disabled")
	}

	// Services
	auditService := service.NewAuditService(auditRepo)
	wsService := service.NewWebSocketService(connRepo, gateway)
	notifier := service.NewNotificationService(wsService, mail, userRepo)

	claimService := service.NewClaimService(claimRepo, businessRepo, s3Client, auditService, notifier)
	reviewService := service.NewReviewService(reviewRepo, businessRepo, auditService)
	leadService := service.NewLeadService(leadRepo, businessRepo, userRepo, notifier)
	featuredService := service.NewFeaturedService(featuredRepo, businessRepo, auditService, notifier)
	businessService := service.NewBusinessService(businessRepo, categoryRepo, auditService)

	// Handlers
	businessRoutes := handler.NewBusinessDefault(businessService)
	claimRoutes := handler.NewClaimDefault(claimService)
	reviewRoutes := handler.NewReviewDefault(reviewService)
	leadRoutes := handler.NewLeadDefault(leadService)
	featuredRoutes := handler.NewFeaturedDefault(featuredService)
	wsRoutes := handler.NewWSDefault(wsService)

	verifier := utils.NewTokenVerifier(cfg.Auth.JWTSecret)
	auth := mw.NewAuthMiddleware(&mw.AuthMiddlewareConfig{Verifier: verifier, UserRepo: userRepo})
	optionalAuth := mw.NewAuthMiddleware(&mw.AuthMiddlewareConfig{Verifier: verifier, UserRepo: userRepo, Optional: true})
	limit := publicLimiter(ctx, cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// Public
	e.POST("/api/businesses", businessRoutes.SubmitBusiness, optionalAuth, limit("submit_business"))
	e.GET("/api/businesses/:id", businessRoutes.GetBusiness, optionalAuth)
	e.GET("/api/businesses/:id/reviews", reviewRoutes.GetBusinessReviews)
	e.POST("/api/businesses/:id/reviews", reviewRoutes.CreatePublicReview, limit("public_review"))
	e.POST("/api/businesses/:id/leads", leadRoutes.CreateLead, limit("create_lead"))

	// Authenticated
	api := e.Group("/api", auth)
	api.POST("/claims", claimRoutes.CreateClaim)
	api.GET("/claims/@me", claimRoutes.GetSelfClaims)
	api.POST("/claims/:id/evidence", claimRoutes.AttachEvidence)
	api.POST("/reviews", reviewRoutes.CreateUserReview)
	api.GET("/leads", leadRoutes.GetLeads)
	api.GET("/leads/:id", leadRoutes.GetLead)
	api.PATCH("/leads/:id", leadRoutes.UpdateLeadStatus)
	api.POST("/featured-requests", featuredRoutes.CreateRequest)

	// API Gateway websocket integration
	api.POST("/ws/connect", wsRoutes.HandleConnect)
	e.POST("/api/ws/disconnect", wsRoutes.HandleDisconnect)
	e.POST("/api/ws/message", wsRoutes.HandleMessage)

	// Moderation
	admin := e.Group("/api/admin", auth, mw.AdminOnly())
	admin.POST("/businesses", businessRoutes.CreateBusiness)
	admin.POST("/businesses/bulk-delete", businessRoutes.BulkDelete)
	admin.PATCH("/businesses/:id/status", businessRoutes.ModerateBusiness)
	admin.GET("/claims", claimRoutes.GetClaims)
	admin.GET("/claims/:id", claimRoutes.GetClaim)
	admin.PATCH("/claims/:id/status", claimRoutes.UpdateClaimStatus)
	admin.POST("/claims/:id/revert", claimRoutes.RevertClaim)
	admin.POST("/reviews/:id/approve", reviewRoutes.ApproveReview)
	admin.POST("/reviews/:id/reject", reviewRoutes.RejectReview)
	admin.DELETE("/reviews/:id", reviewRoutes.DeleteReview)
	admin.POST("/reviews/mass-action", reviewRoutes.MassAction)
	admin.GET("/featured-requests", featuredRoutes.GetRequests)
	admin.PATCH("/featured-requests/:id/status", featuredRoutes.UpdateStatus)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go jobs.NewConnectionCleaner(wsService).Start(ctx)
	go jobs.NewRatingReconciler(businessRepo, reviewService, cfg.Jobs.ReconcileInterval).Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

// publicLimiter prefers the shared Redis counter and falls back to a
// per-process limiter when Redis is not configured or unreachable.
func publicLimiter(ctx context.Context, cfg *config.Config) func(route string) echo.MiddlewareFunc {
	if cfg.Redis.Addr != "" {
		client := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		limiter := ratelimit.New(client, ratelimit.Options{
			Limit:  int64(cfg.RateLimit.Limit),
			Window: cfg.RateLimit.Window,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := limiter.Ping(pingCtx)
		if err == nil {
			return func(route string) echo.MiddlewareFunc {
				return mw.NewRateLimit(route, limiter)
			}
		}
		log.Warnf("redis unavailable, using in-process rate limiting: %v", err)
	}

	return func(route string) echo.MiddlewareFunc {
		return mw.NewMemoryRateLimit(route, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
