// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"time"

	"gateway-auth-service/internal/config"
	"gateway-auth-service/internal/db"
	adminHandler "gateway-auth-service/internal/handlers/admin"
	authHandler "gateway-auth-service/internal/handlers/auth"
	pagesHandler "gateway-auth-service/internal/handlers/pages"
	"gateway-auth-service/internal/middleware"
	"gateway-auth-service/internal/oauth"
	"gateway-auth-service/internal/pkg/ratelimit"
	"gateway-auth-service/internal/pkg/token"
	"gateway-auth-service/internal/pkg/validate"
	"gateway-auth-service/internal/repository/postgres"
	authUsecase "gateway-auth-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	authService *authUsecase.Service
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	if s.cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	// ----- PostgreSQL -----
	if err := db.RunMigrations(s.cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- Session tokens -----
	secret := []byte(s.cfg.SessionSecret)
	issuer := token.NewIssuer(secret, s.cfg.TokenIssuer, s.cfg.TokenAudience, s.cfg.SessionTTL)
	verifier := token.NewVerifier(secret, s.cfg.TokenIssuer, s.cfg.TokenAudience)

	// ----- Repositories -----
	identityRepo := postgres.NewIdentityRepository(pool)
	accountRepo := postgres.NewLinkedAccountRepository(pool)
	tokenRepo := postgres.NewVerificationTokenRepository(pool)

	// ----- Providers -----
	google := oauth.NewGoogle(oauth.GoogleConfig{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURL,
	})
	providers := map[oauth.ProviderName]oauth.Provider{
		oauth.ProviderGoogle: google,
	}

	// ----- Services -----
	authService := authUsecase.NewService(
		identityRepo,
		accountRepo,
		tokenRepo,
		issuer,
		validate.New(),
		ratelimit.NewLimiter(redisClient),
		oauth.NewStateStore(redisClient),
		providers,
		logger,
	)
	s.authService = authService

	// ----- Bootstrap admin -----
	if err := s.initializeAdmin(); err != nil {
		// Startup continues; the instance just has no local admin yet.
		logger.Error("failed to initialize bootstrap admin", zap.Error(err))
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	adminHandlerInst := adminHandler.NewAdminHandler(authService, logger)
	pagesHandlerInst := pagesHandler.NewPagesHandler()

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigin),
		authMiddleware.ReadClaims(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:    authHandlerInst,
		AdminHandler:   adminHandlerInst,
		PagesHandler:   pagesHandlerInst,
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}

// initializeAdmin creates the bootstrap admin when credentials are supplied
// via environment.
func (s *Server) initializeAdmin() error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		s.logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping bootstrap admin")
		return nil
	}
	if len(s.cfg.AdminPassword) < 8 {
		return fmt.Errorf("bootstrap admin password must be at least 8 characters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.authService.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName)
}
