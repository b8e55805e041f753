package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"ecommerce_service/config"
	"ecommerce_service/internal/auth"
	"ecommerce_service/internal/blobstore"
	"ecommerce_service/internal/delivery"
	grpcHandler "ecommerce_service/internal/delivery/grpc"
	"ecommerce_service/internal/domain"
	"ecommerce_service/internal/middleware"
	"ecommerce_service/internal/repository"
	"ecommerce_service/internal/usecase"
	"ecommerce_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newServeCommand(logger *logrus.Logger) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), logger, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the database schema before serving")
	return cmd
}

func runServe(ctx context.Context, logger *logrus.Logger, migrate bool) error {
	cfg, err := config.LoadConfig(logger)
	if err != nil {
		return err
	}
	configureLogger(logger, cfg.LogLevel, cfg.LogFormat)
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	decimal.MarshalJSONWithoutQuotes = true
	logger.Info("Starting E-commerce Service...")

	conn, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()
	if migrate {
		if err := db.Migrate(ctx, conn, logger); err != nil {
			return err
		}
	}

	images, err := blobstore.NewCloudinaryStore(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret, logger)
	if err != nil {
		return fmt.Errorf("failed to configure image store: %w", err)
	}
	tokens := auth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	router := newRouter(conn, images, tokens, delivery.NewUploadPolicy(cfg.MaxUploadBytes), logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.GrpcPort, err)
	}
	healthServer := grpcHandler.NewHealthServer(logger)

	serveErr := make(chan error, 2)
	go func() {
		logger.Infof("gRPC health server listening on %s", cfg.GrpcPort)
		serveErr <- healthServer.Serve(lis)
	}()
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()
	healthServer.SetServing(true)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Warn("Shutdown signal received...")
	case runErr = <-serveErr:
		logger.Errorf("Server stopped unexpectedly: %v", runErr)
	}

	healthServer.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown failed: %v", err)
	}
	healthServer.GracefulStop()

	logger.Info("E-commerce Service shut down gracefully.")
	return runErr
}

func newRouter(conn *sql.DB, images domain.ImageStore, tokens domain.TokenIssuer, uploads delivery.UploadPolicy, logger *logrus.Logger) *gin.Engine {
	categoryRepo := repository.NewPostgresCategoryRepository(conn, logger)
	subCategoryRepo := repository.NewPostgresSubCategoryRepository(conn, logger)
	brandRepo := repository.NewPostgresBrandRepository(conn, logger)
	variantTypeRepo := repository.NewPostgresVariantTypeRepository(conn, logger)
	variantRepo := repository.NewPostgresVariantRepository(conn, logger)
	productRepo := repository.NewPostgresProductRepository(conn, logger)
	posterRepo := repository.NewPostgresPosterRepository(conn, logger)
	userRepo := repository.NewPostgresUserRepository(conn, logger)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))
	router.MaxMultipartMemory = uploads.MaxBytes * int64(domain.MaxImageSlot+1)

	router.GET("/health", func(c *gin.Context) {
		if err := conn.PingContext(c.Request.Context()); err != nil {
			logger.Errorf("Health check failed: %v", err)
			delivery.ErrorResponse(c, http.StatusServiceUnavailable, "Database is unreachable.")
			return
		}
		delivery.SuccessResponse(c, http.StatusOK, "OK", nil)
	})

	delivery.NewCategoryHandler(
		usecase.NewCategoryUseCase(categoryRepo, subCategoryRepo, productRepo, images, logger), uploads, logger,
	).RegisterRoutes(router)
	delivery.NewSubCategoryHandler(
		usecase.NewSubCategoryUseCase(subCategoryRepo, brandRepo, productRepo, logger), logger,
	).RegisterRoutes(router)
	delivery.NewBrandHandler(
		usecase.NewBrandUseCase(brandRepo, productRepo, logger), logger,
	).RegisterRoutes(router)
	delivery.NewVariantTypeHandler(
		usecase.NewVariantTypeUseCase(variantTypeRepo, variantRepo, productRepo, logger), logger,
	).RegisterRoutes(router)
	delivery.NewVariantHandler(
		usecase.NewVariantUseCase(variantRepo, productRepo, logger), logger,
	).RegisterRoutes(router)
	delivery.NewProductHandler(
		usecase.NewProductUseCase(productRepo, images, logger), uploads, logger,
	).RegisterRoutes(router)
	delivery.NewPosterHandler(
		usecase.NewPosterUseCase(posterRepo, images, logger), uploads, logger,
	).RegisterRoutes(router)
	delivery.NewUserHandler(
		usecase.NewUserUseCase(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), tokens, logger), logger,
	).RegisterRoutes(router, middleware.AuthMiddleware(tokens, logger))

	return router
}
