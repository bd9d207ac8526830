package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mdarmaan6204/nutri-tracker/config"
	"github.com/mdarmaan6204/nutri-tracker/controllers"
	"github.com/mdarmaan6204/nutri-tracker/repository/postgres"
	"github.com/mdarmaan6204/nutri-tracker/routes"
	"github.com/mdarmaan6204/nutri-tracker/services"
	"github.com/mdarmaan6204/nutri-tracker/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDatabase(cfg, logger)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	mealRepo := postgres.NewMealRepository(db)

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	auth := services.NewAuthService(userRepo, tokens)
	meals := services.NewMealService(mealRepo)

	predictor, err := buildPredictor(ctx, cfg)
	if err != nil {
		logger.Fatalf("setup predictor: %v", err)
	}

	var uploader *utils.S3Uploader
	if cfg.AWS.Bucket != "" {
		uploader, err = utils.NewS3Uploader(ctx, cfg.AWS.Region, cfg.AWS.Bucket)
		if err != nil {
			logger.Fatalf("setup s3 uploader: %v", err)
		}
		logger.Infof("archiving meal photos to s3 bucket %s", cfg.AWS.Bucket)
	}

	router := routes.SetupRouter(routes.Deps{
		Cfg:       cfg,
		DB:        db,
		Logger:    logger,
		Tokens:    tokens,
		Auth:      controllers.NewAuthController(auth, tokens, cfg.Production()),
		Meals:     controllers.NewMealController(meals, predictor, uploader, cfg.UploadDir, logger, cfg.Production()),
		Summaries: controllers.NewSummaryController(meals, cfg.Production()),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on :%s (%s)", cfg.Port, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
}

func buildPredictor(ctx context.Context, cfg config.Config) (services.Predictor, error) {
	if cfg.Predict.Provider == config.PredictProviderRekognition {
		return services.NewRekognitionPredictor(ctx, cfg.AWS.Region)
	}
	return services.NewHTTPPredictor(
		cfg.Predict.URL,
		cfg.Predict.Timeout,
		cfg.Predict.Retries,
		cfg.Predict.RetryDelay,
	), nil
}
