package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nikgav1/calorie-tracking-app/config"
	"github.com/nikgav1/calorie-tracking-app/controllers"
	"github.com/nikgav1/calorie-tracking-app/routes"
	"github.com/nikgav1/calorie-tracking-app/services"
	"github.com/nikgav1/calorie-tracking-app/utils"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := config.ConnectPostgres(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}

	mongoClient, mongoDB, err := config.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	store := services.NewLedgerStore(mongoDB)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ledger index setup failed")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatal().Err(err).Msg("aws config load failed")
	}

	mailer := utils.NewMailer(awsCfg, cfg.SESEmail)
	uploader := utils.NewS3Uploader(awsCfg, cfg.S3Bucket)

	users := services.NewUserService(pg)
	auth := services.NewAuthService(pg, mailer, cfg.JWTSecret)
	ledger := services.NewLedgerService(store, users)
	vision := services.NewVisionService(awsCfg, uploader, cfg.EdamamAppID, cfg.EdamamAppKey)
	hub := services.NewRealtimeHub()

	router := routes.SetupRouter(routes.Deps{
		DB:        pg,
		JWTSecret: cfg.JWTSecret,
		Auth:      controllers.NewAuthController(auth),
		Users:     controllers.NewUserController(users),
		FoodLog:   controllers.NewFoodLogController(ledger, hub),
		Analysis:  controllers.NewAnalysisController(vision),
		Realtime:  controllers.NewRealtimeController(hub),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
