package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/app"
	"github.com/meetsync/meetsync/internal/config"
	"github.com/meetsync/meetsync/internal/controller"
	"github.com/meetsync/meetsync/internal/meetlink"
	"github.com/meetsync/meetsync/internal/notify"
	"github.com/meetsync/meetsync/internal/repository/postgres"
	"github.com/meetsync/meetsync/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := postgres.NewUserRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)

	var emailSender *notify.EmailSender
	if cfg.SendgridAPIKey != "" {
		emailSender = notify.NewEmailSender(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName)
	}
	var slack *notify.SlackWebhook
	if cfg.SlackWebhookURL != "" {
		slack = notify.NewSlackWebhook(cfg.SlackWebhookURL)
	}
	var telegram *notify.TelegramAnnouncer
	if cfg.TelegramToken != "" {
		telegram, err = notify.NewTelegramAnnouncer(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatal("Failed to create telegram announcer", zap.Error(err))
		}
	}
	notifier := notify.NewNotifier(emailSender, slack, telegram, logger)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	userService := service.NewUserService(userRepo, logger)
	meetingService := service.NewMeetingService(meetingRepo, userRepo, notifier, logger)
	groupService := service.NewGroupService(groupRepo, logger)
	reminderService := service.NewReminderService(meetingRepo, notifier, cfg.ReminderLead, logger)

	scheduler := app.NewScheduler(reminderService, logger)
	if err := scheduler.Start(ctx); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	router := controller.NewRouter(controller.Deps{
		Auth:     authService,
		Users:    userService,
		Meetings: meetingService,
		Groups:   groupService,
		Teams:    meetlink.NewTeamsClient(cfg.MicrosoftClientID, cfg.MicrosoftClientSecret, cfg.MicrosoftRedirectURI),
		Logger:   logger,
	})

	handler := handlers.RecoveryHandler()(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
