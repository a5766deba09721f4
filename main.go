package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-restaurant-booking/broker"
	"go-restaurant-booking/config"
	controller "go-restaurant-booking/controllers"
	"go-restaurant-booking/database"
	"go-restaurant-booking/helpers"
	"go-restaurant-booking/jobs"
	"go-restaurant-booking/logging"
	"go-restaurant-booking/middleware"
	"go-restaurant-booking/notification"
	"go-restaurant-booking/realtime"
	"go-restaurant-booking/repository"
	"go-restaurant-booking/repository/memory"
	"go-restaurant-booking/routes"
	"go-restaurant-booking/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var mailer notification.Mailer = notification.LogMailer{Logger: logger}
	if cfg.SMTPHost != "" {
		mailer = notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	dispatcher := notification.NewDispatcher(mailer, cfg.MailFrom, cfg.ScanBaseURL)

	hub := realtime.NewHub(logger, cfg.CORSOrigins)
	defer hub.Close()
	events := broker.Fanout{hub}
	if cfg.AMQPURL != "" {
		publisher, err := broker.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		events = append(events, publisher)
		logger.Info("publishing booking events to rabbitmq", "exchange", cfg.AMQPExchange)
	}

	tokens := helpers.NewTokenHelper(cfg.SecretKey, cfg.TokenTTL)
	svc := services.New(store, tokens, services.Options{
		Confirmations: dispatcher,
		Events:        events,
		Logger:        logger,
	})

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.AccessLog(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Register(router, controller.New(svc, dispatcher, hub, logger), tokens)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Page not found"})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sweeper := jobs.NewExpirySweeper(store.Orders, logger, cfg.PaymentTTL)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sweeper.Run(ctx, cfg.SweepSchedule)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repository.Store, func(), error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}
	client, err := database.Connect(ctx, cfg.MongoURI, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	if err := database.EnsureIndexes(ctx, client.Database(cfg.Database)); err != nil {
		closeFn()
		return nil, nil, err
	}
	return repository.NewMongoStore(client, cfg.Database), closeFn, nil
}
