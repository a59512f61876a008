package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderly/config"
	"wanderly/cron"
	"wanderly/handlers"
	"wanderly/middleware"
	"wanderly/routes"
	"wanderly/services/assistant"
	"wanderly/services/booking"
	"wanderly/services/dispatch"
	"wanderly/services/itinerary"
	"wanderly/services/storage"
	"wanderly/services/tasks"
	"wanderly/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cacheClient := utils.GetCacheClient()
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, cacheClient, 60*time.Second)

	preset, err := itinerary.ParsePreset(config.AppConfig.BalancePreset)
	if err != nil {
		logger.Fatal("main: invalid balance preset", zap.Error(err))
	}

	// services.
	ds := config.AppConfig.Dispatch()
	backend := dispatch.NewHTTPBackend(config.AppConfig.RecommendationBackendURL, ds.Timeout, logger)
	dispatcher := dispatch.NewDispatcher(backend, logger,
		dispatch.WithDefaultMaxRetries(ds.MaxRetries),
		dispatch.WithBackoff(ds.Backoff))

	bs := config.AppConfig.Booking()
	simulator := booking.NewSimulator(booking.Policy{
		FullyBookedRate: bs.FullyBookedRate,
		TimeoutRate:     bs.TimeoutRate,
		MaxPartySize:    bs.MaxPartySize,
		Latency:         bs.Latency,
	}, booking.NewSeededSource(bs.Seed), logger)

	userCache := storage.NewRedisUserCache(cacheClient, config.AppConfig.CacheTTL())
	svcOpts := []assistant.Option{
		assistant.WithLogger(logger),
		assistant.WithUserCache(userCache),
		assistant.WithRetryPolicy(true, ds.MaxRetries),
	}

	var reminderWorker *asynq.Server
	if config.AppConfig.RemindersEnabled {
		reminderClient := asynq.NewClient(cron.ReminderRedisOpt())
		defer reminderClient.Close()
		scheduler := tasks.NewAsynqReminderScheduler(reminderClient, logger)
		svcOpts = append(svcOpts, assistant.WithReminders(scheduler, config.AppConfig.ReminderLead()))
		reminderWorker = cron.InitReminderWorker(logger)
	}

	assistantSvc := assistant.NewService(dispatcher, simulator, svcOpts...)
	scorer := itinerary.NewScorer(preset, logger)
	generator := itinerary.NewHTTPGenerator(config.AppConfig.ItineraryBackendURL, ds.Timeout, logger)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewChatHandler(assistantSvc),
		handlers.NewBookingHandler(assistantSvc),
		handlers.NewItineraryHandler(scorer, generator),
		handlers.NewPreferencesHandler(assistantSvc),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
