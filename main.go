package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotboard/config"
	"slotboard/cron"
	"slotboard/database"
	scheduleRepo "slotboard/database/repository/schedule"
	"slotboard/handlers"
	"slotboard/routes"
	"slotboard/services/classify"
	"slotboard/services/ingest"
	"slotboard/services/judgment"
	"slotboard/services/mail"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"slotboard/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Schedule store. The memory backend serves single-node deployments
	// and tests; Mongo survives restarts.
	var repo scheduleRepo.ScheduleRepository
	switch config.AppConfig.StoreBackend {
	case "mongo":
		database.InitDB()
		repo = scheduleRepo.NewMongoScheduleRepo()
	default:
		repo = scheduleRepo.NewMemoryScheduleRepo()
	}

	// Judgment log. Redis keeps the trail across restarts; without a
	// Redis address the in-process log still bounds itself the same way.
	var judgmentLog judgment.Log
	var redisClients []*redis.Client
	if config.AppConfig.RedisAddr != "" {
		utils.InitJudgmentCache()
		client := utils.GetJudgmentCacheClient()
		judgmentLog = judgment.NewRedisLog(client)
		redisClients = append(redisClients, client)
	} else {
		judgmentLog = judgment.NewMemoryLog()
	}

	engine := &ingest.Engine{Repo: repo, Judgment: judgmentLog}
	classifier := classify.New(classify.DefaultPolicy())

	// Gmail connector is optional. Without credentials the mail sync
	// endpoints report unavailable and everything else still runs.
	var mailSvc *ingest.MailSyncService
	if config.AppConfig.GmailCredentialsJSON != "" {
		connector, err := mail.NewGmailConnector(context.Background())
		if err != nil {
			logger.Sugar().Warnf("main: gmail connector unavailable: %v", err)
		} else {
			mailSvc = &ingest.MailSyncService{
				Connector:     connector,
				Classifier:    classifier,
				Engine:        engine,
				MinConfidence: config.AppConfig.MinConfidence,
				ApplyLabels:   config.AppConfig.GmailApplyLabels,
			}
		}
	}
	portalSvc := &ingest.PortalSyncService{Engine: engine}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(repo, engine, logger),
		Sync:     handlers.NewSyncHandler(mailSvc, portalSvc, logger),
		Webhook:  handlers.NewWebhookHandler(engine, logger),
		Logs:     handlers.NewJudgmentLogHandler(judgmentLog, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	if mailSvc != nil && config.AppConfig.RedisAddr != "" {
		cron.InitMailSyncWorker(mailSvc)
	}
	utils.StartHealthMonitor(redisClients, database.MongoClient)

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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
