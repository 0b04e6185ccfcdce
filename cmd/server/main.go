package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snapurl_admin/internal/access"
	"snapurl_admin/internal/api"
	"snapurl_admin/internal/app/service"
	"snapurl_admin/internal/app/worker"
	"snapurl_admin/internal/common/security"
	"snapurl_admin/internal/domain/repository"
	"snapurl_admin/internal/platform/config"
	"snapurl_admin/internal/platform/database"
	"snapurl_admin/internal/platform/logger"
	"snapurl_admin/internal/platform/store"
	"snapurl_admin/internal/snapurl"
)

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Logger
	logger.Init(config.AppConfig.Environment)
	defer logger.Sync()
	logger.Log.Infow("configuration loaded", "env", config.AppConfig.Environment)

	// 3. Session cookie signing
	security.InitJWT()

	// 4. Storage
	database.Connect()
	defer database.Close()
	store.ConnectRedis()
	defer store.CloseRedis()
	logger.Log.Info("storage connected")

	// 5. Upstream API client
	client := snapurl.NewClient(config.AppConfig.SnapURLBaseURL, config.AppConfig.SnapURLTimeout)
	logger.Log.Infow("upstream client ready", "base_url", config.AppConfig.SnapURLBaseURL)

	// 6. Stores and services
	clientState, err := repository.NewRedisClientStateStore(store.RDB, config.AppConfig.SessionExp, config.AppConfig.TokenSealKey)
	if err != nil {
		logger.Log.Fatalw("client state store init failed", "err", err)
	}
	notificationRepo := repository.NewPgNotificationRepository(database.DB)

	manager := service.NewSessionManager(client, clientState)
	notes := service.NewNotificationService(notificationRepo)
	manager.SetNotifier(notes)
	links := service.NewShortLinkService(client)
	analytics := service.NewAnalyticsService(client)
	themes := service.NewThemeService(clientState, config.AppConfig.DefaultTheme)

	// 7. Realtime stats poller (as a goroutine)
	poller := worker.NewStatsPoller(client, analytics, config.AppConfig.ServiceToken, config.AppConfig.RealtimePollTick)
	pollerCtx, pollerCancel := context.WithCancel(context.Background())
	defer pollerCancel()
	go poller.Start(pollerCtx)

	// 8. Router & HTTP Server
	gate := access.NewDefaultGate()
	router := api.NewRouter(manager, gate, links, analytics, notes, themes)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Log.Infow("server starting", "port", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalw("server listen failed", "err", err)
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Log.Info("shutting down")
	pollerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatalw("server shutdown failed", "err", err)
	}

	logger.Log.Info("server stopped gracefully")
}
