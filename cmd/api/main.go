package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/mergington/activities/internal/api"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/domain"
	"github.com/mergington/activities/internal/persistence/sqlite"
	httptransport "github.com/mergington/activities/internal/transport/http"
	"github.com/mergington/activities/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewRepository(db)
	if err := repo.Init(ctx); err != nil {
		logger.Log.Fatalf("failed to create schema: %v", err)
	}
	if err := repo.Seed(ctx); err != nil {
		logger.Log.Fatalf("failed to seed sample data: %v", err)
	}

	service := domain.NewService(repo)
	handler := api.NewHandler(service)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, api.RequestLogger(router))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.WithFields(logrus.Fields{
			"address":  cfg.HTTPAddress,
			"database": cfg.DatabasePath,
		}).Info("activities service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	if err := httptransport.Shutdown(server, cfg.ShutdownTimeout); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
}
