// Command server runs the HTTP API: client/source/warehouse/report/alert
// CRUD plus the interactive blend preview endpoints.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/ignite/adblend/internal/api"
	"github.com/ignite/adblend/internal/config"
	"github.com/ignite/adblend/internal/ingest"
	"github.com/ignite/adblend/internal/pkg/logger"
	"github.com/ignite/adblend/internal/repository/postgres"
	"github.com/ignite/adblend/internal/service/alert"
	"github.com/ignite/adblend/internal/service/report"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := openDatabase(cfg.Database)
	if err != nil {
		logger.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	store, err := ingest.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("configuring object store", "error", err)
		os.Exit(1)
	}

	clients := postgres.NewClientRepo(db)
	sources := postgres.NewSourceRepo(db)
	warehouses := postgres.NewWarehouseRepo(db)
	reports := postgres.NewReportRepo(db)
	alerts := postgres.NewAlertRepo(db)

	reportSvc := report.New(warehouses, store)
	alertSvc := alert.New(alerts)

	h := api.NewHandlers(clients, sources, warehouses, reports, alerts, reportSvc, alertSvc)
	router := api.SetupRoutes(h, cfg.CORS)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", "error", err)
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}

func openDatabase(c config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.URL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
