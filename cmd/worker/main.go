// Command worker runs the background report scheduler. It may run
// alongside any number of sibling workers; per-report locks keep each
// run exclusive.
package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/adblend/internal/config"
	"github.com/ignite/adblend/internal/domain"
	"github.com/ignite/adblend/internal/ingest"
	"github.com/ignite/adblend/internal/pkg/logger"
	"github.com/ignite/adblend/internal/repository/postgres"
	"github.com/ignite/adblend/internal/service/report"
	"github.com/ignite/adblend/internal/worker"
)

// logDeliverer is the default delivery boundary: it records the run in
// the logs. Real delivery (email, Slack) plugs in here.
type logDeliverer struct{}

func (logDeliverer) Deliver(ctx context.Context, rep domain.Report, p *report.Preview) error {
	logger.Info("report ready",
		"report_id", rep.ID,
		"name", rep.Name,
		"rows", len(p.Rows),
		"recipients", len(rep.Recipients))
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("opening postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := ingest.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("configuring object store", "error", err)
		os.Exit(1)
	}

	warehouses := postgres.NewWarehouseRepo(db)
	reports := postgres.NewReportRepo(db)

	scheduler := worker.NewReportScheduler(reports, report.New(warehouses, store), logDeliverer{}, db)
	scheduler.SetPollInterval(cfg.Scheduler.PollInterval())
	scheduler.SetLockTTL(cfg.Scheduler.LockTTL())

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer redisClient.Close()
		scheduler.SetRedisClient(redisClient)
		logger.Info("using redis locks", "addr", cfg.Redis.Addr)
	} else {
		logger.Info("using postgres advisory locks")
	}

	if err := scheduler.Start(); err != nil {
		logger.Error("starting scheduler", "error", err)
		os.Exit(1)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	logger.Info("shutting down")
	scheduler.Stop()
}
