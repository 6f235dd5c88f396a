// Package worker hosts the background loops of the platform. The
// ReportScheduler polls for reports whose next run time has arrived,
// runs the blending pipeline for each, and hands the result to a
// delivery boundary.
package worker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/adblend/internal/domain"
	"github.com/ignite/adblend/internal/pkg/distlock"
	"github.com/ignite/adblend/internal/pkg/logger"
	"github.com/ignite/adblend/internal/service/report"
)

// DefaultSchedulerPollInterval is how often the scheduler checks for
// due reports when no interval is configured.
const DefaultSchedulerPollInterval = 30 * time.Second

// ReportRepo is the slice of the report repository the scheduler needs.
type ReportRepo interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.Report, error)
	MarkRun(ctx context.Context, id string, ranAt, nextRunAt time.Time) error
}

// Deliverer receives a finished report run. Implementations send email,
// post to Slack, or write a file; the scheduler does not care which.
type Deliverer interface {
	Deliver(ctx context.Context, rep domain.Report, preview *report.Preview) error
}

// ReportScheduler polls for due reports and runs them. Multiple worker
// processes may run the same scheduler; a per-report distributed lock
// makes each run exclusive.
type ReportScheduler struct {
	repo      ReportRepo
	reports   *report.Service
	deliverer Deliverer

	db          *sql.DB
	redisClient *redis.Client // optional; nil falls back to PG advisory locks

	workerID     string
	pollInterval time.Duration
	lockTTL      time.Duration

	// Stats
	reportsRun int64
	errors     int64

	// Control
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewReportScheduler creates a report scheduler.
func NewReportScheduler(repo ReportRepo, reports *report.Service, deliverer Deliverer, db *sql.DB) *ReportScheduler {
	hostname, _ := os.Hostname()
	return &ReportScheduler{
		repo:         repo,
		reports:      reports,
		deliverer:    deliverer,
		db:           db,
		workerID:     fmt.Sprintf("scheduler-%s-%d", hostname, time.Now().UnixNano()%10000),
		pollInterval: DefaultSchedulerPollInterval,
		lockTTL:      5 * time.Minute,
	}
}

// SetRedisClient sets the Redis client for distributed locking. If set,
// the scheduler uses Redis-based locks; otherwise it falls back to
// PostgreSQL advisory locks.
func (rs *ReportScheduler) SetRedisClient(client *redis.Client) {
	rs.redisClient = client
}

// SetPollInterval overrides the default poll interval.
func (rs *ReportScheduler) SetPollInterval(d time.Duration) {
	if d > 0 {
		rs.pollInterval = d
	}
}

// SetLockTTL overrides the default per-report lock TTL.
func (rs *ReportScheduler) SetLockTTL(d time.Duration) {
	if d > 0 {
		rs.lockTTL = d
	}
}

// Start begins the polling loop.
func (rs *ReportScheduler) Start() error {
	rs.mu.Lock()
	if rs.running {
		rs.mu.Unlock()
		return fmt.Errorf("report scheduler already running")
	}
	rs.running = true
	rs.ctx, rs.cancel = context.WithCancel(context.Background())
	rs.mu.Unlock()

	logger.Info("report scheduler starting",
		"worker_id", rs.workerID, "poll_interval", rs.pollInterval.String())

	rs.wg.Add(1)
	go rs.pollLoop()
	return nil
}

// Stop gracefully stops the scheduler and waits for any in-flight run.
func (rs *ReportScheduler) Stop() {
	rs.mu.Lock()
	if !rs.running {
		rs.mu.Unlock()
		return
	}
	rs.running = false
	rs.mu.Unlock()

	rs.cancel()
	rs.wg.Wait()
	logger.Info("report scheduler stopped",
		"reports_run", atomic.LoadInt64(&rs.reportsRun),
		"errors", atomic.LoadInt64(&rs.errors))
}

func (rs *ReportScheduler) pollLoop() {
	defer rs.wg.Done()

	ticker := time.NewTicker(rs.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rs.ctx.Done():
			return
		case <-ticker.C:
			rs.processDueReports()
		}
	}
}

func (rs *ReportScheduler) processDueReports() {
	ctx, cancel := context.WithTimeout(rs.ctx, rs.pollInterval)
	defer cancel()

	due, err := rs.repo.ListDue(ctx, time.Now().UTC())
	if err != nil {
		atomic.AddInt64(&rs.errors, 1)
		logger.Error("listing due reports", "error", err)
		return
	}

	for _, rep := range due {
		select {
		case <-rs.ctx.Done():
			return
		default:
		}
		if err := rs.runReport(ctx, rep); err != nil {
			atomic.AddInt64(&rs.errors, 1)
			logger.Error("running report", "report_id", rep.ID, "error", err)
		}
	}
}

// runReport takes the per-report lock, runs the pipeline over the
// report's cadence window, delivers the result, and advances the
// schedule. Losing the lock race is not an error: another worker owns
// the run.
func (rs *ReportScheduler) runReport(ctx context.Context, rep domain.Report) error {
	lock := distlock.New(rs.redisClient, rs.db, "report:"+rep.ID, rs.lockTTL)
	acquired, err := lock.TryAcquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring report lock: %w", err)
	}
	if !acquired {
		return nil
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			logger.Warn("releasing report lock", "report_id", rep.ID, "error", err)
		}
	}()

	now := time.Now().UTC()
	start, end := report.RangeForCadence(rep.Cadence, now)

	preview, err := rs.reports.Preview(ctx, report.Request{
		WarehouseID: rep.WarehouseID,
		GroupBy:     rep.GroupBy,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return fmt.Errorf("report pipeline: %w", err)
	}

	if rs.deliverer != nil {
		if err := rs.deliverer.Deliver(ctx, rep, preview); err != nil {
			return fmt.Errorf("delivering report: %w", err)
		}
	}

	if err := rs.repo.MarkRun(ctx, rep.ID, now, report.NextRun(rep.Cadence, now)); err != nil {
		return fmt.Errorf("marking report run: %w", err)
	}

	atomic.AddInt64(&rs.reportsRun, 1)
	logger.Info("report run complete",
		"report_id", rep.ID, "rows", len(preview.Rows), "window", start+".."+end)
	return nil
}
