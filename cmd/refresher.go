package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"
	"trading-assistant/internal/service"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/utils"

	"github.com/robfig/cron/v3"
)

// cronLogger routes robfig/cron's own logging through zap.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}

// DashboardRefresher drives DashboardService.Refresh on the refresh.spec schedule.
// The start-up cycle and the scheduled ones share one job, so at most one refresh is in flight.
type DashboardRefresher struct {
	log       *logger.Logger
	dashboard service.DashboardService
	timeout   time.Duration
	cron      *cron.Cron
	job       cron.Job
	initial   sync.WaitGroup
}

func NewDashboardRefresher(log *logger.Logger, dashboard service.DashboardService, spec string, timeout time.Duration) (*DashboardRefresher, error) {
	cl := cronLogger{log: log}
	r := &DashboardRefresher{
		log:       log,
		dashboard: dashboard,
		timeout:   timeout,
		cron:      cron.New(cron.WithLogger(cl)),
	}
	r.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(r.runOnce))

	if _, err := r.cron.AddJob(spec, r.job); err != nil {
		return nil, fmt.Errorf("invalid refresh spec %q: %w", spec, err)
	}
	return r, nil
}

func (r *DashboardRefresher) runOnce() {
	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.dashboard.Refresh(ctx, false)
}

// Start runs one refresh immediately, then hands over to the schedule.
func (r *DashboardRefresher) Start() {
	r.log.Info("Starting dashboard refresher")
	r.initial.Add(1)
	utils.GoSafe(func() {
		defer r.initial.Done()
		r.job.Run()
	})
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx to expire.
func (r *DashboardRefresher) Stop(ctx context.Context) {
	r.log.Info("Stopping dashboard refresher")

	done := make(chan struct{})
	go func() {
		<-r.cron.Stop().Done()
		r.initial.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.log.Info("Dashboard refresher stopped")
	case <-ctx.Done():
		r.log.Warn("Timeout while stopping dashboard refresher")
	}
}
