package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultSessionSweepSchedule runs the sweep at the start of every minute.
const DefaultSessionSweepSchedule = "0 * * * * *"

// IdleSessionSweeper drops sessions that have been idle for too long.
type IdleSessionSweeper interface {
	SweepIdle(ctx context.Context) (int, error)
}

// SessionSweepJob periodically removes idle sessions so an abandoned login
// does not keep its credentials valid.
type SessionSweepJob struct {
	sweeper  IdleSessionSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionSweepJob(sweeper IdleSessionSweeper, schedule string, logger *slog.Logger) *SessionSweepJob {
	if schedule == "" {
		schedule = DefaultSessionSweepSchedule
	}
	return &SessionSweepJob{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start registers the sweep on its schedule and starts the scheduler.
func (j *SessionSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started", "schedule", j.schedule)
	return nil
}

func (j *SessionSweepJob) run() {
	ctx := context.Background()

	removed, err := j.sweeper.SweepIdle(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep job failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Idle sessions removed", "count", removed)
	}
}

// Stop waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
