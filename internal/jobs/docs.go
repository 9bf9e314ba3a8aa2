// Package jobs provides scheduled background tasks for the courier service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and
// are started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(authenticator, cfg.SessionSweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SessionSweepJob drops sessions idle for longer than the configured TTL.
// Verification already rejects such sessions; the sweep keeps the session
// store from growing with abandoned logins.
package jobs
