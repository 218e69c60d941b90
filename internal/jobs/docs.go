// Package jobs schedules the engine's sweepers with github.com/robfig/cron/v3.
//
// Every sweeper is an idempotent "process expired X" entry point, so a pass
// may run at any interval and may overlap a pass on another instance. Within
// one process a tick is skipped while the previous pass of the same sweeper is
// still running.
//
// # Usage
//
//	manager := jobs.NewJobManager(sweepers, cfg.SweepSchedule, logger)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// Windows such as offer expiry are therefore "at least N hours", possibly
// N hours plus one schedule interval.
package jobs
