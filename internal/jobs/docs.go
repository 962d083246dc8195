// Package jobs runs the off-route escalation sweeps on a cron schedule.
//
// # Available Jobs
//
//  1. WarningEscalationJob - escalates YELLOW_WARNING events whose deviation
//     has lasted at least the policy's RedAfter
//  2. GraceExpiryJob - sends CONTACTED_WAITING_RETURN events whose grace
//     period has expired back to RED_WARNING
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&warningsHandler, &graceHandler, "*/30 * * * * *", time.Now, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. A run that is still
// in progress when the next tick fires causes that tick to be skipped, so
// sweeps never overlap. Each run takes "now" once from the injected clock
// and passes it to the command.
//
// # Error Handling
//
// Per-event conflicts and failures are counted by the handlers and only
// summarized here. A failed run is logged and retried on the next tick.
package jobs
