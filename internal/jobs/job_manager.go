package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops both escalation sweeps together.
type JobManager struct {
	warningEscalationJob *WarningEscalationJob
	graceExpiryJob       *GraceExpiryJob
}

func NewJobManager(
	warningsHandler WarningsHandler,
	graceHandler GraceExpiryHandler,
	spec string,
	now Clock,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		warningEscalationJob: NewWarningEscalationJob(warningsHandler, spec, now, logger),
		graceExpiryJob:       NewGraceExpiryJob(graceHandler, spec, now, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.warningEscalationJob.Start(); err != nil {
		return fmt.Errorf("failed to start warning escalation job: %w", err)
	}

	if err := jm.graceExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.warningEscalationJob.Stop()
		return fmt.Errorf("failed to start grace expiry job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running sweeps to finish.
func (jm *JobManager) StopAll() {
	jm.graceExpiryJob.Stop()
	jm.warningEscalationJob.Stop()
}
