package jobs

import (
	"context"

	"gatherly/core/email"
	"gatherly/core/logger"
	"gatherly/core/scheduler"

	"gorm.io/gorm"
)

// SetupScheduler registers all scheduled jobs with the cron scheduler
func SetupScheduler(db *gorm.DB, sender email.Sender, log logger.Logger) *scheduler.CronScheduler {
	cronScheduler := scheduler.NewCronScheduler(log)

	reminderJob := NewMeetingReminderJob(db, sender, log)

	// Daily at 9:00 AM.
	cronTask := &scheduler.CronTask{
		Name:        "meeting_reminder",
		Description: "Email attendees of meetings starting within the next day",
		CronExpr:    "0 9 * * *",
		Handler: func(ctx context.Context) error {
			return reminderJob.Execute(ctx)
		},
		Enabled: true,
	}

	if err := cronScheduler.RegisterTask(cronTask); err != nil {
		log.Error("failed to register meeting reminder job",
			logger.String("error", err.Error()))
	} else {
		log.Info("registered meeting reminder job")
	}

	return cronScheduler
}
