package jobs

import (
	"context"
	"fmt"
	"time"

	"gatherly/app/models"
	"gatherly/core/email"
	"gatherly/core/logger"

	"gorm.io/gorm"
)

// MeetingReminderJob emails everyone attending a meeting that starts
// within the next day.
type MeetingReminderJob struct {
	DB     *gorm.DB
	Email  email.Sender
	Logger logger.Logger
}

func NewMeetingReminderJob(db *gorm.DB, sender email.Sender, logger logger.Logger) *MeetingReminderJob {
	return &MeetingReminderJob{
		DB:     db,
		Email:  sender,
		Logger: logger,
	}
}

// Execute finds active meetings starting in the next 24 hours and sends
// one reminder per attendee marked going or maybe. A failed send is
// logged and skipped, not retried.
func (j *MeetingReminderJob) Execute(ctx context.Context) error {
	now := time.Now()
	windowEnd := now.Add(24 * time.Hour)

	var meetings []*models.Meeting
	err := j.DB.WithContext(ctx).
		Where("is_active = ? AND start_time > ? AND start_time <= ?", true, now, windowEnd).
		Find(&meetings).Error
	if err != nil {
		j.Logger.Error("failed to load upcoming meetings", logger.String("error", err.Error()))
		return err
	}

	for _, meeting := range meetings {
		var attendances []*models.Attendance
		err := j.DB.WithContext(ctx).Preload("User").
			Where("meeting_id = ? AND status IN ?", meeting.Id,
				[]string{models.AttendanceGoing, models.AttendanceMaybe}).
			Find(&attendances).Error
		if err != nil {
			j.Logger.Error("failed to load attendees for reminder",
				logger.String("error", err.Error()),
				logger.Uint("meeting_id", meeting.Id))
			continue
		}

		for _, attendance := range attendances {
			if attendance.User == nil || attendance.User.Email == "" {
				continue
			}

			subject := fmt.Sprintf("Reminder: %s starts soon", meeting.Title)
			body := fmt.Sprintf(
				"<p>Hi %s,</p><p>Your meeting <strong>%s</strong> starts at %s",
				attendance.User.FirstName, meeting.Title,
				meeting.StartTime.Format("Mon, 2 Jan 2006 15:04"),
			)
			if meeting.Location != "" {
				body += fmt.Sprintf(" in %s", meeting.Location)
			}
			body += ".</p>"

			if err := j.Email.Send(attendance.User.Email, subject, body); err != nil {
				j.Logger.Error("failed to send meeting reminder",
					logger.String("error", err.Error()),
					logger.Uint("meeting_id", meeting.Id),
					logger.Uint("user_id", attendance.UserId))
			}
		}
	}

	j.Logger.Info("meeting reminder job finished",
		logger.Int("meetings", len(meetings)))

	return nil
}
