package meetings

import (
	"path/filepath"
	"testing"
	"time"

	"gatherly/app/models"
	"gatherly/core/app/users"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*MeetingService, *gorm.DB, *emitter.Emitter) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "meetings.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&storage.Attachment{},
		&models.Meeting{},
		&models.Attendance{},
	))

	log, err := logger.NewLogger(logger.Config{Level: "error"})
	require.NoError(t, err)

	events := emitter.New()
	return NewMeetingService(db, events, nil, log), db, events
}

func seedUser(t *testing.T, db *gorm.DB, email string) *users.User {
	t.Helper()
	user := &users.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  email,
		Email:     email,
		Password:  "secret",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createRequest(title string) *models.CreateMeetingRequest {
	return &models.CreateMeetingRequest{
		Title:     title,
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(25 * time.Hour),
	}
}

func TestCreateMeeting(t *testing.T) {
	svc, db, events := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")

	var emitted *models.Meeting
	events.On(CreateMeetingEvent, func(data any) {
		emitted, _ = data.(*models.Meeting)
	})

	meeting, err := svc.Create(organizer.Id, createRequest("Weekly Team Meeting"))
	require.NoError(t, err)

	assert.Equal(t, "Weekly Team Meeting", meeting.Title)
	assert.Equal(t, "weekly-team-meeting", meeting.Slug)
	assert.True(t, meeting.IsActive)
	assert.Equal(t, organizer.Id, meeting.OrganizerId)
	require.NotNil(t, emitted)
	assert.Equal(t, meeting.Id, emitted.Id)

	// The organizer attends their own meeting.
	require.Len(t, meeting.Attendances, 1)
	assert.Equal(t, organizer.Id, meeting.Attendances[0].UserId)
	assert.Equal(t, models.AttendanceGoing, meeting.Attendances[0].Status)
}

func TestUpdateMeetingRequiresOrganizer(t *testing.T) {
	svc, db, _ := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	other := seedUser(t, db, "other@example.com")

	meeting, err := svc.Create(organizer.Id, createRequest("Planning"))
	require.NoError(t, err)

	_, err = svc.Update(meeting.Id, other.Id, &models.UpdateMeetingRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotOrganizer)

	updated, err := svc.Update(meeting.Id, organizer.Id, &models.UpdateMeetingRequest{Title: "Planning v2"})
	require.NoError(t, err)
	assert.Equal(t, "Planning v2", updated.Title)
	assert.Equal(t, "planning-v2", updated.Slug)
}

func TestDeleteMeetingRequiresOrganizer(t *testing.T) {
	svc, db, _ := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	other := seedUser(t, db, "other@example.com")

	meeting, err := svc.Create(organizer.Id, createRequest("Planning"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(meeting.Id, other.Id), ErrNotOrganizer)
	require.NoError(t, svc.Delete(meeting.Id, organizer.Id))

	_, err = svc.GetById(meeting.Id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestJoinMeeting(t *testing.T) {
	svc, db, events := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	attendee := seedUser(t, db, "attendee@example.com")

	meeting, err := svc.Create(organizer.Id, createRequest("Open Meetup"))
	require.NoError(t, err)

	var joined *models.Attendance
	events.On(JoinMeetingEvent, func(data any) {
		joined, _ = data.(*models.Attendance)
	})

	attendance, err := svc.Join(meeting.Id, attendee.Id, "")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceGoing, attendance.Status)
	require.NotNil(t, joined)
	assert.Equal(t, attendee.Id, joined.UserId)
}

func TestJoinMeetingTwice(t *testing.T) {
	svc, db, _ := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	attendee := seedUser(t, db, "attendee@example.com")

	meeting, err := svc.Create(organizer.Id, createRequest("Open Meetup"))
	require.NoError(t, err)

	_, err = svc.Join(meeting.Id, attendee.Id, models.AttendanceGoing)
	require.NoError(t, err)

	_, err = svc.Join(meeting.Id, attendee.Id, models.AttendanceGoing)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestJoinMeetingAtCapacity(t *testing.T) {
	svc, db, _ := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	attendee := seedUser(t, db, "attendee@example.com")

	// The organizer's own attendance takes the only slot.
	req := createRequest("Tiny Room")
	req.MaxAttendees = 1
	meeting, err := svc.Create(organizer.Id, req)
	require.NoError(t, err)

	_, err = svc.Join(meeting.Id, attendee.Id, models.AttendanceGoing)
	assert.ErrorIs(t, err, ErrMeetingFull)

	// "maybe" does not count against capacity.
	attendance, err := svc.Join(meeting.Id, attendee.Id, models.AttendanceMaybe)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceMaybe, attendance.Status)
}

func TestLeaveMeeting(t *testing.T) {
	svc, db, _ := newTestService(t)
	organizer := seedUser(t, db, "organizer@example.com")
	attendee := seedUser(t, db, "attendee@example.com")

	meeting, err := svc.Create(organizer.Id, createRequest("Open Meetup"))
	require.NoError(t, err)

	_, err = svc.Join(meeting.Id, attendee.Id, models.AttendanceGoing)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(meeting.Id, attendee.Id))

	assert.ErrorIs(t, svc.Leave(meeting.Id, attendee.Id), gorm.ErrRecordNotFound)

	attendees, err := svc.GetAttendees(meeting.Id)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, organizer.Id, attendees[0].UserId)
}
