package cron

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/meinhoongagan/servicehub/db"
	"github.com/meinhoongagan/servicehub/models"
	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakeImages struct {
	mu      sync.Mutex
	broken  map[string]bool
	removed []string
}

func (f *fakeImages) Save(context.Context, string, string, *multipart.FileHeader) (string, error) {
	return "", errors.New("not supported")
}

func (f *fakeImages) Remove(_ context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken[ref] {
		return errors.New("disk busy")
	}
	f.removed = append(f.removed, ref)
	return nil
}

type recordingNotifier struct {
	notify.Nop
	reminders []notify.AppointmentReminderEvent
}

func (r *recordingNotifier) AppointmentReminder(_ context.Context, ev notify.AppointmentReminderEvent) error {
	r.reminders = append(r.reminders, ev)
	return nil
}

func setupJobs(t *testing.T) (*gorm.DB, *Jobs, *fakeImages, *recordingNotifier) {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(":memory:"), gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	images := &fakeImages{broken: map[string]bool{}}
	notifier := &recordingNotifier{}
	jobs := &Jobs{
		Appointments: repository.NewAppointmentRepository(gdb),
		FileRemovals: repository.NewFileRemovalRepository(gdb),
		Images:       images,
		Notifier:     notifier,
		Now:          func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
	return gdb, jobs, images, notifier
}

func TestSweepFileRemovals(t *testing.T) {
	ctx := context.Background()
	_, jobs, images, _ := setupJobs(t)

	_, err := jobs.FileRemovals.Mark(ctx, []string{"/upload/service/a.webp", "/upload/service/b.webp"})
	require.NoError(t, err)
	images.broken["/upload/service/b.webp"] = true

	removed, err := jobs.SweepFileRemovals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"/upload/service/a.webp"}, images.removed)

	pending, err := jobs.FileRemovals.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "/upload/service/b.webp", pending[0].Ref)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Equal(t, "disk busy", pending[0].LastError)

	delete(images.broken, "/upload/service/b.webp")
	removed, err = jobs.SweepFileRemovals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	n, err := jobs.FileRemovals.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendAppointmentReminders(t *testing.T) {
	ctx := context.Background()
	gdb, jobs, _, notifier := setupJobs(t)
	now := jobs.Now()

	provider := &models.User{Name: "Priya", Email: "priya@example.com", Role: models.RoleServiceProvider}
	require.NoError(t, gdb.Create(provider).Error)

	book := func(name string, at time.Time, status string) {
		require.NoError(t, gdb.Create(&models.Appointment{
			ServiceProviderID:   provider.ID,
			Name:                name,
			Email:               name + "@example.com",
			AppointmentDatetime: at,
			Fees:                40,
			Status:              status,
		}).Error)
	}
	book("due", now.Add(time.Hour), models.AppointmentActive)
	book("cancelled", now.Add(time.Hour), models.AppointmentCancelled)
	book("later", now.Add(3*time.Hour), models.AppointmentActive)
	book("soon", now.Add(10*time.Minute), models.AppointmentActive)

	sent, err := jobs.SendAppointmentReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, notifier.reminders, 1)

	ev := notifier.reminders[0]
	assert.Equal(t, "due", ev.ClientName)
	assert.Equal(t, "due@example.com", ev.ClientEmail)
	assert.Equal(t, "Priya", ev.ProviderName)
	assert.True(t, ev.StartsAt.Equal(now.Add(time.Hour)))

	sent, err = jobs.SendAppointmentReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Len(t, notifier.reminders, 1)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	_, jobs, _, _ := setupJobs(t)

	_, err := Start("not a schedule", "", jobs)
	assert.Error(t, err)

	c, err := Start("", "", jobs)
	require.NoError(t, err)
	<-c.Stop().Done()
	assert.Len(t, c.Entries(), 2)
}
