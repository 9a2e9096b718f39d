package cron

import (
	"context"
	"time"

	"github.com/meinhoongagan/servicehub/logger"
	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/storage"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	sweepBatch    = 100
	reminderFrom  = 55 * time.Minute
	reminderTo    = 65 * time.Minute
	jobTimeout    = 2 * time.Minute
	defaultSweep  = "*/10 * * * *"
	defaultRemind = "* * * * *"
)

// Jobs holds what the scheduled jobs work on.
type Jobs struct {
	Appointments *repository.AppointmentRepository
	FileRemovals *repository.FileRemovalRepository
	Images       storage.ImageStore
	Notifier     notify.Notifier
	Now          func() time.Time
}

// Start schedules the file-removal sweeper and the appointment reminders
// and starts the scheduler. Empty schedules fall back to every ten minutes
// and every minute.
func Start(sweepSchedule, reminderSchedule string, jobs *Jobs) (*cron.Cron, error) {
	if sweepSchedule == "" {
		sweepSchedule = defaultSweep
	}
	if reminderSchedule == "" {
		reminderSchedule = defaultRemind
	}
	if jobs.Now == nil {
		jobs.Now = time.Now
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	))

	if _, err := c.AddFunc(sweepSchedule, jobs.run("sweep file removals", jobs.SweepFileRemovals)); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(reminderSchedule, jobs.run("appointment reminders", jobs.SendAppointmentReminders)); err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.WithFields(logrus.Fields{
		"sweep":     sweepSchedule,
		"reminders": reminderSchedule,
	}).Info("cron job scheduler started")
	return c, nil
}

func (j *Jobs) run(name string, job func(context.Context) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := job(ctx)
		if err != nil {
			logger.Log.WithError(err).WithField("job", name).Error("cron job failed")
			return
		}
		if n > 0 {
			logger.Log.WithField("job", name).WithField("count", n).Info("cron job done")
		}
	}
}

// SweepFileRemovals retries pending file removals and returns how many
// files were removed.
func (j *Jobs) SweepFileRemovals(ctx context.Context) (int, error) {
	marks, err := j.FileRemovals.Pending(ctx, sweepBatch)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, m := range marks {
		if err := j.Images.Remove(ctx, m.Ref); err != nil {
			logger.Log.WithError(err).WithField("ref", m.Ref).WithField("attempts", m.Attempts+1).Warn("file removal failed")
			if ferr := j.FileRemovals.Failed(ctx, m.ID, err); ferr != nil {
				return removed, ferr
			}
			continue
		}
		if err := j.FileRemovals.Done(ctx, m.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// SendAppointmentReminders notifies clients of Active appointments starting
// in about an hour and returns how many reminders were sent. Each
// appointment is reminded once.
func (j *Jobs) SendAppointmentReminders(ctx context.Context) (int, error) {
	now := j.Now()
	upcoming, err := j.Appointments.Upcoming(ctx, now.Add(reminderFrom), now.Add(reminderTo))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, a := range upcoming {
		ev := notify.AppointmentReminderEvent{
			AppointmentID: a.ID,
			ClientName:    a.Name,
			ClientEmail:   a.Email,
			StartsAt:      a.AppointmentDatetime,
			Fees:          a.Fees,
		}
		if a.ServiceProvider != nil {
			ev.ProviderName = a.ServiceProvider.Name
		}

		if err := j.Notifier.AppointmentReminder(ctx, ev); err != nil {
			logger.Log.WithError(err).WithField("appointment_id", a.ID).Error("failed to send reminder")
			continue
		}
		if err := j.Appointments.MarkReminded(ctx, a.ID, now); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// cronLogger routes scheduler messages into logrus.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(kv []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			f[k] = kv[i+1]
		}
	}
	return f
}
