package repository

import (
	"context"
	"errors"
	"time"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AppointmentRepository) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return getByID[models.Appointment](ctx, r.db, "appointment", id)
}

func (r *AppointmentRepository) withParties(q *gorm.DB) *gorm.DB {
	return q.Preload("Client").Preload("ServiceProvider")
}

// Detail returns the appointment with client and provider inflated.
func (r *AppointmentRepository) Detail(ctx context.Context, id uint) (*AppointmentDetail, error) {
	var a models.Appointment
	if err := r.withParties(r.db.WithContext(ctx)).First(&a, id).Error; err != nil {
		return nil, wrapNotFound(err, "appointment", id)
	}
	d := appointmentDetail(a)
	return &d, nil
}

func (r *AppointmentRepository) listBy(ctx context.Context, column string, userID uint, p Page) (Paginated[AppointmentDetail], error) {
	count := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Appointment{}).Where(column+" = ?", userID)
	}
	find := func() *gorm.DB {
		return r.withParties(r.db.WithContext(ctx)).Where(column+" = ?", userID).Order("id asc")
	}

	page, err := paginate[models.Appointment](count, find, p)
	if err != nil {
		return Paginated[AppointmentDetail]{}, err
	}
	return MapPaginated(page, appointmentDetail), nil
}

func (r *AppointmentRepository) ListByClient(ctx context.Context, clientID uint, p Page) (Paginated[AppointmentDetail], error) {
	return r.listBy(ctx, "client_id", clientID, p)
}

func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID uint, p Page) (Paginated[AppointmentDetail], error) {
	return r.listBy(ctx, "service_provider_id", providerID, p)
}

// Patch merges fields (column names) into the appointment. Any status value
// accepted by the caller is stored as-is. Moving the appointment re-arms its
// reminder.
func (r *AppointmentRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) (*models.Appointment, error) {
	if _, ok := fields["appointment_datetime"]; ok {
		fields["reminded_at"] = nil
	}
	return updateByID[models.Appointment](ctx, r.db, "appointment", id, fields)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Appointment](ctx, r.db, "appointment", id)
}

// Upcoming returns Active appointments starting within [from, to] whose
// client has not been reminded yet.
func (r *AppointmentRepository) Upcoming(ctx context.Context, from, to time.Time) ([]AppointmentDetail, error) {
	var rows []models.Appointment
	err := r.withParties(r.db.WithContext(ctx)).
		Where("status = ? AND appointment_datetime BETWEEN ? AND ?", models.AppointmentActive, from, to).
		Where("reminded_at IS NULL").
		Order("appointment_datetime asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentDetail, 0, len(rows))
	for _, a := range rows {
		out = append(out, appointmentDetail(a))
	}
	return out, nil
}

// MarkReminded records that the reminder for id went out at.
func (r *AppointmentRepository) MarkReminded(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminded_at", at).Error
}

// FirstBetween returns the id of the earliest appointment booked by client
// with provider, or nil when they have none.
func (r *AppointmentRepository) FirstBetween(ctx context.Context, clientID, providerID uint) (*uint, error) {
	return firstAppointmentBetween(r.db.WithContext(ctx), clientID, providerID)
}

func firstAppointmentBetween(db *gorm.DB, clientID, providerID uint) (*uint, error) {
	var a models.Appointment
	err := db.Select("id").
		Where("client_id = ? AND service_provider_id = ?", clientID, providerID).
		Order("id asc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a.ID, nil
}
