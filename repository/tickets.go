package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) Get(ctx context.Context, id uint) (*models.Ticket, error) {
	return getByID[models.Ticket](ctx, r.db, "ticket", id)
}

func (r *TicketRepository) SetStatus(ctx context.Context, id uint, status string) (*models.Ticket, error) {
	return updateByID[models.Ticket](ctx, r.db, "ticket", id, map[string]interface{}{"status": status})
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.Ticket](ctx, r.db, "ticket", id)
}

// TicketFilter selects the tickets of a detail view. Zero values match all.
type TicketFilter struct {
	ID       uint
	ClientID uint
	Status   string
}

// joined inner-joins the ticket's appointment and client, so tickets whose
// appointment or client has been deleted drop out of every view.
func (r *TicketRepository) joined(ctx context.Context, f TicketFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Ticket{}).
		Joins("JOIN appointments ON appointments.id = tickets.appointment_id").
		Joins("JOIN users AS ticket_clients ON ticket_clients.id = tickets.client_id")
	if f.ID != 0 {
		q = q.Where("tickets.id = ?", f.ID)
	}
	if f.ClientID != 0 {
		q = q.Where("tickets.client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("tickets.status = ?", f.Status)
	}
	return q
}

// Details returns the newest tickets first, each with its client and its
// appointment (provider left-joined) inflated.
func (r *TicketRepository) Details(ctx context.Context, f TicketFilter, p Page) (Paginated[TicketDetail], error) {
	count := func() *gorm.DB { return r.joined(ctx, f) }
	find := func() *gorm.DB {
		return r.joined(ctx, f).
			Preload("Client").
			Preload("Appointment.ServiceProvider").
			Order("tickets.created_at desc").
			Order("tickets.id desc")
	}

	page, err := paginate[models.Ticket](count, find, p)
	if err != nil {
		return Paginated[TicketDetail]{}, err
	}
	return MapPaginated(page, ticketDetail), nil
}

// Detail returns one joined ticket, or ErrNotFound when the ticket or any
// of its inner-joined references is gone.
func (r *TicketRepository) Detail(ctx context.Context, id uint) (*TicketDetail, error) {
	page, err := r.Details(ctx, TicketFilter{ID: id}, NewPage(1, 1))
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, wrapNotFound(gorm.ErrRecordNotFound, "ticket", id)
	}
	return &page.Data[0], nil
}

func ticketDetail(t models.Ticket) TicketDetail {
	d := TicketDetail{Ticket: t, Client: t.Client}
	if t.Appointment != nil {
		d.Appointment = TicketAppointment{
			Appointment:     *t.Appointment,
			ServiceProvider: t.Appointment.ServiceProvider,
		}
	}
	return d
}
