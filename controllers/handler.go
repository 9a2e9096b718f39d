package controllers

import (
	"context"
	"time"

	"github.com/meinhoongagan/servicehub/notify"
	"github.com/meinhoongagan/servicehub/repository"
	"github.com/meinhoongagan/servicehub/storage"
	"gorm.io/gorm"
)

// TokenRevoker denies a token id until the token would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
}

// Handler serves every route. Its collaborators are set once at startup.
type Handler struct {
	Users        *repository.UserRepository
	Categories   *repository.CategoryRepository
	Services     *repository.ServiceRepository
	Employees    *repository.EmployeeRepository
	Appointments *repository.AppointmentRepository
	Tickets      *repository.TicketRepository
	Reviews      *repository.ReviewRepository
	Messages     *repository.MessageRepository
	FileRemovals *repository.FileRemovalRepository

	Images   storage.ImageStore
	Tokens   TokenRevoker
	Notifier notify.Notifier

	JWTSecret []byte
	JWTTTL    time.Duration
	Location  *time.Location
	Now       func() time.Time
}

// NewHandler wires the repositories over gdb. Images and JWTSecret must be
// set by the caller; the remaining collaborators default to no-ops.
func NewHandler(gdb *gorm.DB) *Handler {
	return &Handler{
		Users:        repository.NewUserRepository(gdb),
		Categories:   repository.NewCategoryRepository(gdb),
		Services:     repository.NewServiceRepository(gdb),
		Employees:    repository.NewEmployeeRepository(gdb),
		Appointments: repository.NewAppointmentRepository(gdb),
		Tickets:      repository.NewTicketRepository(gdb),
		Reviews:      repository.NewReviewRepository(gdb),
		Messages:     repository.NewMessageRepository(gdb),
		FileRemovals: repository.NewFileRemovalRepository(gdb),

		Tokens:   nopRevoker{},
		Notifier: notify.Nop{},
		JWTTTL:   24 * time.Hour,
		Location: time.UTC,
		Now:      time.Now,
	}
}

type nopRevoker struct{}

func (nopRevoker) Revoke(context.Context, string, time.Time) error { return nil }
