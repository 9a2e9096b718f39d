package notify

import (
	"context"
	"errors"
	"time"
)

// TicketEscalatedEvent is emitted when a ticket is sent to the administrators.
type TicketEscalatedEvent struct {
	TicketID      uint      `json:"ticketId"`
	ClientID      uint      `json:"clientId"`
	ClientName    string    `json:"clientName"`
	ClientEmail   string    `json:"clientEmail"`
	AppointmentID uint      `json:"appointmentId"`
	ProviderName  string    `json:"providerName,omitempty"`
	Message       string    `json:"message"`
	EscalatedAt   time.Time `json:"escalatedAt"`
}

// AppointmentReminderEvent describes an appointment starting soon.
type AppointmentReminderEvent struct {
	AppointmentID uint      `json:"appointmentId"`
	ClientName    string    `json:"clientName"`
	ClientEmail   string    `json:"clientEmail"`
	ProviderName  string    `json:"providerName"`
	StartsAt      time.Time `json:"startsAt"`
	Fees          float64   `json:"fees"`
}

// Notifier delivers out-of-band notifications. Callers log failures and
// carry on; a notification never changes the outcome of a request.
type Notifier interface {
	TicketEscalated(ctx context.Context, ev TicketEscalatedEvent) error
	AppointmentReminder(ctx context.Context, ev AppointmentReminderEvent) error
}

type Nop struct{}

func (Nop) TicketEscalated(context.Context, TicketEscalatedEvent) error         { return nil }
func (Nop) AppointmentReminder(context.Context, AppointmentReminderEvent) error { return nil }

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) TicketEscalated(ctx context.Context, ev TicketEscalatedEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.TicketEscalated(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) AppointmentReminder(ctx context.Context, ev AppointmentReminderEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.AppointmentReminder(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
