package repository

import (
	"context"

	"github.com/meinhoongagan/servicehub/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func selectUser(columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(append([]string{"id"}, columns...))
	}
}

// Create stores the message and returns it with sender and receiver
// resolved to name, email and role.
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) (*MessageView, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}

	var stored models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender", selectUser("name", "email", "role")).
		Preload("Receiver", selectUser("name", "email", "role")).
		First(&stored, m.ID).Error
	if err != nil {
		return nil, wrapNotFound(err, "message", m.ID)
	}
	return &MessageView{
		Message:  stored,
		Sender:   nullable(summarize(stored.Sender)),
		Receiver: nullable(summarize(stored.Receiver)),
	}, nil
}

// ByAppointment returns the appointment's chat in timestamp order.
func (r *MessageRepository) ByAppointment(ctx context.Context, appointmentID uint) ([]MessageView, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Preload("Sender", selectUser("name")).
		Preload("Receiver", selectUser("name")).
		Order("timestamp asc").
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]MessageView, 0, len(rows))
	for _, m := range rows {
		out = append(out, MessageView{
			Message:  m,
			Sender:   nullable(summarize(m.Sender)),
			Receiver: nullable(summarize(m.Receiver)),
		})
	}
	return out, nil
}

// Between returns every message exchanged by the two users in either
// direction, in timestamp order. Only the sender is resolved.
func (r *MessageRepository) Between(ctx context.Context, user1, user2 uint) ([]MessageView, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", user1, user2, user2, user1).
		Preload("Sender", selectUser("name")).
		Order("timestamp asc").
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]MessageView, 0, len(rows))
	for _, m := range rows {
		out = append(out, MessageView{
			Message:  m,
			Sender:   nullable(summarize(m.Sender)),
			Receiver: m.ReceiverID,
		})
	}
	return out, nil
}

// ChatClients lists each distinct user who has written to the provider, in
// the order of their first message. Messages from deleted users are skipped.
func (r *MessageRepository) ChatClients(ctx context.Context, providerID uint) ([]ChatClient, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ?", providerID).
		Preload("Sender", selectUser("name", "email")).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	clients := make([]ChatClient, 0)
	for _, m := range rows {
		if m.Sender == nil || seen[m.Sender.ID] {
			continue
		}
		seen[m.Sender.ID] = true

		apptID, err := firstAppointmentBetween(r.db.WithContext(ctx), m.Sender.ID, providerID)
		if err != nil {
			return nil, err
		}
		clients = append(clients, ChatClient{
			ID:            m.Sender.ID,
			Name:          m.Sender.Name,
			Email:         m.Sender.Email,
			AppointmentID: apptID,
		})
	}
	return clients, nil
}
