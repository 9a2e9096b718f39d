package repository

import "github.com/meinhoongagan/servicehub/models"

// UserSummary is the field-limited projection of a user used inside reviews
// and chat messages.
type UserSummary struct {
	ID    uint   `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

func summarize(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

// ServiceDetail is a service with its category resolved, or null when the
// category no longer exists.
type ServiceDetail struct {
	models.Service
	CategoryDetails *models.Category `json:"categoryDetails"`
}

// ServiceWithCategories keeps the joined category as a list, as the bulk
// listing has always returned it.
type ServiceWithCategories struct {
	models.Service
	CategoryDetails []models.Category `json:"categoryDetails"`
}

// AppointmentDetail inflates both parties of an appointment. A party that
// no longer exists is null.
type AppointmentDetail struct {
	models.Appointment
	Client          *models.User `json:"client"`
	ServiceProvider *models.User `json:"serviceProvider"`
}

func appointmentDetail(a models.Appointment) AppointmentDetail {
	return AppointmentDetail{Appointment: a, Client: a.Client, ServiceProvider: a.ServiceProvider}
}

// TicketAppointment is the appointment embedded in a ticket view. Only the
// provider is inflated; client stays an id.
type TicketAppointment struct {
	models.Appointment
	ServiceProvider *models.User `json:"serviceProvider"`
}

type TicketDetail struct {
	models.Ticket
	Client      *models.User      `json:"client"`
	Appointment TicketAppointment `json:"appointment"`
}

// ReviewDetail holds each reference either as its id or as its joined
// document, depending on the listing. A joined reference that no longer
// resolves is null.
type ReviewDetail struct {
	models.Review
	Client          interface{} `json:"client"`
	Appointment     interface{} `json:"appointment"`
	ServiceProvider interface{} `json:"serviceProvider"`
}

// MessageView is a chat message whose sender and receiver are either ids or
// user summaries.
type MessageView struct {
	models.Message
	Sender   interface{} `json:"sender"`
	Receiver interface{} `json:"receiver"`
}

// ChatClient is a user who has written to a provider, with the first
// appointment that links the two (null when there is none).
type ChatClient struct {
	ID            uint   `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AppointmentID *uint  `json:"appointmentId"`
}

// nullable turns a nil pointer into an untyped nil so it encodes as null
// inside an interface{} field.
func nullable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return v
}
