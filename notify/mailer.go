package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Mailer sends notifications over SMTP.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewMailer(host string, port int, user, pass, adminEmail string) *Mailer {
	return &Mailer{
		dialer:     gomail.NewDialer(host, port, user, pass),
		from:       user,
		adminEmail: adminEmail,
	}
}

var escalationTmpl = template.Must(template.New("escalation").Parse(`
<p>A ticket has been sent to the administrators.</p>
<ul>
	<li><strong>Ticket:</strong> #{{.TicketID}}</li>
	<li><strong>Client:</strong> {{.ClientName}} ({{.ClientEmail}})</li>
	<li><strong>Appointment:</strong> #{{.AppointmentID}}</li>
	{{if .ProviderName}}<li><strong>Provider:</strong> {{.ProviderName}}</li>{{end}}
</ul>
<p>{{.Message}}</p>
`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`
<p>Dear {{.ClientName}},</p>
<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
<ul>
	<li><strong>Provider:</strong> {{.ProviderName}}</li>
	<li><strong>Start Time:</strong> {{.StartsAt.Format "2006-01-02 15:04"}}</li>
	<li><strong>Fees:</strong> {{.Fees}}</li>
</ul>
<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
`))

func (m *Mailer) TicketEscalated(ctx context.Context, ev TicketEscalatedEvent) error {
	if m.adminEmail == "" {
		return nil
	}
	body, err := render(escalationTmpl, ev)
	if err != nil {
		return err
	}
	return m.send(ctx, m.adminEmail, fmt.Sprintf("Ticket #%d sent to admin", ev.TicketID), body)
}

func (m *Mailer) AppointmentReminder(ctx context.Context, ev AppointmentReminderEvent) error {
	if ev.ClientEmail == "" {
		return nil
	}
	body, err := render(reminderTmpl, ev)
	if err != nil {
		return err
	}
	return m.send(ctx, ev.ClientEmail, "Reminder: Upcoming Appointment", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
