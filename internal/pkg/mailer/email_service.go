package mailer

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(toEmail, sessionToken, utterance string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEscalationAlert(toEmail, sessionToken, utterance string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Chat escalation: specialist follow-up needed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A customer question needs a specialist</h2>
			<p>The assistant could not answer from the knowledge base and told the customer a specialist will follow up.</p>
			<p><strong>Session:</strong> %s</p>
			<p><strong>Customer message:</strong></p>
			<blockquote style="border-left: 4px solid #007BFF; padding-left: 12px; color: #555;">%s</blockquote>
			<p>Please pick this conversation up from the support dashboard.</p>
		</div>
	`, html.EscapeString(sessionToken), html.EscapeString(utterance))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation alert sent to %s\n", toEmail)
	return nil
}
