package notifications

import (
	"fmt"
	"net/smtp"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/CianCode/Emetals-Web-App/domain"
)

// NotifierImpl implements domain.NotificationService. Email goes out over
// SMTP, SMS over Twilio. Either channel falls back to printing the message
// when its transport is not configured, so local development works without
// credentials.
type NotifierImpl struct {
	smtpHost   string
	smtpPort   int
	smtpUser   string
	smtpPass   string
	from       string
	twilio     *twilio.RestClient
	fromNumber string
}

type SMTPSettings struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type TwilioSettings struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NewNotifier creates a new notification service
func NewNotifier(smtpCfg SMTPSettings, twilioCfg TwilioSettings) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: twilioCfg.AccountSID,
		Password: twilioCfg.AuthToken,
	})

	return &NotifierImpl{
		smtpHost:   smtpCfg.Host,
		smtpPort:   smtpCfg.Port,
		smtpUser:   smtpCfg.User,
		smtpPass:   smtpCfg.Pass,
		from:       smtpCfg.From,
		twilio:     client,
		fromNumber: twilioCfg.FromNumber,
	}
}

// SendEmail implements domain.NotificationService
func (n *NotifierImpl) SendEmail(to, subject, body string) error {
	if n.smtpUser == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s, Body: %s\n", to, subject, body)
		return nil
	}

	msg := []byte("From: " + n.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", n.smtpHost, n.smtpPort)
	auth := smtp.PlainAuth("", n.smtpUser, n.smtpPass, n.smtpHost)
	if err := smtp.SendMail(addr, auth, n.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendSMS implements domain.NotificationService
func (n *NotifierImpl) SendSMS(to, message string) error {
	if n.fromNumber == "" {
		fmt.Printf("[MOCK SMS] To: %s, Message: %s\n", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.fromNumber)
	params.SetBody(message)

	if _, err := n.twilio.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
