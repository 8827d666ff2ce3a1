package mocks

import (
	"github.com/CianCode/Emetals-Web-App/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, body string) error
	SendSMSFunc   func(to, message string) error

	// SentEmails and SentSMS record deliveries for assertions.
	SentEmails []SentEmail
	SentSMS    []SentSMS
}

// SentEmail is one recorded email delivery
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// SentSMS is one recorded text delivery
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail delivers an email
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	// Default behavior: success
	return nil
}

// SendSMS delivers a text message
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.SentSMS = append(m.SentSMS, SentSMS{To: to, Message: message})
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
