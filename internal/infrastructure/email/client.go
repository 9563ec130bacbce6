// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/email/templates"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendContactNotification(msg *content.ContactMessage) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	inbox     string
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendClient{
		client:    resend.NewClient(config.ResendAPIKey),
		inbox:     config.ContactInbox,
		fromEmail: config.EmailFromAddr,
		fromName:  config.EmailFromName,
	}, nil
}

// SendContactNotification relays a contact-form submission to the company inbox.
func (c *ResendClient) SendContactNotification(msg *content.ContactMessage) error {
	subject := "Liên hệ mới từ website VRC"
	if msg.Subject != "" {
		subject = fmt.Sprintf("Liên hệ mới: %s", msg.Subject)
	}

	content := templates.GetContactEmailContent(templates.ContactEmailProps{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Preheader: subject,
		Content:   content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.inbox},
		ReplyTo: msg.Email,
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send contact notification via Resend: %w", err)
	}

	return nil
}
