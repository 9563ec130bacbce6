package services

import (
	"fmt"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/domain/entities/content"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/email"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

// ContactService relays contact-form submissions to the company inbox.
type ContactService struct {
	emailService email.Service
	logger       *logging.ChanneledLogger
}

// NewContactService creates a new contact service singleton
func NewContactService(emailService email.Service, logger *logging.ChanneledLogger) *ContactService {
	return &ContactService{
		emailService: emailService,
		logger:       logger,
	}
}

// Submit validates and relays one contact-form submission
func (s *ContactService) Submit(msg *content.ContactMessage) error {
	if msg == nil {
		return fmt.Errorf("contact message cannot be nil")
	}
	if s.emailService == nil {
		s.logger.Email().Warn("Contact submission dropped, email service not configured", "from", msg.Email)
		return fmt.Errorf("email service is not configured")
	}

	start := time.Now()
	if err := s.emailService.SendContactNotification(msg); err != nil {
		s.logger.Email().Error("Contact notification failed", "from", msg.Email, "error", err.Error())
		return err
	}

	s.logger.Email().Info("Contact notification sent", "from", msg.Email, "duration", time.Since(start))
	return nil
}
