package service

import (
	"errors"
	"fmt"

	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/AvancyBrasil/API-Find/pkg/util"
)

var (
	ErrEmailSend          = errors.New("failed to send email")
	ErrInvalidEmailHeader = errors.New("email recipient or subject contains line break")
)

type EmailService interface {
	Send(to, subject, message string) error
}

type emailService struct {
	mailer util.Mailer
}

func NewEmailService(mailer util.Mailer) EmailService {
	return &emailService{mailer: mailer}
}

func (s *emailService) Send(to, subject, message string) error {
	if err := requireFields(map[string]*string{
		"to":      &to,
		"subject": &subject,
		"message": &message,
	}); err != nil {
		return err
	}
	if util.HasLineBreak(to) || util.HasLineBreak(subject) {
		logger.Warn("Email rejected: line break in header field", map[string]interface{}{
			"to": to,
		})
		return ErrInvalidEmailHeader
	}

	if err := s.mailer.Send(to, subject, message); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to": to,
		})
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
