package contact

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=contact_service.go -destination=mock/contact_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitContactRequest) (ContactResponse, error)
}

type service struct {
	repo   Repository
	mailer Mailer
	logger *zap.Logger
}

func NewService(repo Repository, mailer Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("contact.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contact.service")
	}
	return &service{repo: repo, mailer: mailer, logger: l}
}

func (s *service) Submit(ctx context.Context, req SubmitContactRequest) (ContactResponse, error) {
	msg := &ContactMessage{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("store contact message failed", zap.Error(err))
		return ContactResponse{}, err
	}

	// Delivery failure must not fail the submission; the row is the
	// source of truth and the email just a convenience.
	if s.mailer != nil {
		go func(m ContactMessage) {
			if err := s.mailer.NotifyContactMessage(&m); err != nil {
				s.logger.Warn("contact notification not delivered", zap.String("contact_id", m.ID.String()))
			}
		}(*msg)
	}

	s.logger.Info("contact message stored", zap.String("contact_id", msg.ID.String()))
	return ContactResponse{ID: msg.ID.String()}, nil
}
