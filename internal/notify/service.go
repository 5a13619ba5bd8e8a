package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/events"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
	"github.com/bizmodel-ai/backend/internal/report"
)

const (
	KindQuizResults = "quiz_results"
	KindWelcome     = "welcome"
	KindFullReport  = "full_report"
)

// EmailStore remembers one address per anonymous quiz session.
type EmailStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionEmail, error)
	Save(ctx context.Context, sessionID, email string, answers *models.QuizAnswers) (string, error)
}

type Service struct {
	mailer   Mailer
	store    EmailStore
	renderer *report.Renderer
	events   events.Publisher
	log      *zap.Logger
}

func NewService(mailer Mailer, store EmailStore, renderer *report.Renderer, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{mailer: mailer, store: store, renderer: renderer, events: publisher, log: log}
}

// Report renders the downloadable business report.
func (s *Service) Report(answers *models.QuizAnswers, userEmail string) ([]byte, error) {
	body, err := s.renderer.Render(s.renderer.Build(answers, userEmail))
	if err != nil {
		return nil, &apperr.Error{
			Kind:    apperr.KindInternal,
			Message: "Failed to generate PDF",
			Details: []string{err.Error()},
			Err:     err,
		}
	}
	return body, nil
}

func (s *Service) SendQuizResults(ctx context.Context, email string, answers *models.QuizAnswers) error {
	body, err := s.renderer.ResultsEmail(s.renderer.Build(answers, email))
	if err != nil {
		return apperr.Internal("Failed to send email", err)
	}
	return s.send(ctx, KindQuizResults, Message{
		To:      email,
		Subject: "Your BizModelAI Quiz Results",
		HTML:    body,
	})
}

func (s *Service) SendWelcome(ctx context.Context, email string) error {
	body, err := s.renderer.WelcomeEmail()
	if err != nil {
		return apperr.Internal("Failed to send email", err)
	}
	return s.send(ctx, KindWelcome, Message{
		To:      email,
		Subject: "Welcome to BizModelAI",
		HTML:    body,
	})
}

func (s *Service) SendFullReport(ctx context.Context, email string, answers *models.QuizAnswers) error {
	body, err := s.renderer.Render(s.renderer.Build(answers, email))
	if err != nil {
		return apperr.Internal("Failed to send email", err)
	}
	return s.send(ctx, KindFullReport, Message{
		To:      email,
		Subject: "Your Complete BizModelAI Business Report",
		HTML:    body,
	})
}

// EmailResults delivers results for a quiz session and returns the message
// shown to the visitor. Paid users get the full report. Anonymous sessions
// keep the first address they give and later requests go there.
func (s *Service) EmailResults(ctx context.Context, req models.SessionEmailRequest) (string, error) {
	if req.IsPaidUser {
		if req.Email == "" {
			return "", apperr.Validation("Email is required")
		}
		if err := s.SendFullReport(ctx, req.Email, req.QuizData); err != nil {
			return "", apperr.Internal("Failed to send full report", err)
		}
		s.publish(ctx, KindFullReport, req.SessionID)
		return "Full report sent successfully", nil
	}

	stored, err := s.store.Get(ctx, req.SessionID)
	switch {
	case err == nil:
		if err := s.SendQuizResults(ctx, stored.Email, req.QuizData); err != nil {
			return "", err
		}
		s.publish(ctx, KindQuizResults, req.SessionID)
		return "Results sent to your email again", nil
	case !errors.Is(err, ErrNoStoredEmail):
		return "", fmt.Errorf("look up session %s: %w", req.SessionID, err)
	}

	if req.Email == "" {
		return "", apperr.Validation("Email is required for new users")
	}
	to, err := s.store.Save(ctx, req.SessionID, req.Email, req.QuizData)
	if err != nil {
		return "", err
	}
	if err := s.SendQuizResults(ctx, to, req.QuizData); err != nil {
		return "", err
	}
	s.publish(ctx, KindQuizResults, req.SessionID)
	return "Results sent to your email", nil
}

// StoredEmail returns the address kept for a session, or nil.
func (s *Service) StoredEmail(ctx context.Context, sessionID string) (*string, error) {
	stored, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ErrNoStoredEmail) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up session %s: %w", sessionID, err)
	}
	return &stored.Email, nil
}

func (s *Service) send(ctx context.Context, kind string, msg Message) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsTotal.WithLabelValues(kind, "failed").Inc()
		return apperr.Internal("Failed to send email", err)
	}
	metrics.EmailsTotal.WithLabelValues(kind, "sent").Inc()
	s.log.Info("email sent", zap.String("kind", kind))
	return nil
}

func (s *Service) publish(ctx context.Context, kind, sessionID string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.EventTypeResultsEmailed, events.NewEmailEvent(kind, sessionID)); err != nil {
		s.log.Warn("failed to publish event", zap.String("routing_key", events.EventTypeResultsEmailed), zap.Error(err))
	}
}
