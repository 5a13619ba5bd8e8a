package entitlement

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/apperr"
	"github.com/bizmodel-ai/backend/internal/billing"
	"github.com/bizmodel-ai/backend/internal/events"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/models"
)

// Repository is the persistence the service needs. RecordAttempt and
// Purchase must be atomic per user.
type Repository interface {
	EnsureUser(ctx context.Context, id int64) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	RecordAttempt(ctx context.Context, userID int64, answers *models.QuizAnswers) (*models.QuizAttempt, *models.User, error)
	ListAttempts(ctx context.Context, userID int64) ([]models.QuizAttempt, error)
	CountAttempts(ctx context.Context, userID int64) (int, error)
	Purchase(ctx context.Context, userID int64, product billing.Product, grant Transition, charge ChargeFunc) (*models.Payment, *models.User, error)
	ListPayments(ctx context.Context, userID int64) ([]models.Payment, error)
}

type Service struct {
	repo    Repository
	gateway billing.Gateway
	events  events.Publisher
	log     *zap.Logger
}

func NewService(repo Repository, gateway billing.Gateway, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, events: publisher, log: log}
}

// BuildStatus assembles the status snapshot for u.
func BuildStatus(u models.User, attempts int) *models.RetakeStatusResponse {
	return &models.RetakeStatusResponse{
		State:                string(StateOf(u)),
		CanRetake:            CanAttempt(u),
		AttemptsCount:        attempts,
		HasAccessPass:        u.HasAccessPass,
		QuizRetakesRemaining: u.QuizRetakesRemaining,
		TotalQuizRetakesUsed: u.TotalQuizRetakesUsed,
		IsFirstQuiz:          attempts == 0,
		IsFreeQuizUsed:       attempts > 0,
		IsGuestUser:          IsGuestUser(u),
	}
}

// Status reports the entitlement of userID, provisioning a guest for
// unknown ids.
func (s *Service) Status(ctx context.Context, userID int64) (*models.RetakeStatusResponse, error) {
	u, err := s.repo.EnsureUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure user %d: %w", userID, err)
	}

	n, err := s.repo.CountAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildStatus(*u, n), nil
}

func (s *Service) RecordAttempt(ctx context.Context, userID int64, answers *models.QuizAnswers) (*models.QuizAttempt, error) {
	attempt, u, err := s.repo.RecordAttempt(ctx, userID, answers)
	if errors.Is(err, ErrNoRetakesRemaining) {
		metrics.QuizAttemptsTotal.WithLabelValues("denied").Inc()
		s.log.Info("quiz attempt denied", zap.Int64("user_id", userID))
		return nil, apperr.Forbidden("No quiz retakes remaining. Purchase more retakes to continue.")
	}
	if err != nil {
		return nil, fmt.Errorf("record attempt for user %d: %w", userID, err)
	}

	metrics.QuizAttemptsTotal.WithLabelValues("recorded").Inc()
	state := StateOf(*u)
	s.log.Info("quiz attempt recorded",
		zap.Int64("user_id", userID),
		zap.Int64("attempt_id", attempt.ID),
		zap.String("state", string(state)),
		zap.Int("quiz_retakes_remaining", u.QuizRetakesRemaining),
	)
	s.publish(ctx, events.EventTypeQuizAttemptRecorded, events.NewQuizAttemptEvent(attempt, u, string(state)))
	return attempt, nil
}

func (s *Service) Attempts(ctx context.Context, userID int64) ([]models.QuizAttempt, error) {
	if _, err := s.repo.EnsureUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("ensure user %d: %w", userID, err)
	}
	return s.repo.ListAttempts(ctx, userID)
}

func (s *Service) PaymentHistory(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.repo.ListPayments(ctx, userID)
}

// ── Purchases ───────────────────────────────────────────

func (s *Service) BuyAccessPass(ctx context.Context, userID int64) (*models.Payment, error) {
	return s.purchase(ctx, userID, models.PaymentAccessPass, ApplyAccessPass)
}

func (s *Service) BuyRetakeBundle(ctx context.Context, userID int64) (*models.Payment, error) {
	return s.purchase(ctx, userID, models.PaymentRetakeBundle, ApplyRetakeBundle)
}

func (s *Service) purchase(ctx context.Context, userID int64, t models.PaymentType, grant Transition) (*models.Payment, error) {
	product, err := billing.ProductFor(t)
	if err != nil {
		return nil, err
	}

	key := billing.NewIdempotencyKey()
	charge := func(ctx context.Context, p *models.Payment) (string, error) {
		res, err := s.gateway.Charge(ctx, billing.ChargeRequest{
			PaymentID:      p.ID,
			UserID:         p.UserID,
			AmountCents:    p.AmountCents,
			Currency:       p.Currency,
			Description:    product.Description,
			IdempotencyKey: key,
		})
		if err != nil {
			return "", err
		}
		return res.Reference, nil
	}

	p, u, err := s.repo.Purchase(ctx, userID, product, grant, charge)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return nil, apperr.NotFound("User not found")
	case errors.Is(err, ErrAccessPassHeld):
		return nil, apperr.Validation("User already has access pass")
	case errors.Is(err, ErrAccessPassRequired):
		return nil, apperr.Validation("User must have access pass first")
	case err != nil:
		return nil, fmt.Errorf("purchase %s for user %d: %w", t, userID, err)
	}

	metrics.PaymentsTotal.WithLabelValues(string(t)).Inc()
	s.log.Info("payment completed",
		zap.Int64("user_id", userID),
		zap.Int64("payment_id", p.ID),
		zap.String("type", string(t)),
		zap.Int("quiz_retakes_remaining", u.QuizRetakesRemaining),
	)
	s.publish(ctx, events.EventTypePaymentCompleted, events.NewPaymentEvent(p))
	return p, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, routingKey, event); err != nil {
		s.log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
