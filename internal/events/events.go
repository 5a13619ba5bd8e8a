// Package events publishes domain events to RabbitMQ for downstream
// consumers (CRM sync, analytics).
package events

import (
	"time"

	"github.com/bizmodel-ai/backend/internal/models"
)

// Routing keys on the topic exchange.
const (
	EventTypeQuizAttemptRecorded = "quiz.attempt.recorded"
	EventTypePaymentCompleted    = "payment.completed"
	EventTypeResultsEmailed      = "results.emailed"
)

type QuizAttemptEvent struct {
	EventType            string `json:"eventType"`
	UserID               int64  `json:"userId"`
	AttemptID            int64  `json:"attemptId"`
	State                string `json:"state"`
	HasAccessPass        bool   `json:"hasAccessPass"`
	QuizRetakesRemaining int    `json:"quizRetakesRemaining"`
	Timestamp            int64  `json:"timestamp"`
}

type PaymentEvent struct {
	EventType      string             `json:"eventType"`
	PaymentID      int64              `json:"paymentId"`
	UserID         int64              `json:"userId"`
	Type           models.PaymentType `json:"type"`
	AmountCents    int64              `json:"amountCents"`
	Currency       string             `json:"currency"`
	RetakesGranted int                `json:"retakesGranted"`
	Reference      string             `json:"reference"`
	Timestamp      int64              `json:"timestamp"`
}

// EmailEvent carries no address; consumers only need the kind and session.
type EmailEvent struct {
	EventType string `json:"eventType"`
	Kind      string `json:"kind"`
	SessionID string `json:"sessionId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func NewQuizAttemptEvent(attempt *models.QuizAttempt, user *models.User, state string) *QuizAttemptEvent {
	return &QuizAttemptEvent{
		EventType:            EventTypeQuizAttemptRecorded,
		UserID:               user.ID,
		AttemptID:            attempt.ID,
		State:                state,
		HasAccessPass:        user.HasAccessPass,
		QuizRetakesRemaining: user.QuizRetakesRemaining,
		Timestamp:            time.Now().Unix(),
	}
}

func NewPaymentEvent(p *models.Payment) *PaymentEvent {
	return &PaymentEvent{
		EventType:      EventTypePaymentCompleted,
		PaymentID:      p.ID,
		UserID:         p.UserID,
		Type:           p.Type,
		AmountCents:    p.AmountCents,
		Currency:       p.Currency,
		RetakesGranted: p.RetakesGranted,
		Reference:      p.Reference,
		Timestamp:      time.Now().Unix(),
	}
}

func NewEmailEvent(kind, sessionID string) *EmailEvent {
	return &EmailEvent{
		EventType: EventTypeResultsEmailed,
		Kind:      kind,
		SessionID: sessionID,
		Timestamp: time.Now().Unix(),
	}
}
