package models

import "time"

// SessionEmail is the address an unpaid visitor left for a quiz session.
type SessionEmail struct {
	ID        int64       `json:"id"`
	SessionID string      `json:"sessionId"`
	Email     string      `json:"email"`
	QuizData  QuizAnswers `json:"quizData"`
	CreatedAt time.Time   `json:"createdAt"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailResultsRequest struct {
	Email    string       `json:"email" validate:"required,email"`
	QuizData *QuizAnswers `json:"quizData" validate:"required"`
}

type SessionEmailRequest struct {
	SessionID  string       `json:"sessionId" validate:"required"`
	Email      string       `json:"email" validate:"omitempty,email"`
	QuizData   *QuizAnswers `json:"quizData" validate:"required"`
	IsPaidUser bool         `json:"isPaidUser"`
}

type ReportRequest struct {
	QuizData  *QuizAnswers `json:"quizData" validate:"required"`
	UserEmail string       `json:"userEmail" validate:"omitempty,email"`
}

type StoredEmailResponse struct {
	Email *string `json:"email"`
}
