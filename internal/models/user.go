package models

import "time"

// User is both the account record and the per-user quiz entitlement.
type User struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Email                *string   `json:"email,omitempty"`
	Password             string    `json:"-"`
	HasAccessPass        bool      `json:"hasAccessPass"`
	QuizRetakesRemaining int       `json:"quizRetakesRemaining"`
	TotalQuizRetakesUsed int       `json:"totalQuizRetakesUsed"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
