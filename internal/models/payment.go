package models

import "time"

type PaymentType string

const (
	PaymentAccessPass   PaymentType = "access_pass"
	PaymentRetakeBundle PaymentType = "retake_bundle"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type Payment struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId"`
	AmountCents    int64         `json:"-"`
	Amount         string        `json:"amount"`
	Currency       string        `json:"currency"`
	Type           PaymentType   `json:"type"`
	Status         PaymentStatus `json:"status"`
	RetakesGranted int           `json:"retakesGranted"`
	Reference      string        `json:"reference"`
	CreatedAt      time.Time     `json:"createdAt"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
}

type PurchaseRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

type PurchaseResponse struct {
	Success   bool   `json:"success"`
	PaymentID int64  `json:"paymentId"`
	Message   string `json:"message"`
}
