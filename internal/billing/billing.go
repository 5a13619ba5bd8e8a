// Package billing prices the quiz-retake products and charges for them.
package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bizmodel-ai/backend/internal/models"
)

const (
	Currency           = "usd"
	RetakesPerPurchase = 5
)

type Product struct {
	Type        models.PaymentType
	AmountCents int64
	Currency    string
	Retakes     int
	Description string
}

var products = map[models.PaymentType]Product{
	models.PaymentAccessPass: {
		Type:        models.PaymentAccessPass,
		AmountCents: 999,
		Currency:    Currency,
		Retakes:     RetakesPerPurchase,
		Description: "BizModelAI access pass",
	},
	models.PaymentRetakeBundle: {
		Type:        models.PaymentRetakeBundle,
		AmountCents: 499,
		Currency:    Currency,
		Retakes:     RetakesPerPurchase,
		Description: "BizModelAI quiz retake bundle",
	},
}

// ProductFor returns the price list entry for a payment type.
func ProductFor(t models.PaymentType) (Product, error) {
	p, ok := products[t]
	if !ok {
		return Product{}, fmt.Errorf("unknown product %q", t)
	}
	return p, nil
}

// FormatAmount renders cents as a decimal string, e.g. 999 -> "9.99".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ── Gateway ────────────────────────────────────────────────

type ChargeRequest struct {
	PaymentID      int64
	UserID         int64
	AmountCents    int64
	Currency       string
	Description    string
	IdempotencyKey string
}

type ChargeResult struct {
	Reference string
}

// Gateway takes the money. Implementations must be idempotent on
// ChargeRequest.IdempotencyKey.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// SimulatedGateway approves every charge synchronously. No real payment
// provider is integrated yet.
type SimulatedGateway struct{}

func (SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{}, err
	}
	if req.AmountCents <= 0 {
		return ChargeResult{}, fmt.Errorf("invalid charge amount %d", req.AmountCents)
	}
	return ChargeResult{Reference: "sim_" + uuid.NewString()}, nil
}

// NewIdempotencyKey returns a fresh key for a charge attempt.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
