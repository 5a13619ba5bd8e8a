package billing

import (
	"context"
	"strings"
	"testing"

	"github.com/bizmodel-ai/backend/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{999, "9.99"},
		{499, "4.99"},
		{5, "0.05"},
		{1000, "10.00"},
		{0, "0.00"},
		{-250, "-2.50"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.cents); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestProductFor(t *testing.T) {
	pass, err := ProductFor(models.PaymentAccessPass)
	if err != nil || pass.AmountCents != 999 || pass.Retakes != 5 || pass.Currency != "usd" {
		t.Errorf("access pass = %+v, %v", pass, err)
	}
	bundle, err := ProductFor(models.PaymentRetakeBundle)
	if err != nil || bundle.AmountCents != 499 || bundle.Retakes != 5 {
		t.Errorf("retake bundle = %+v, %v", bundle, err)
	}
	if _, err := ProductFor("gift_card"); err == nil {
		t.Error("expected error for unknown product")
	}
}

func TestSimulatedGateway(t *testing.T) {
	g := SimulatedGateway{}
	res, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 999, Currency: Currency})
	if err != nil {
		t.Fatalf("Charge() error: %v", err)
	}
	if !strings.HasPrefix(res.Reference, "sim_") {
		t.Errorf("reference = %q", res.Reference)
	}

	if _, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 0}); err == nil {
		t.Error("expected error for zero amount")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Charge(ctx, ChargeRequest{AmountCents: 999}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
