package hotel

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSimulatedPaymentSucceeds(t *testing.T) {
	amount := decimal.NewFromInt(3500)
	receipt, err := SimulatedPayment{}.Process(context.Background(), amount)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.HasPrefix(receipt.Ref, "PAY-") || len(receipt.Ref) != len("PAY-")+8 {
		t.Errorf("unexpected ref %q", receipt.Ref)
	}
	if !receipt.Amount.Equal(amount) {
		t.Errorf("Amount = %s, want %s", receipt.Amount, amount)
	}
}

func TestSimulatedPaymentIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	delay := 20 * time.Millisecond
	start := time.Now()
	if _, err := (SimulatedPayment{Delay: delay}).Process(ctx, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("returned after %v, want at least %v", elapsed, delay)
	}
}
