package hotel

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentReceipt is returned by a successful payment.
type PaymentReceipt struct {
	Ref    string
	Amount decimal.Decimal
	PaidAt time.Time
}

// PaymentProcessor charges the total of a booking before it is committed.
// A non-nil error aborts the booking.
type PaymentProcessor interface {
	Process(ctx context.Context, amount decimal.Decimal) (PaymentReceipt, error)
}

// DefaultPaymentDelay mimics the latency of a card terminal.
const DefaultPaymentDelay = time.Second

// SimulatedPayment always succeeds after Delay.  The wait ignores ctx so a
// payment that has started is never abandoned half way.
type SimulatedPayment struct {
	Delay time.Duration
}

func (p SimulatedPayment) Process(_ context.Context, amount decimal.Decimal) (PaymentReceipt, error) {
	log.Printf("payment: processing %s", amount.StringFixed(2))
	if p.Delay > 0 {
		time.Sleep(p.Delay)
	}
	ref := "PAY-" + uuid.New().String()[:8]
	log.Printf("payment: %s successful", ref)
	return PaymentReceipt{Ref: ref, Amount: amount, PaidAt: time.Now().UTC()}, nil
}

// PaymentFunc adapts a plain function to PaymentProcessor.
type PaymentFunc func(ctx context.Context, amount decimal.Decimal) (PaymentReceipt, error)

func (f PaymentFunc) Process(ctx context.Context, amount decimal.Decimal) (PaymentReceipt, error) {
	return f(ctx, amount)
}
