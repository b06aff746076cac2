package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"mentor-payments/pkg/payments/types"
)

// The mock's outputs are random and fictitious; these tests only pin the
// response shapes and the artificial delay behavior.

func TestMockClient_ShapesMatchRealResponses(t *testing.T) {
	t.Parallel()

	mock := NewMockClient()
	ctx := context.Background()

	pi, err := mock.CreatePaymentIntent(ctx, types.PaymentIntentRequest{Amount: 2500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(pi.ID, "pi_") {
		t.Errorf("expected pi_ prefixed id, got %q", pi.ID)
	}
	if pi.Amount != 2500 {
		t.Errorf("expected amount echoed back, got %d", pi.Amount)
	}
	if pi.Currency != "usd" {
		t.Errorf("expected defaulted currency, got %q", pi.Currency)
	}
	if pi.ClientSecret == "" {
		t.Error("expected a client secret")
	}

	refund, err := mock.CreateRefund(ctx, types.RefundRequest{PaymentIntentID: "pi_x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(refund.RefundID, "re_") {
		t.Errorf("expected re_ prefixed refund id, got %q", refund.RefundID)
	}
	if refund.PaymentIntentID != "pi_x" {
		t.Errorf("expected parent reference pi_x, got %q", refund.PaymentIntentID)
	}

	acct, err := mock.CreateConnectAccount(ctx, types.ConnectAccountRequest{MentorID: "m1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(acct.AccountID, "acct_") {
		t.Errorf("expected acct_ prefixed id, got %q", acct.AccountID)
	}
	if acct.AccountLink == "" {
		t.Error("expected an onboarding link")
	}

	bal, err := mock.MentorBalance(ctx, "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal.InstantAvailable == nil {
		t.Error("expected instant_available present as an empty list")
	}

	ack, err := mock.SendWebhookEvent(ctx, []byte(`{}`), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ack.Received {
		t.Error("expected received ack")
	}
}

func TestMockClient_WaitsArtificialDelay(t *testing.T) {
	t.Parallel()

	mock := NewMockClient()

	start := time.Now()
	if _, err := mock.MentorBalance(context.Background(), "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < mockDelay {
		t.Errorf("expected at least %v delay, got %v", mockDelay, elapsed)
	}
}

func TestMockClient_HonorsContextCancellation(t *testing.T) {
	t.Parallel()

	mock := NewMockClient()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := mock.CreatePaymentIntent(ctx, types.PaymentIntentRequest{Amount: 100}); err == nil {
		t.Fatal("expected context deadline error")
	}
}
