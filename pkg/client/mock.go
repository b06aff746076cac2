package client

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"mentor-payments/pkg/payments/types"
)

// mockDelay is the fixed artificial latency each mock call waits, so the
// calling UI behaves the same as against a real backend.
const mockDelay = 500 * time.Millisecond

// MockClient is an API implementation that synthesizes plausible fake
// responses without contacting any external service. It backs static
// previews where the real handlers are unreachable. All identifiers and
// amounts are random and fictitious.
type MockClient struct{}

// NewMockClient creates a MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntentResponse, error) {
	if err := wait(ctx); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	id := fakeID("pi")
	return &types.PaymentIntentResponse{
		ClientSecret: id + "_secret_" + fakeToken(16),
		ID:           id,
		Amount:       req.Amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (m *MockClient) CreateRefund(ctx context.Context, req types.RefundRequest) (*types.RefundOutcome, error) {
	if err := wait(ctx); err != nil {
		return nil, err
	}

	return &types.RefundOutcome{
		RefundID:        fakeID("re"),
		PaymentIntentID: req.PaymentIntentID,
		Amount:          rand.Int63n(10000) + 500,
		Status:          "succeeded",
		Created:         time.Now().Unix(),
	}, nil
}

func (m *MockClient) CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccountResponse, error) {
	if err := wait(ctx); err != nil {
		return nil, err
	}

	id := fakeID("acct")
	return &types.ConnectAccountResponse{
		AccountID:   id,
		Status:      "pending",
		AccountLink: "https://connect.stripe.com/setup/e/" + id + "/" + fakeToken(12),
	}, nil
}

func (m *MockClient) MentorBalance(ctx context.Context, mentorID string) (*types.BalanceResponse, error) {
	if err := wait(ctx); err != nil {
		return nil, err
	}

	return &types.BalanceResponse{
		Available: []types.BalanceAmount{
			{Amount: rand.Int63n(50000), Currency: "usd"},
		},
		Pending: []types.BalanceAmount{
			{Amount: rand.Int63n(20000), Currency: "usd"},
		},
		InstantAvailable: []types.BalanceAmount{},
	}, nil
}

func (m *MockClient) SendWebhookEvent(ctx context.Context, payload []byte, signature string) (*types.WebhookAck, error) {
	if err := wait(ctx); err != nil {
		return nil, err
	}

	return &types.WebhookAck{Received: true}, nil
}

func wait(ctx context.Context) error {
	select {
	case <-time.After(mockDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fakeID(prefix string) string {
	return prefix + "_" + fakeToken(24)
}

func fakeToken(n int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n < len(token) {
		token = token[:n]
	}
	return token
}
