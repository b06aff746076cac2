// Package providers contains the payment-processor integrations.
package providers

import (
	"context"

	"mentor-payments/pkg/payments/types"
)

// PaymentProvider is the set of processor operations the handlers need.
// Implementations must be safe for concurrent use.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error)
	CreateRefund(ctx context.Context, paymentIntentID, reason string) (*types.Refund, error)
	CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccount, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	GetConnectedBalance(ctx context.Context, accountID string) (*types.BalanceResponse, error)
	VerifyWebhookEvent(payload []byte, sigHeader string) (*types.WebhookEvent, error)
}
