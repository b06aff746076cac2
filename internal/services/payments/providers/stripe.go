package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/account"
	"github.com/stripe/stripe-go/v84/accountlink"
	"github.com/stripe/stripe-go/v84/balance"
	"github.com/stripe/stripe-go/v84/paymentintent"
	"github.com/stripe/stripe-go/v84/refund"
	"github.com/stripe/stripe-go/v84/webhook"

	"mentor-payments/pkg/payments/types"
)

const mentorIDMetadataKey = "mentorId"

// StripeProvider implements PaymentProvider against the Stripe API.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the Stripe SDK with the given secret key.
// The webhook secret may be empty, which puts webhook verification into
// its unverified development mode.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	if secretKey == "" {
		panic("secretKey required for StripeProvider")
	}
	stripe.Key = secretKey

	return &StripeProvider{
		webhookSecret: webhookSecret,
	}
}

// CreatePaymentIntent reserves funds in manual capture mode. The capture
// itself happens out of band, after the session is delivered.
func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(req.Currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.MentorAccountID != "" {
		// Stored for later reconciliation only; this call does not route
		// funds to the sub-account.
		params.Metadata = map[string]string{
			"mentorStripeAccountId": req.MentorAccountID,
		}
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	return paymentIntentFromStripe(pi), nil
}

func (p *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving payment intent %s: %w", id, err)
	}

	return paymentIntentFromStripe(pi), nil
}

func (p *StripeProvider) CancelPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error) {
	params := &stripe.PaymentIntentCancelParams{}
	params.Params.Context = ctx

	pi, err := paymentintent.Cancel(id, params)
	if err != nil {
		return nil, fmt.Errorf("canceling payment intent %s: %w", id, err)
	}

	return paymentIntentFromStripe(pi), nil
}

func (p *StripeProvider) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*types.Refund, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Params.Context = ctx
	if reason != "" {
		params.Reason = stripe.String(reason)
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating refund for %s: %w", paymentIntentID, err)
	}

	return &types.Refund{
		ID:              r.ID,
		PaymentIntentID: paymentIntentID,
		Amount:          r.Amount,
		Status:          string(r.Status),
		Created:         r.Created,
	}, nil
}

func paymentIntentFromStripe(pi *stripe.PaymentIntent) *types.PaymentIntent {
	return &types.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}

// CreateConnectAccount creates an Express sub-account scoped to card
// payments and transfers for an individual, tagged with the mentor id.
func (p *StripeProvider) CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccount, error) {
	params := &stripe.AccountParams{
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String(req.Country),
		Email:        stripe.String(req.Email),
		BusinessType: stripe.String(string(stripe.AccountBusinessTypeIndividual)),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
		Metadata: map[string]string{
			mentorIDMetadataKey: req.MentorID,
		},
	}
	params.Params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating connect account: %w", err)
	}

	return &types.ConnectAccount{
		ID:               acct.ID,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}

// CreateAccountLink creates a single-use onboarding link for the account.
func (p *StripeProvider) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", fmt.Errorf("creating account link for %s: %w", accountID, err)
	}

	return link.URL, nil
}

// GetConnectedBalance queries the balance of a connected sub-account.
func (p *StripeProvider) GetConnectedBalance(ctx context.Context, accountID string) (*types.BalanceResponse, error) {
	params := &stripe.BalanceParams{}
	params.Params.Context = ctx
	params.SetStripeAccount(accountID)

	b, err := balance.Get(params)
	if err != nil {
		return nil, fmt.Errorf("retrieving balance for %s: %w", accountID, err)
	}

	resp := &types.BalanceResponse{
		Available:        make([]types.BalanceAmount, 0, len(b.Available)),
		Pending:          make([]types.BalanceAmount, 0, len(b.Pending)),
		InstantAvailable: make([]types.BalanceAmount, 0, len(b.InstantAvailable)),
	}
	for _, a := range b.Available {
		resp.Available = append(resp.Available, types.BalanceAmount{Amount: a.Amount, Currency: string(a.Currency)})
	}
	for _, a := range b.Pending {
		resp.Pending = append(resp.Pending, types.BalanceAmount{Amount: a.Amount, Currency: string(a.Currency)})
	}
	for _, a := range b.InstantAvailable {
		resp.InstantAvailable = append(resp.InstantAvailable, types.BalanceAmount{Amount: a.Amount, Currency: string(a.Currency)})
	}

	return resp, nil
}

// VerifyWebhookEvent verifies the raw body against the Stripe-Signature
// header. When either the signing secret or the header is missing, the body
// is parsed without verification — a development fallback only, never a
// security boundary. Callers in production must configure the secret.
func (p *StripeProvider) VerifyWebhookEvent(payload []byte, sigHeader string) (*types.WebhookEvent, error) {
	var event stripe.Event
	verified := false

	if p.webhookSecret != "" && sigHeader != "" {
		e, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("verifying webhook signature: %w", err)
		}
		event = e
		verified = true
	} else {
		slog.Warn("webhook signature verification skipped, insecure development mode",
			"secret_configured", p.webhookSecret != "",
			"signature_present", sigHeader != "")
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("parsing webhook payload: %w", err)
		}
	}

	return &types.WebhookEvent{
		Kind:     types.ClassifyWebhookEvent(string(event.Type)),
		Type:     string(event.Type),
		ID:       event.ID,
		Verified: verified,
	}, nil
}
