// Package types defines the request and response shapes shared by the
// payment handlers, the provider implementations and the API client.
package types

type PaymentIntentRequest struct {
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	MentorAccountID string `json:"mentorStripeAccountId"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Processor-defined authorization states the refund flow branches on.
const (
	PaymentStatusRequiresCapture = "requires_capture"
	PaymentStatusSucceeded       = "succeeded"
)

// PaymentIntent is the provider-level view of an authorization.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

type RefundRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Reason          string `json:"reason"`
}

// CancellationResponse is returned when the authorization was still
// uncaptured and got canceled instead of refunded.
type CancellationResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Canceled bool   `json:"canceled"`
}

type RefundResponse struct {
	RefundID        string `json:"refundId"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
	Created         int64  `json:"created"`
}

type Refund struct {
	ID              string
	PaymentIntentID string
	Amount          int64
	Status          string
	Created         int64
}

// RefundOutcome is the client-side union of the two create-refund response
// shapes: a cancellation of an uncaptured authorization, or a refund of a
// captured one.
type RefundOutcome struct {
	ID              string `json:"id,omitempty"`
	Status          string `json:"status"`
	Canceled        bool   `json:"canceled,omitempty"`
	RefundID        string `json:"refundId,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	Amount          int64  `json:"amount,omitempty"`
	Created         int64  `json:"created,omitempty"`
}

type ConnectAccountRequest struct {
	MentorID string `json:"mentorId"`
	Email    string `json:"email"`
	Country  string `json:"country"`
}

type ConnectAccountResponse struct {
	AccountID   string `json:"accountId"`
	Status      string `json:"status"`
	AccountLink string `json:"accountLink,omitempty"`
}

// ConnectAccount is the provider-level view of a connected sub-account.
type ConnectAccount struct {
	ID               string
	DetailsSubmitted bool
}

type BalanceAmount struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type BalanceResponse struct {
	Available        []BalanceAmount `json:"available"`
	Pending          []BalanceAmount `json:"pending"`
	InstantAvailable []BalanceAmount `json:"instant_available"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

// WebhookEventKind is the closed set of processor events this layer reacts
// to. Anything else classifies as EventUnhandled and is acknowledged all
// the same.
type WebhookEventKind string

const (
	EventPaymentSucceeded WebhookEventKind = "payment_intent.succeeded"
	EventPaymentFailed    WebhookEventKind = "payment_intent.payment_failed"
	EventPaymentCanceled  WebhookEventKind = "payment_intent.canceled"
	EventAccountUpdated   WebhookEventKind = "account.updated"
	EventUnhandled        WebhookEventKind = "unhandled"
)

// ClassifyWebhookEvent maps a raw processor event type onto the closed kind
// set.
func ClassifyWebhookEvent(eventType string) WebhookEventKind {
	switch WebhookEventKind(eventType) {
	case EventPaymentSucceeded, EventPaymentFailed, EventPaymentCanceled, EventAccountUpdated:
		return WebhookEventKind(eventType)
	default:
		return EventUnhandled
	}
}

// WebhookEvent is a verified (or, in development mode, assumed-trusted)
// processor notification.
type WebhookEvent struct {
	Kind WebhookEventKind
	Type string
	ID   string
	// Verified is false when the event was accepted through the unverified
	// development fallback.
	Verified bool
}
