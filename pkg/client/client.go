// Package client is the front-end facing API shim: one interface, a real
// HTTP implementation, and a mock used when no backend is reachable.
// Calling code stays agnostic to which implementation is active.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mentor-payments/pkg/payments/types"
)

// API mirrors the five payment operations the backend exposes.
type API interface {
	CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntentResponse, error)
	CreateRefund(ctx context.Context, req types.RefundRequest) (*types.RefundOutcome, error)
	CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccountResponse, error)
	MentorBalance(ctx context.Context, mentorID string) (*types.BalanceResponse, error)
	SendWebhookEvent(ctx context.Context, payload []byte, signature string) (*types.WebhookAck, error)
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// HTTPClient is the real API implementation over a base URL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the backend at baseURL.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    httpClient,
	}
}

func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntentResponse, error) {
	var resp types.PaymentIntentResponse
	if err := c.postJSON(ctx, "/create-payment-intent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateRefund(ctx context.Context, req types.RefundRequest) (*types.RefundOutcome, error) {
	var resp types.RefundOutcome
	if err := c.postJSON(ctx, "/create-refund", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccountResponse, error) {
	var resp types.ConnectAccountResponse
	if err := c.postJSON(ctx, "/create-connect-account", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) MentorBalance(ctx context.Context, mentorID string) (*types.BalanceResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/mentor-balance/"+mentorID, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	var resp types.BalanceResponse
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SendWebhookEvent(ctx context.Context, payload []byte, signature string) (*types.WebhookAck, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/stripe-webhook", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if signature != "" {
		httpReq.Header.Set("Stripe-Signature", signature)
	}

	var resp types.WebhookAck
	if err := c.do(httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}

	return nil
}
