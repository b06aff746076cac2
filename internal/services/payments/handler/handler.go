// Package handler exposes the payment operations over HTTP.
package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentor-payments/config"
	"mentor-payments/internal/services/payments/providers"
	"mentor-payments/pkg/payments/types"
	"mentor-payments/internal/store"
)

// maxWebhookBodyBytes caps the webhook payload size before verification.
const maxWebhookBodyBytes = int64(65536)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler holds the two long-lived client handles the operations share.
type Handler struct {
	provider providers.PaymentProvider
	mentors  store.MentorStore
	cfg      config.PaymentsConfig
}

// NewHandler creates a Handler.
func NewHandler(provider providers.PaymentProvider, mentors store.MentorStore, cfg config.PaymentsConfig) *Handler {
	return &Handler{
		provider: provider,
		mentors:  mentors,
		cfg:      cfg,
	}
}

// CreatePaymentIntent handles POST /create-payment-intent. The
// authorization is created in manual capture mode; funds stay reserved
// until a capture performed outside this layer.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req types.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a positive integer in minor units"})
		return
	}

	if req.Currency == "" {
		req.Currency = h.cfg.DefaultCurrency
	}

	pi, err := h.provider.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		respondProviderError(c, "failed to create payment intent", err)
		return
	}

	c.JSON(http.StatusOK, types.PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     pi.Currency,
		Status:       pi.Status,
	})
}

// CreateRefund handles POST /create-refund. An uncaptured authorization is
// canceled rather than refunded, which avoids processor fees.
func (h *Handler) CreateRefund(c *gin.Context) {
	var req types.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "paymentIntentId is required"})
		return
	}

	ctx := c.Request.Context()

	pi, err := h.provider.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		respondProviderError(c, "failed to retrieve payment intent", err)
		return
	}

	switch pi.Status {
	case types.PaymentStatusRequiresCapture:
		canceled, err := h.provider.CancelPaymentIntent(ctx, req.PaymentIntentID)
		if err != nil {
			respondProviderError(c, "failed to cancel payment intent", err)
			return
		}
		c.JSON(http.StatusOK, types.CancellationResponse{
			ID:       canceled.ID,
			Status:   canceled.Status,
			Canceled: true,
		})

	case types.PaymentStatusSucceeded:
		refund, err := h.provider.CreateRefund(ctx, req.PaymentIntentID, req.Reason)
		if err != nil {
			respondProviderError(c, "failed to create refund", err)
			return
		}
		c.JSON(http.StatusOK, types.RefundResponse{
			RefundID:        refund.ID,
			PaymentIntentID: refund.PaymentIntentID,
			Amount:          refund.Amount,
			Status:          refund.Status,
			Created:         refund.Created,
		})

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("payment intent in state %q cannot be refunded", pi.Status),
		})
	}
}

// CreateConnectAccount handles POST /create-connect-account. The lookup
// before creation keeps the operation idempotent per mentor; no
// transactional guarantee exists between the read and the later write.
func (h *Handler) CreateConnectAccount(c *gin.Context) {
	var req types.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.MentorID == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mentorId and email are required"})
		return
	}

	if req.Country == "" {
		req.Country = h.cfg.DefaultCountry
	}

	ctx := c.Request.Context()

	mentor, err := h.mentors.GetMentor(ctx, req.MentorID)
	switch {
	case err == nil:
		if mentor.StripeAccountID != "" {
			c.JSON(http.StatusOK, types.ConnectAccountResponse{
				AccountID: mentor.StripeAccountID,
				Status:    "existing",
			})
			return
		}
	case errors.Is(err, store.ErrNotFound):
		// Tolerated: the account is still created, but nothing is
		// persisted until the mentor record shows up.
		slog.Warn("mentor record missing, connect account will not be persisted", "mentor_id", req.MentorID)
		mentor = nil
	default:
		respondProviderError(c, "failed to look up mentor", err)
		return
	}

	acct, err := h.provider.CreateConnectAccount(ctx, req)
	if err != nil {
		respondProviderError(c, "failed to create connect account", err)
		return
	}

	if mentor != nil {
		if err := h.mentors.SetStripeAccountID(ctx, req.MentorID, acct.ID); err != nil {
			// The account now exists at the processor without a mentor
			// link; accepted as a known limitation, not rolled back.
			respondProviderError(c, "failed to persist connect account", err)
			return
		}
	}

	origin := requestOrigin(c.Request)
	dashboardURL := origin + h.cfg.DashboardPath

	link, err := h.provider.CreateAccountLink(ctx, acct.ID, dashboardURL, dashboardURL)
	if err != nil {
		respondProviderError(c, "failed to create onboarding link", err)
		return
	}

	status := "pending"
	if acct.DetailsSubmitted {
		status = "complete"
	}

	c.JSON(http.StatusCreated, types.ConnectAccountResponse{
		AccountID:   acct.ID,
		Status:      status,
		AccountLink: link,
	})
}

// MentorBalance handles GET /mentor-balance/:mentorId.
func (h *Handler) MentorBalance(c *gin.Context) {
	mentorID := c.Param("mentorId")
	ctx := c.Request.Context()

	mentor, err := h.mentors.GetMentor(ctx, mentorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "mentor not found"})
			return
		}
		respondProviderError(c, "failed to look up mentor", err)
		return
	}

	if mentor.StripeAccountID == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "mentor has no connected account"})
		return
	}

	bal, err := h.provider.GetConnectedBalance(ctx, mentor.StripeAccountID)
	if err != nil {
		respondProviderError(c, "failed to retrieve balance", err)
		return
	}

	c.JSON(http.StatusOK, bal)
}

// StripeWebhook handles POST /stripe-webhook. Every event that passes
// verification is acknowledged, recognized or not.
func (h *Handler) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.Error("reading webhook body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")

	event, err := h.provider.VerifyWebhookEvent(payload, sigHeader)
	if err != nil {
		slog.Error("webhook verification failed", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	switch event.Kind {
	case types.EventPaymentSucceeded:
		slog.Info("payment succeeded", "event_id", event.ID)
	case types.EventPaymentFailed:
		slog.Warn("payment failed", "event_id", event.ID)
	case types.EventPaymentCanceled:
		slog.Info("payment canceled", "event_id", event.ID)
	case types.EventAccountUpdated:
		slog.Info("connect account updated", "event_id", event.ID)
	default:
		slog.Info("unhandled webhook event", "event_id", event.ID, "event_type", event.Type)
	}

	c.JSON(http.StatusOK, types.WebhookAck{Received: true})
}

// respondProviderError logs the collaborator failure and answers with a
// generic message; the original error is never echoed to the caller.
func respondProviderError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

// requestOrigin reconstructs the scheme and host the request arrived on,
// honoring the proxy's forwarded scheme when present.
func requestOrigin(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host
}
