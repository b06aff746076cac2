package handler_test

import (
	"context"
	"sync"
	"sync/atomic"

	"mentor-payments/pkg/payments/types"
	"mentor-payments/internal/store"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT PROVIDER
// ──────────────────────────────────────────────

// MockProvider is a mock implementation of providers.PaymentProvider.
type MockProvider struct {
	// Canned results
	PaymentIntent *types.PaymentIntent
	Refund        *types.Refund
	Account       *types.ConnectAccount
	AccountLink   string
	Balance       *types.BalanceResponse
	WebhookEvent  *types.WebhookEvent

	// Captured requests
	LastIntentReq  types.PaymentIntentRequest
	LastAccountReq types.ConnectAccountRequest
	LastRefundID   string
	LastReason     string
	LastBalanceAcc string
	LastRefreshURL string
	LastReturnURL  string

	// Counters for verification
	CreateIntentCalls  int32
	GetIntentCalls     int32
	CancelIntentCalls  int32
	CreateRefundCalls  int32
	CreateAccountCalls int32
	AccountLinkCalls   int32
	BalanceCalls       int32
	VerifyCalls        int32

	// Error injection
	CreateIntentError  error
	GetIntentError     error
	CancelIntentError  error
	CreateRefundError  error
	CreateAccountError error
	AccountLinkError   error
	BalanceError       error
	VerifyError        error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, req types.PaymentIntentRequest) (*types.PaymentIntent, error) {
	atomic.AddInt32(&m.CreateIntentCalls, 1)
	m.LastIntentReq = req
	if m.CreateIntentError != nil {
		return nil, m.CreateIntentError
	}
	if m.PaymentIntent != nil {
		return m.PaymentIntent, nil
	}
	return &types.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       req.Amount,
		Currency:     req.Currency,
		Status:       "requires_payment_method",
	}, nil
}

func (m *MockProvider) GetPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error) {
	atomic.AddInt32(&m.GetIntentCalls, 1)
	if m.GetIntentError != nil {
		return nil, m.GetIntentError
	}
	return m.PaymentIntent, nil
}

func (m *MockProvider) CancelPaymentIntent(ctx context.Context, id string) (*types.PaymentIntent, error) {
	atomic.AddInt32(&m.CancelIntentCalls, 1)
	if m.CancelIntentError != nil {
		return nil, m.CancelIntentError
	}
	return &types.PaymentIntent{ID: id, Status: "canceled"}, nil
}

func (m *MockProvider) CreateRefund(ctx context.Context, paymentIntentID, reason string) (*types.Refund, error) {
	atomic.AddInt32(&m.CreateRefundCalls, 1)
	m.LastRefundID = paymentIntentID
	m.LastReason = reason
	if m.CreateRefundError != nil {
		return nil, m.CreateRefundError
	}
	if m.Refund != nil {
		return m.Refund, nil
	}
	return &types.Refund{
		ID:              "re_test",
		PaymentIntentID: paymentIntentID,
		Amount:          1000,
		Status:          "succeeded",
		Created:         1700000000,
	}, nil
}

func (m *MockProvider) CreateConnectAccount(ctx context.Context, req types.ConnectAccountRequest) (*types.ConnectAccount, error) {
	atomic.AddInt32(&m.CreateAccountCalls, 1)
	m.LastAccountReq = req
	if m.CreateAccountError != nil {
		return nil, m.CreateAccountError
	}
	if m.Account != nil {
		return m.Account, nil
	}
	return &types.ConnectAccount{ID: "acct_test", DetailsSubmitted: false}, nil
}

func (m *MockProvider) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	atomic.AddInt32(&m.AccountLinkCalls, 1)
	m.LastRefreshURL = refreshURL
	m.LastReturnURL = returnURL
	if m.AccountLinkError != nil {
		return "", m.AccountLinkError
	}
	if m.AccountLink != "" {
		return m.AccountLink, nil
	}
	return "https://connect.stripe.com/setup/e/acct_test/link", nil
}

func (m *MockProvider) GetConnectedBalance(ctx context.Context, accountID string) (*types.BalanceResponse, error) {
	atomic.AddInt32(&m.BalanceCalls, 1)
	m.LastBalanceAcc = accountID
	if m.BalanceError != nil {
		return nil, m.BalanceError
	}
	if m.Balance != nil {
		return m.Balance, nil
	}
	return &types.BalanceResponse{
		Available:        []types.BalanceAmount{{Amount: 5000, Currency: "usd"}},
		Pending:          []types.BalanceAmount{{Amount: 1200, Currency: "usd"}},
		InstantAvailable: []types.BalanceAmount{},
	}, nil
}

func (m *MockProvider) VerifyWebhookEvent(payload []byte, sigHeader string) (*types.WebhookEvent, error) {
	atomic.AddInt32(&m.VerifyCalls, 1)
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	if m.WebhookEvent != nil {
		return m.WebhookEvent, nil
	}
	return &types.WebhookEvent{Kind: types.EventUnhandled, Type: "unknown.event", ID: "evt_test", Verified: true}, nil
}

// ──────────────────────────────────────────────
// MOCK MENTOR STORE
// ──────────────────────────────────────────────

// MockMentorStore is a mock implementation of store.MentorStore.
type MockMentorStore struct {
	mu      sync.RWMutex
	mentors map[string]*store.Mentor

	GetCalls int32
	SetCalls int32

	GetError error
	SetError error
}

func NewMockMentorStore() *MockMentorStore {
	return &MockMentorStore{
		mentors: make(map[string]*store.Mentor),
	}
}

func (m *MockMentorStore) AddMentor(mentor *store.Mentor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mentors[mentor.ID] = mentor
}

func (m *MockMentorStore) GetMentor(ctx context.Context, mentorID string) (*store.Mentor, error) {
	atomic.AddInt32(&m.GetCalls, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	mentor, ok := m.mentors[mentorID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := *mentor
	return &copy, nil
}

func (m *MockMentorStore) SetStripeAccountID(ctx context.Context, mentorID, accountID string) error {
	atomic.AddInt32(&m.SetCalls, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	mentor, ok := m.mentors[mentorID]
	if !ok {
		return store.ErrNotFound
	}
	mentor.StripeAccountID = accountID
	return nil
}

// StoredAccountID returns the persisted account id for test assertions.
func (m *MockMentorStore) StoredAccountID(mentorID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mentor, ok := m.mentors[mentorID]; ok {
		return mentor.StripeAccountID
	}
	return ""
}
