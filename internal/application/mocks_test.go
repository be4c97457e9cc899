package application

import (
	"context"
	"sync"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

// Mock implementations for testing

// MockForkableClient implements output.ForkableClient for testing
type MockForkableClient struct {
	LoginFunc           func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	QueryDeliveriesFunc func(ctx context.Context, sessionToken, targetDate string) (*domain.DeliverySummary, error)

	// Captured values for assertions
	LoginCalls  int
	QueryTokens []string
	QueryDates  []string
}

func (m *MockForkableClient) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	m.LoginCalls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.LoginResult{SessionToken: "fresh-token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *MockForkableClient) QueryDeliveries(ctx context.Context, sessionToken, targetDate string) (*domain.DeliverySummary, error) {
	m.QueryTokens = append(m.QueryTokens, sessionToken)
	m.QueryDates = append(m.QueryDates, targetDate)
	if m.QueryDeliveriesFunc != nil {
		return m.QueryDeliveriesFunc(ctx, sessionToken, targetDate)
	}
	return &domain.DeliverySummary{Date: targetDate}, nil
}

// MockSessionStore implements output.SessionStore for testing.
// Without hooks it behaves like a map keyed by account.
type MockSessionStore struct {
	GetSessionFunc     func(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error)
	ReplaceSessionFunc func(ctx context.Context, record *domain.SessionRecord) error

	mu      sync.Mutex
	records map[string]*domain.SessionRecord

	// Captured values for assertions
	ReplaceCalls []*domain.SessionRecord
}

func (m *MockSessionStore) GetSession(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, accountID, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[accountID]
	if !ok || !record.IsValidAt(now) {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (m *MockSessionStore) ReplaceSession(ctx context.Context, record *domain.SessionRecord) error {
	m.mu.Lock()
	m.ReplaceCalls = append(m.ReplaceCalls, record)
	m.mu.Unlock()
	if m.ReplaceSessionFunc != nil {
		return m.ReplaceSessionFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string]*domain.SessionRecord)
	}
	copied := *record
	m.records[record.AccountID] = &copied
	return nil
}

func (m *MockSessionStore) Ping(ctx context.Context) error {
	return nil
}

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc  func(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	// Captured values for assertions
	LastReplyRequest *domain.LineReplyMessageRequest
	LastPushRequest  *domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.LastReplyRequest = &request
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.LastPushRequest = &request
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

// MockLunchService implements input.LunchService for testing
type MockLunchService struct {
	GetLunchSummaryFunc func(ctx context.Context) (string, error)
	Calls               int
}

func (m *MockLunchService) GetLunchSummary(ctx context.Context) (string, error) {
	m.Calls++
	if m.GetLunchSummaryFunc != nil {
		return m.GetLunchSummaryFunc(ctx)
	}
	return "Cafe A: Sandwich, Soup", nil
}
