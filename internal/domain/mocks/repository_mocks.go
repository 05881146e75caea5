package mocks

import (
	"context"
	"sync"

	"github.com/user/fraud-lens/internal/domain"
)

// MockFeedRepository is a mock implementation of domain.FeedRepository for testing.
type MockFeedRepository struct {
	mu          sync.Mutex
	Rows        []domain.FeedRow
	RowsErr     error
	MaxTx       string
	MaxTxErr    error
	MaxLabel    string
	MaxLabelErr error
	ListCalls   []domain.FeedFilter
}

func (m *MockFeedRepository) ListRows(ctx context.Context, f domain.FeedFilter) ([]domain.FeedRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, f)
	if m.RowsErr != nil {
		return nil, m.RowsErr
	}
	return m.Rows, nil
}

func (m *MockFeedRepository) MaxTransactionTime(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MaxTxErr != nil {
		return "", m.MaxTxErr
	}
	return m.MaxTx, nil
}

func (m *MockFeedRepository) MaxLabelTime(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MaxLabelErr != nil {
		return "", m.MaxLabelErr
	}
	return m.MaxLabel, nil
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository.
type MockTransactionRepository struct {
	mu         sync.Mutex
	ListResult []domain.TransactionListRow
	ListErr    error
	Upserted   []domain.TransactionEvent
	UpsertErr  error
	ListCalls  []domain.TransactionFilter
}

func (m *MockTransactionRepository) List(ctx context.Context, f domain.TransactionFilter) ([]domain.TransactionListRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, f)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListResult, nil
}

func (m *MockTransactionRepository) Upsert(ctx context.Context, tx domain.TransactionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserted = append(m.Upserted, tx)
	return nil
}

// MockLabelRepository is a mock implementation of domain.LabelRepository.
type MockLabelRepository struct {
	mu        sync.Mutex
	Upserted  []domain.LabelEvent
	UpsertErr error
}

func (m *MockLabelRepository) Upsert(ctx context.Context, l domain.LabelEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserted = append(m.Upserted, l)
	return nil
}

// MockScoreRepository is a mock implementation of domain.ScoreRepository.
type MockScoreRepository struct {
	mu        sync.Mutex
	Upserted  []domain.ScoreEvent
	UpsertErr error
}

func (m *MockScoreRepository) Upsert(ctx context.Context, s domain.ScoreEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.Upserted = append(m.Upserted, s)
	return nil
}

// MockMerchantRepository is a mock implementation of domain.MerchantRepository.
type MockMerchantRepository struct {
	mu        sync.Mutex
	Merchants map[int64]domain.MerchantRef
	GetErr    error
	GetCalls  []int64
}

func (m *MockMerchantRepository) Get(ctx context.Context, merchantID int64) (domain.MerchantRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, merchantID)
	if m.GetErr != nil {
		return domain.MerchantRef{}, m.GetErr
	}
	ref, ok := m.Merchants[merchantID]
	if !ok {
		return domain.MerchantRef{}, domain.ErrNotFound
	}
	return ref, nil
}

// MockRunRepository is a mock implementation of domain.RunRepository.
type MockRunRepository struct {
	mu        sync.Mutex
	Run       *domain.ModelRun
	LatestErr error
}

func (m *MockRunRepository) Latest(ctx context.Context) (*domain.ModelRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	return m.Run, nil
}
