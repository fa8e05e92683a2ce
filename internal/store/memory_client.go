package store

import (
	"context"
	"sync"

	"github.com/campusmarket/recommender/internal/domain"
)

// MemoryClient is an in-memory implementation of the Client interface used
// for unit testing the service layer and for local runs without a document
// store.
type MemoryClient struct {
	mu           sync.Mutex
	users        []domain.User
	purchases    []domain.Purchase
	listings     []domain.MarketplaceItem
	written      map[string]domain.Recommendations
	fetchErr     error
	writeErr     map[string]error
	connectivity error
}

// NewMemoryClient instantiates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{written: make(map[string]domain.Recommendations)}
}

// WithFetchError configures all fetch calls to fail with the provided error.
func (m *MemoryClient) WithFetchError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
	return m
}

// WithWriteError configures WriteRecommendations to fail for the given user.
func (m *MemoryClient) WithWriteError(userID string, err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr == nil {
		m.writeErr = make(map[string]error)
	}
	m.writeErr[userID] = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) FetchUsers(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]domain.User(nil), m.users...), nil
}

func (m *MemoryClient) FetchPurchases(context.Context) ([]domain.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]domain.Purchase(nil), m.purchases...), nil
}

func (m *MemoryClient) FetchListings(context.Context) ([]domain.MarketplaceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]domain.MarketplaceItem(nil), m.listings...), nil
}

func (m *MemoryClient) WriteRecommendations(_ context.Context, rec domain.Recommendations) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.writeErr[rec.UserID]; err != nil {
		return err
	}
	m.written[rec.UserID] = rec
	return nil
}

func (m *MemoryClient) FetchRecommendations(_ context.Context, userID string) (domain.Recommendations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return domain.Recommendations{}, m.fetchErr
	}
	rec, ok := m.written[userID]
	if !ok {
		return domain.Recommendations{UserID: userID}, nil
	}
	return rec, nil
}

func (m *MemoryClient) SeedUsers(_ context.Context, users []domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, users...)
	return nil
}

func (m *MemoryClient) SeedListings(_ context.Context, listings []domain.MarketplaceItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings = append(m.listings, listings...)
	return nil
}

func (m *MemoryClient) SeedPurchases(_ context.Context, purchases []domain.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purchases = append(m.purchases, purchases...)
	return nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Written returns a snapshot of the recommendations persisted so far.
func (m *MemoryClient) Written() map[string]domain.Recommendations {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Recommendations, len(m.written))
	for k, v := range m.written {
		out[k] = v
	}
	return out
}
