package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockRedisClient is an in-memory Ledger for tests and for running without Redis
type MockRedisClient struct {
	mu     sync.Mutex
	data   map[string]time.Time
	prefix string
	now    func() time.Time
}

var _ Ledger = (*MockRedisClient)(nil)

func NewMockRedisClient(prefix string) *MockRedisClient {
	return &MockRedisClient{
		data:   make(map[string]time.Time),
		prefix: prefix,
		now:    time.Now,
	}
}

func (m *MockRedisClient) Close() error {
	return nil
}

func (m *MockRedisClient) ListPosted(ctx context.Context, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var categories []string
	for _, key := range m.liveKeys(date) {
		if c, ok := categoryFromKey(key, m.prefix, date); ok {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *MockRedisClient) MarkPosted(ctx context.Context, date, category string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiry time.Time
	if ttl > 0 {
		expiry = m.now().Add(ttl)
	}
	m.data[m.prefix+MarkerKey(date, category)] = expiry
	return nil
}

func (m *MockRedisClient) ClearDate(ctx context.Context, date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := m.liveKeys(date)
	for _, key := range keys {
		delete(m.data, key)
	}
	return len(keys), nil
}

// TTL returns the remaining lifetime of a marker, or false if it does not exist.
func (m *MockRedisClient) TTL(date, category string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.data[m.prefix+MarkerKey(date, category)]
	if !ok {
		return 0, false
	}
	if expiry.IsZero() {
		return -1, true
	}
	return expiry.Sub(m.now()), true
}

// liveKeys evicts expired markers and returns the keys matching date.
func (m *MockRedisClient) liveKeys(date string) []string {
	keyPrefix := m.prefix + MarkerKey(date, "")
	now := m.now()

	var keys []string
	for key, expiry := range m.data {
		if !expiry.IsZero() && !now.Before(expiry) {
			delete(m.data, key)
			continue
		}
		if strings.HasPrefix(key, keyPrefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
