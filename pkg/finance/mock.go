package finance

import (
	"context"
	"sync/atomic"
)

// MockedLoader is a Loader for tests. Unset funcs return empty results.
type MockedLoader struct {
	StockInfoFunc func(ctx context.Context, symbol string) (*Quote, error)
	HistoryFunc   func(ctx context.Context, symbol, period, interval string) ([]Bar, error)

	calls atomic.Int64
}

func (m *MockedLoader) StockInfo(ctx context.Context, symbol string) (*Quote, error) {
	m.calls.Add(1)
	if m.StockInfoFunc != nil {
		return m.StockInfoFunc(ctx, symbol)
	}
	return &Quote{Symbol: symbol}, nil
}

func (m *MockedLoader) History(ctx context.Context, symbol, period, interval string) ([]Bar, error) {
	m.calls.Add(1)
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, symbol, period, interval)
	}
	return []Bar{}, nil
}

// Calls returns how many times the provider was queried
func (m *MockedLoader) Calls() int64 {
	return m.calls.Load()
}

// Ensure MockedLoader implements Loader at compile time
var _ Loader = (*MockedLoader)(nil)
