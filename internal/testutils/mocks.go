package testutils

import (
	"context"
	"errors"
	"sync"
	"time"

	"stocktracker/pkg/market"
)

// MockRand returns fixed draws. Uniform returns ValFloat; Int63Range returns ValInt
// clamped into the requested range.
type MockRand struct {
	ValFloat float64
	ValInt   int64
}

func (m *MockRand) Uniform(min, max float64) float64 { return m.ValFloat }

func (m *MockRand) Int63Range(min, max int64) int64 {
	if m.ValInt < min {
		return min
	}
	if m.ValInt >= max {
		return max - 1
	}
	return m.ValInt
}

// SequenceRand cycles through Floats for Uniform and returns min for Int63Range.
type SequenceRand struct {
	Floats []float64

	mu  sync.Mutex
	idx int
}

func (s *SequenceRand) Uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.idx%len(s.Floats)]
	s.idx++
	return v
}

func (s *SequenceRand) Int63Range(min, max int64) int64 { return min }

// MockClock reports CurrentTime until advanced.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = m.CurrentTime.Add(d)
}

// MockSource serves a fixed collection, or Err when set.
type MockSource struct {
	Mu      sync.Mutex
	Records []market.StockRecord
	Err     error
	Calls   int
}

func (m *MockSource) Load(ctx context.Context) ([]market.StockRecord, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return market.CloneAll(m.Records), nil
}

func (m *MockSource) SetErr(err error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	m.Err = err
}

var ErrMockStorage = errors.New("mock storage failure")

// FailingStorage is a kv storage whose writes always fail.
type FailingStorage struct {
	Data []byte
}

func (f *FailingStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.Data == nil {
		return nil, ErrMockStorage
	}
	return f.Data, nil
}

func (f *FailingStorage) Put(ctx context.Context, key string, value []byte) error {
	return ErrMockStorage
}

func (f *FailingStorage) Close() error { return nil }

// Stocks builds records from symbol/price/previousClose/volume tuples.
func Stocks(rows ...Row) []market.StockRecord {
	out := make([]market.StockRecord, len(rows))
	for i, r := range rows {
		out[i] = market.StockRecord{
			Symbol:        r.Symbol,
			Name:          r.Symbol + " Corp",
			Price:         r.Price,
			PreviousClose: r.PreviousClose,
			DayHigh:       r.Price,
			DayLow:        r.Price,
			Volume:        r.Volume,
		}
	}
	return out
}

type Row struct {
	Symbol        string
	Price         float64
	PreviousClose float64
	Volume        int64
}
