package audio

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MockSink records every call. It also serves as the fallback sink on
// platforms without a mixer backend, logging instead of changing volume.
type MockSink struct {
	min, max float64
	logger   *zap.Logger

	mu     sync.Mutex
	levels []float64
	mutes  []bool
	err    error
	closed bool
}

// NewMockSink creates a mock with the given native range.
func NewMockSink(min, max float64, logger *zap.Logger) *MockSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockSink{min: min, max: max, logger: logger.Named("audio.mock")}
}

// SetError makes subsequent calls fail with err.
func (m *MockSink) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Range returns the configured range.
func (m *MockSink) Range() (min, max float64) {
	return m.min, m.max
}

// SetLevel records level.
func (m *MockSink) SetLevel(ctx context.Context, level float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.levels = append(m.levels, level)
	m.logger.Debug("volume set", zap.Float64("level", level))
	return nil
}

// SetMute records muted.
func (m *MockSink) SetMute(ctx context.Context, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.mutes = append(m.mutes, muted)
	m.logger.Debug("mute set", zap.Bool("muted", muted))
	return nil
}

// Close marks the sink closed.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Levels returns every level applied so far.
func (m *MockSink) Levels() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.levels...)
}

// Mutes returns every mute flag applied so far.
func (m *MockSink) Mutes() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.mutes...)
}

// Closed reports whether Close has been called.
func (m *MockSink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
