package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera replays a fixed list of frames. Each read returns a clone, so
// callers may close what they get. Without loop, reading past the last frame
// fails with ErrNoFrames the way an unplugged webcam does.
type MockCamera struct {
	mu     sync.Mutex
	frames []*gocv.Mat
	loop   bool
	next   int
	open   bool
	closed bool
}

// NewMockCamera creates a playback camera over frames.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{frames: frames, loop: loop}
}

// Open rewinds playback.
func (m *MockCamera) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open, m.closed, m.next = true, false, 0
	return nil
}

// ReadFrame returns a copy of the next frame.
func (m *MockCamera) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, ErrCameraNotOpen
	}
	if m.next == len(m.frames) && m.loop {
		m.next = 0
	}
	if m.next >= len(m.frames) {
		return nil, fmt.Errorf("playback ended after %d frames: %w", len(m.frames), ErrNoFrames)
	}

	frame := m.frames[m.next].Clone()
	m.next++
	return &frame, nil
}

// Close stops playback.
func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open, m.closed = false, true
	return nil
}

// Closed reports whether Close was called after the last Open.
func (m *MockCamera) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
