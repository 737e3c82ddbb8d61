// Package audio applies volume and mute changes to the default output device.
package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// ErrUnsupportedPlatform is returned when no system backend exists for the OS.
var ErrUnsupportedPlatform = errors.New("audio: unsupported platform")

// Sink is an output device that accepts absolute volume levels and a mute flag.
type Sink interface {
	// Range returns the device's native volume range.
	Range() (min, max float64)
	// SetLevel applies an absolute volume level in the native range.
	SetLevel(ctx context.Context, level float64) error
	// SetMute sets the mute flag.
	SetMute(ctx context.Context, muted bool) error
	// Close releases the device.
	Close() error
}

// backend renders the commands for one platform's mixer.
type backend struct {
	name     string
	min, max float64
	level    func(level int) (string, []string)
	mute     func(muted bool) (string, []string)
}

var backends = map[string]backend{
	"linux": {
		name: "pactl",
		min:  0,
		max:  100,
		level: func(level int) (string, []string) {
			return "pactl", []string{"set-sink-volume", "@DEFAULT_SINK@", strconv.Itoa(level) + "%"}
		},
		mute: func(muted bool) (string, []string) {
			flag := "0"
			if muted {
				flag = "1"
			}
			return "pactl", []string{"set-sink-mute", "@DEFAULT_SINK@", flag}
		},
	},
	"darwin": {
		name: "osascript",
		min:  0,
		max:  100,
		level: func(level int) (string, []string) {
			return "osascript", []string{"-e", fmt.Sprintf("set volume output volume %d", level)}
		},
		mute: func(muted bool) (string, []string) {
			return "osascript", []string{"-e", fmt.Sprintf("set volume output muted %t", muted)}
		},
	},
}

// SystemSink drives the OS mixer through its command-line tool.
// Repeated requests for the value already applied are skipped.
type SystemSink struct {
	backend backend
	runner  Runner
	logger  *zap.Logger

	mu        sync.Mutex
	level     int
	haveLevel bool
	muted     bool
	haveMute  bool
}

// NewSystemSink creates a sink for the running OS.
func NewSystemSink(runner Runner, logger *zap.Logger) (*SystemSink, error) {
	return newSystemSink(runtime.GOOS, runner, logger)
}

func newSystemSink(goos string, runner Runner, logger *zap.Logger) (*SystemSink, error) {
	b, ok := backends[goos]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	if runner == nil {
		runner = NewExecRunner(DefaultTimeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemSink{
		backend: b,
		runner:  runner,
		logger:  logger.Named("audio").With(zap.String("backend", b.name)),
	}, nil
}

// Range returns the mixer's native range.
func (s *SystemSink) Range() (min, max float64) {
	return s.backend.min, s.backend.max
}

// SetLevel clamps level into the native range, rounds it to a whole step and
// applies it.
func (s *SystemSink) SetLevel(ctx context.Context, level float64) error {
	step := int(math.Round(math.Max(s.backend.min, math.Min(s.backend.max, level))))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.haveLevel && s.level == step {
		return nil
	}

	name, args := s.backend.level(step)
	if _, err := s.runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("set volume %d: %w", step, err)
	}

	s.level = step
	s.haveLevel = true
	s.logger.Debug("volume set", zap.Int("level", step))
	return nil
}

// SetMute applies the mute flag.
func (s *SystemSink) SetMute(ctx context.Context, muted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.haveMute && s.muted == muted {
		return nil
	}

	name, args := s.backend.mute(muted)
	if _, err := s.runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("set mute %t: %w", muted, err)
	}

	s.muted = muted
	s.haveMute = true
	s.logger.Info("mute changed", zap.Bool("muted", muted))
	return nil
}

// Close is a no-op; the mixer has no handle to release.
func (s *SystemSink) Close() error {
	return nil
}
