// Package app runs the hand-gesture volume controller frame loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/handvolume/internal/audio"
	"github.com/ayusman/handvolume/internal/capture"
	"github.com/ayusman/handvolume/internal/detector"
	"github.com/ayusman/handvolume/internal/log"
	"github.com/ayusman/handvolume/internal/overlay"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

// ErrExitGesture is returned by Run when an open hand was held long enough
// to request exit.
var ErrExitGesture = errors.New("exit gesture held")

// Display shows annotated frames and reports key presses.
type Display interface {
	Show(img gocv.Mat)
	WaitKey(delay int) int
	Close() error
}

// Config holds configuration options for the application.
type Config struct {
	CameraID    int
	Mirror      bool
	WindowTitle string
	// ExitKey stops the loop when pressed in the preview window.
	ExitKey int
	// KeyDelayMs is how long each frame waits for a key press.
	KeyDelayMs int
	Detector   detector.Config
	Logger     *zap.Logger
}

// DefaultConfig returns the configuration used by the command.
func DefaultConfig() Config {
	return Config{
		CameraID:    0,
		Mirror:      true,
		WindowTitle: "Hand Volume Control",
		ExitKey:     overlay.KeyEscape,
		KeyDelayMs:  1,
		Detector:    detector.DefaultConfig(),
	}
}

// App wires the camera, detector, audio sink and display into one loop.
type App struct {
	config   Config
	logger   *zap.Logger
	camera   capture.Camera
	detector detector.Detector
	sink     audio.Sink
	display  Display
	now      func() time.Time
}

// Option overrides one of the App's collaborators.
type Option func(*App)

// WithCamera replaces the frame source.
func WithCamera(c capture.Camera) Option {
	return func(a *App) {
		a.camera = c
	}
}

// WithDetector replaces the MediaPipe hand detector.
func WithDetector(d detector.Detector) Option {
	return func(a *App) {
		a.detector = d
	}
}

// WithSink replaces the system mixer.
func WithSink(s audio.Sink) Option {
	return func(a *App) {
		a.sink = s
	}
}

// WithDisplay replaces the preview window.
func WithDisplay(d Display) Option {
	return func(a *App) {
		a.display = d
	}
}

// WithClock replaces the time source used for the exit hold.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New creates an App. Collaborators not supplied through opts are built from
// config: the camera device, the MediaPipe detector and the system mixer.
// A missing MediaPipe service is an error since no gesture could ever be
// seen; a missing mixer falls back to a sink that only logs.
func New(config Config, opts ...Option) (*App, error) {
	logger := config.Logger
	if logger == nil {
		logger = log.Nop()
	}

	a := &App{
		config: config,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.detector == nil {
		mp, err := detector.NewMediaPipeDetector(config.Detector, logger)
		if err != nil {
			return nil, fmt.Errorf("hand detector: %w", err)
		}
		a.detector = mp
		logger.Info("using MediaPipe hand detection")
	}

	if a.sink == nil {
		if sink, err := audio.NewSystemSink(audio.NewExecRunner(audio.DefaultTimeout), logger); err == nil {
			a.sink = sink
		} else {
			logger.Warn("system mixer not available, volume changes are logged only", zap.Error(err))
			a.sink = audio.NewMockSink(0, 100, logger)
		}
	}

	if a.camera == nil {
		a.camera = capture.NewWebcam(config.CameraID, config.Mirror)
	}

	return a, nil
}

// Close releases the camera, detector, sink and display.
func (a *App) Close() error {
	var err error
	if a.camera != nil {
		err = multierr.Append(err, a.camera.Close())
	}
	if a.detector != nil {
		err = multierr.Append(err, a.detector.Close())
	}
	if a.sink != nil {
		err = multierr.Append(err, a.sink.Close())
	}
	if a.display != nil {
		err = multierr.Append(err, a.display.Close())
	}
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}
	a.logger.Info("resources released")
	return nil
}
