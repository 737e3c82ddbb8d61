// Package capture reads mirrored frames from a webcam through OpenCV.
package capture

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Requested capture size. The dashboard layout assumes 640x480; a device
// that cannot honor it still works, frames just come back at its own size.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

var (
	// ErrCameraNotOpen is returned by ReadFrame before Open or after Close.
	ErrCameraNotOpen = errors.New("camera is not open")
	// ErrNoFrames is returned when the source cannot deliver another frame.
	ErrNoFrames = errors.New("no more frames")
)

// Camera is a source of BGR frames. Callers own and must close every
// returned Mat.
type Camera interface {
	Open() error
	ReadFrame() (*gocv.Mat, error)
	Close() error
}

// source is the part of gocv.VideoCapture the webcam reads through.
type source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Webcam captures from a local video device.
type Webcam struct {
	deviceID int
	mirror   bool
	open     func(deviceID int) (source, error)

	mu  sync.Mutex
	src source
}

// NewWebcam returns a camera for deviceID. With mirror set every frame is
// flipped around the vertical axis so the preview moves like a mirror.
func NewWebcam(deviceID int, mirror bool) *Webcam {
	return &Webcam{
		deviceID: deviceID,
		mirror:   mirror,
		open:     openDevice,
	}
}

func openDevice(deviceID int) (source, error) {
	vc, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, err
	}
	vc.Set(gocv.VideoCaptureFrameWidth, FrameWidth)
	vc.Set(gocv.VideoCaptureFrameHeight, FrameHeight)
	return vc, nil
}

// Open starts capturing. Opening an open camera is a no-op.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.src != nil {
		return nil
	}

	src, err := w.open(w.deviceID)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", w.deviceID, err)
	}
	w.src = src
	return nil
}

// ReadFrame grabs the next frame, mirrored if configured. A failed or empty
// grab is reported as ErrNoFrames.
func (w *Webcam) ReadFrame() (*gocv.Mat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.src == nil {
		return nil, ErrCameraNotOpen
	}

	frame := gocv.NewMat()
	if !w.src.Read(&frame) || frame.Empty() {
		frame.Close()
		return nil, fmt.Errorf("camera %d: %w", w.deviceID, ErrNoFrames)
	}

	if w.mirror {
		Mirror(&frame)
	}
	return &frame, nil
}

// Close releases the device. Closing a closed camera is a no-op.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.src == nil {
		return nil
	}
	err := w.src.Close()
	w.src = nil
	return err
}

// Mirror flips frame horizontally in place.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}
