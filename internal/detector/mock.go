package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// QueueHands queues per-call results. Each Detect call consumes one entry;
// once the queue is drained Detect falls back to the hands from SetHands.
func (m *MockDetector) QueueHands(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close marks the mock as closed.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// fingerPose holds normalized joint positions for one finger, extended and curled.
type fingerPose struct {
	open   [4]Point3D
	closed [4]Point3D
}

// Right-hand poses as seen in a mirrored frame: the thumb points toward lower X.
var rightHandPoses = [5]fingerPose{
	{ // thumb: CMC, MCP, IP, Tip
		open:   [4]Point3D{{X: 0.45, Y: 0.75}, {X: 0.40, Y: 0.70}, {X: 0.36, Y: 0.65}, {X: 0.32, Y: 0.60}},
		closed: [4]Point3D{{X: 0.45, Y: 0.75}, {X: 0.40, Y: 0.70}, {X: 0.36, Y: 0.65}, {X: 0.42, Y: 0.66}},
	},
	{ // index: MCP, PIP, DIP, Tip
		open:   [4]Point3D{{X: 0.45, Y: 0.60}, {X: 0.45, Y: 0.50}, {X: 0.45, Y: 0.42}, {X: 0.45, Y: 0.35}},
		closed: [4]Point3D{{X: 0.45, Y: 0.60}, {X: 0.45, Y: 0.52}, {X: 0.47, Y: 0.58}, {X: 0.47, Y: 0.62}},
	},
	{ // middle
		open:   [4]Point3D{{X: 0.50, Y: 0.58}, {X: 0.50, Y: 0.48}, {X: 0.50, Y: 0.40}, {X: 0.50, Y: 0.32}},
		closed: [4]Point3D{{X: 0.50, Y: 0.58}, {X: 0.50, Y: 0.50}, {X: 0.52, Y: 0.56}, {X: 0.52, Y: 0.60}},
	},
	{ // ring
		open:   [4]Point3D{{X: 0.55, Y: 0.60}, {X: 0.55, Y: 0.50}, {X: 0.55, Y: 0.43}, {X: 0.55, Y: 0.37}},
		closed: [4]Point3D{{X: 0.55, Y: 0.60}, {X: 0.55, Y: 0.52}, {X: 0.57, Y: 0.58}, {X: 0.57, Y: 0.62}},
	},
	{ // pinky
		open:   [4]Point3D{{X: 0.60, Y: 0.63}, {X: 0.60, Y: 0.55}, {X: 0.60, Y: 0.50}, {X: 0.60, Y: 0.45}},
		closed: [4]Point3D{{X: 0.60, Y: 0.63}, {X: 0.60, Y: 0.57}, {X: 0.62, Y: 0.60}, {X: 0.62, Y: 0.64}},
	},
}

// HandPose builds a synthetic hand with the given fingers extended, in order
// thumb, index, middle, ring, pinky. A "Left" hand is the mirror image of a
// right hand around X = 0.5.
func HandPose(handedness string, open [5]bool) HandLandmarks {
	hand := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}
	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	for f, pose := range rightHandPoses {
		joints := pose.closed
		if open[f] {
			joints = pose.open
		}
		base := 1 + f*4
		for j, p := range joints {
			hand.Points[base+j] = p
		}
	}

	if handedness == Left {
		for i := range hand.Points {
			hand.Points[i].X = 1 - hand.Points[i].X
		}
	}

	return hand
}

// OpenPalmLandmarks returns a right hand with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	return HandPose(Right, [5]bool{true, true, true, true, true})
}

// FistLandmarks returns a right hand with every finger curled.
func FistLandmarks() HandLandmarks {
	return HandPose(Right, [5]bool{})
}

// PinchLandmarks returns a right hand with only thumb and index extended.
func PinchLandmarks() HandLandmarks {
	return HandPose(Right, [5]bool{true, true, false, false, false})
}

// PointingLandmarks returns a right hand with only the index finger extended.
func PointingLandmarks() HandLandmarks {
	return HandPose(Right, [5]bool{false, true, false, false, false})
}
