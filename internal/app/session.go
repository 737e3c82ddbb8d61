package app

import (
	"image"
	"time"

	"github.com/ayusman/handvolume/internal/detector"
	"github.com/ayusman/handvolume/internal/gesture"
)

// Outcome is the result of classifying one hand in one frame.
type Outcome struct {
	// HandPresent is false for frames where the detector found no hand.
	HandPresent bool
	Fingers     gesture.Fingers
	Mode        gesture.Mode

	// Volume control: pinch endpoints, their distance and the mapped level.
	Thumb    image.Point
	Index    image.Point
	Distance float64
	Level    float64

	// Mute is the mute flag to apply when a hand is present.
	Mute bool

	// Exit countdown.
	Remaining time.Duration
	Exit      bool
}

// Status returns the dashboard status text.
func (o Outcome) Status() string {
	if !o.HandPresent {
		return gesture.ModeIdle.String()
	}
	return o.Mode.String()
}

// Session holds the state that survives between frames: the open-hand hold
// timer and the laser trail. It is owned by a single frame loop.
type Session struct {
	hold       gesture.HoldTimer
	trail      *gesture.Trail
	volMin     float64
	volMax     float64
	lastStatus string
}

// NewSession creates a session mapping pinch distances onto [volMin, volMax].
func NewSession(volMin, volMax float64) *Session {
	return &Session{
		trail:      gesture.NewTrail(gesture.TrailCapacity),
		volMin:     volMin,
		volMax:     volMax,
		lastStatus: gesture.ModeIdle.String(),
	}
}

// Step classifies hand at time now and updates the session state. A nil hand
// means no hand was detected: the hold timer is reset and nothing else changes.
func (s *Session) Step(hand *detector.PixelHand, now time.Time) Outcome {
	if hand == nil {
		s.hold.Reset()
		return Outcome{Mode: gesture.ModeIdle}
	}

	fingers := gesture.Classify(hand)
	out := Outcome{
		HandPresent: true,
		Fingers:     fingers,
		Mode:        gesture.Select(fingers),
		Thumb:       hand.Points[detector.ThumbTip],
		Index:       hand.Points[detector.IndexTip],
	}

	if out.Mode != gesture.ModeExit {
		s.hold.Reset()
	}

	switch out.Mode {
	case gesture.ModeVolume:
		out.Distance = gesture.Distance(out.Thumb, out.Index)
		out.Level = gesture.VolumeLevel(out.Distance, s.volMin, s.volMax)

	case gesture.ModeExit:
		elapsed := s.hold.Observe(now)
		out.Remaining = gesture.ExitHold - elapsed
		out.Exit = elapsed >= gesture.ExitHold

	case gesture.ModeLaser:
		// The trail is kept across other gestures; only capacity evicts.
		s.trail.Push(out.Index)

	case gesture.ModeMute:
		out.Mute = true
	}

	return out
}

// Trail returns the laser trail oldest first.
func (s *Session) Trail() []image.Point {
	return s.trail.Points()
}

// observeStatus records status and reports whether it differs from the
// previous one.
func (s *Session) observeStatus(status string) bool {
	changed := status != s.lastStatus
	s.lastStatus = status
	return changed
}
