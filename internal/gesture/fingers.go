// Package gesture classifies hand poses into finger vectors and control modes.
package gesture

import (
	"fmt"

	"github.com/ayusman/handvolume/internal/detector"
)

// Finger positions in a Fingers vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// TipIDs are the landmark indices of the five fingertips.
var TipIDs = [NumFingers]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// FingerNames are display names indexed by finger position.
var FingerNames = [NumFingers]string{"Thumb", "Index", "Middle", "Ring", "Pinky"}

// Fingers records which fingers are open: thumb, index, middle, ring, pinky.
type Fingers [NumFingers]bool

// Classify derives the open/closed state of each finger from a pixel hand.
//
// The thumb is open when its tip lies outward of the IP joint along X: to the
// right for a "Left" hand, to the left otherwise. The other fingers are open
// when the tip lies strictly above (smaller Y) the PIP joint two landmarks
// back. Ties are closed.
func Classify(hand *detector.PixelHand) Fingers {
	var f Fingers
	if hand == nil {
		return f
	}

	tip := hand.Points[TipIDs[Thumb]]
	joint := hand.Points[TipIDs[Thumb]-1]
	if hand.Handedness == detector.Left {
		f[Thumb] = tip.X > joint.X
	} else {
		f[Thumb] = tip.X < joint.X
	}

	for i := Index; i < NumFingers; i++ {
		f[i] = hand.Points[TipIDs[i]].Y < hand.Points[TipIDs[i]-2].Y
	}

	return f
}

// Count returns the number of open fingers.
func (f Fingers) Count() int {
	n := 0
	for _, open := range f {
		if open {
			n++
		}
	}
	return n
}

// Only reports whether exactly the given fingers are open.
func (f Fingers) Only(fingers ...int) bool {
	var want Fingers
	for _, i := range fingers {
		want[i] = true
	}
	return f == want
}

// OpenNames lists the open fingers with their tip landmark, e.g. "Index(8)".
func (f Fingers) OpenNames() []string {
	names := make([]string, 0, NumFingers)
	for i, open := range f {
		if open {
			names = append(names, fmt.Sprintf("%s(%d)", FingerNames[i], TipIDs[i]))
		}
	}
	return names
}

// String renders the vector as five 0/1 digits.
func (f Fingers) String() string {
	b := make([]byte, NumFingers)
	for i, open := range f {
		b[i] = '0'
		if open {
			b[i] = '1'
		}
	}
	return string(b)
}
