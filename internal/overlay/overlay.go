// Package overlay draws the control dashboard onto video frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/ayusman/handvolume/internal/detector"
	"github.com/ayusman/handvolume/internal/gesture"
	"gocv.io/x/gocv"
)

// Colors used by the dashboard.
var (
	ColorStatus = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	ColorText   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ColorDim    = color.RGBA{R: 200, G: 200, B: 200, A: 0}
	ColorPinch  = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	ColorVolume = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	ColorPaused = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ColorJoint  = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ColorBone   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

const (
	// Volume bar horizontal extent in pixels.
	barLeft  = 50
	barRight = 85

	// Laser segments fade from laserMinRed (oldest) to laserMaxRed (newest).
	laserMinRed    = 80
	laserMaxRed    = 255
	laserThickness = 3
)

// VolumeView is the pinch state shown while volume control is active.
type VolumeView struct {
	Thumb    image.Point
	Index    image.Point
	Distance float64
}

// View is everything drawn for one frame.
type View struct {
	Status    string
	Fingers   int
	OpenNames []string
	Volume    *VolumeView
	Trail     []image.Point
	Paused    bool
	Remaining time.Duration
}

// Draw renders v onto img.
func Draw(img *gocv.Mat, v View) {
	if v.Volume != nil {
		drawVolume(img, v.Volume)
	}
	if len(v.Trail) > 1 {
		DrawTrail(img, v.Trail)
	}

	gocv.PutText(img, "STATUS: "+v.Status, image.Pt(10, 50), gocv.FontHersheySimplex, 1, ColorStatus, 2)
	gocv.PutText(img, fmt.Sprintf("FINGERS: %d", v.Fingers), image.Pt(10, 90), gocv.FontHersheySimplex, 0.7, ColorText, 2)
	gocv.PutText(img, "OPEN: "+strings.Join(v.OpenNames, ", "), image.Pt(10, 120), gocv.FontHersheySimplex, 0.5, ColorDim, 1)

	if v.Paused {
		gocv.PutText(img, "PAUSED", image.Pt(200, 250), gocv.FontHersheySimplex, 2, ColorPaused, 4)
		remaining := v.Remaining
		if remaining < 0 {
			remaining = 0
		}
		gocv.PutText(img, fmt.Sprintf("EXIT IN %.1fs", remaining.Seconds()), image.Pt(200, 300), gocv.FontHersheySimplex, 1, ColorPaused, 2)
	}
}

func drawVolume(img *gocv.Mat, v *VolumeView) {
	gocv.Line(img, v.Thumb, v.Index, ColorPinch, 3)
	gocv.Circle(img, v.Thumb, 8, ColorPinch, -1)
	gocv.Circle(img, v.Index, 8, ColorPinch, -1)

	top := int(gesture.VolumeBar(v.Distance))
	bottom := int(gesture.BarBottom)
	gocv.Rectangle(img, image.Rect(barLeft, int(gesture.BarTop), barRight, bottom), ColorDim, 2)
	gocv.Rectangle(img, image.Rect(barLeft, top, barRight, bottom), ColorVolume, -1)
	gocv.PutText(img, fmt.Sprintf("%d %%", int(gesture.VolumePercent(v.Distance))), image.Pt(40, 430), gocv.FontHersheySimplex, 0.8, ColorVolume, 2)
}

// DrawTrail joins consecutive trail points, oldest dimmest.
func DrawTrail(img *gocv.Mat, trail []image.Point) {
	segments := len(trail) - 1
	for i := 1; i < len(trail); i++ {
		red := laserMinRed + (laserMaxRed-laserMinRed)*i/segments
		gocv.Line(img, trail[i-1], trail[i], color.RGBA{R: uint8(red), A: 0}, laserThickness)
	}
}

// DrawSkeleton draws the hand's bones and joints.
func DrawSkeleton(img *gocv.Mat, hand *detector.PixelHand) {
	if hand == nil {
		return
	}
	for _, c := range detector.Connections {
		gocv.Line(img, hand.Points[c[0]], hand.Points[c[1]], ColorBone, 2)
	}
	for _, p := range hand.Points {
		gocv.Circle(img, p, 4, ColorJoint, -1)
	}
}
