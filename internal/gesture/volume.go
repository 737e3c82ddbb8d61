package gesture

import (
	"image"
	"math"
)

// Pinch distance range in pixels mapped onto the device volume range.
const (
	PinchMin = 30.0
	PinchMax = 200.0
)

// Volume bar geometry for the overlay, in pixels. The bar fills upward, so
// PinchMin maps to BarBottom and PinchMax to BarTop.
const (
	BarTop    = 150.0
	BarBottom = 400.0
)

// Distance returns the Euclidean pixel distance between two points.
func Distance(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Interp maps x from [x0, x1] onto [y0, y1] linearly. Values outside the
// input range extrapolate along the same line.
func Interp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// VolumeLevel maps a pinch distance onto the device range [min, max].
// The result is not clamped.
func VolumeLevel(distance, min, max float64) float64 {
	return Interp(distance, PinchMin, PinchMax, min, max)
}

// VolumePercent maps a pinch distance onto 0-100 for display, clamped.
func VolumePercent(distance float64) float64 {
	return clamp(Interp(distance, PinchMin, PinchMax, 0, 100), 0, 100)
}

// VolumeBar returns the Y coordinate of the top of the filled volume bar, clamped.
func VolumeBar(distance float64) float64 {
	return clamp(Interp(distance, PinchMin, PinchMax, BarBottom, BarTop), BarTop, BarBottom)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
