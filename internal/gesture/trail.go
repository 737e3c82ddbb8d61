package gesture

import (
	"image"

	ring "github.com/zfjagann/golang-ring"
)

// TrailCapacity is the number of fingertip positions kept for the laser.
const TrailCapacity = 15

// Trail is a bounded FIFO of recent fingertip positions. Once full, each push
// evicts the oldest point. Not safe for concurrent use.
type Trail struct {
	buf ring.Ring
}

// NewTrail creates a trail holding at most capacity points.
// Non-positive capacities fall back to TrailCapacity.
func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = TrailCapacity
	}
	t := &Trail{}
	t.buf.SetCapacity(capacity)
	return t
}

// Push appends a point, evicting the oldest when at capacity.
func (t *Trail) Push(p image.Point) {
	t.buf.Enqueue(p)
}

// Points returns the trail oldest first.
func (t *Trail) Points() []image.Point {
	values := t.buf.Values()
	points := make([]image.Point, 0, len(values))
	for _, v := range values {
		points = append(points, v.(image.Point))
	}
	return points
}
