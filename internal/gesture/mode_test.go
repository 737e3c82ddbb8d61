package gesture

import (
	"image"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		fingers Fingers
		want    Mode
	}{
		{name: "thumb and index", fingers: Fingers{true, true, false, false, false}, want: ModeVolume},
		{name: "open hand", fingers: Fingers{true, true, true, true, true}, want: ModeExit},
		{name: "index only", fingers: Fingers{false, true, false, false, false}, want: ModeLaser},
		{name: "fist", fingers: Fingers{}, want: ModeMute},
		{name: "thumb only", fingers: Fingers{true, false, false, false, false}, want: ModeIdle},
		{name: "pinky only", fingers: Fingers{false, false, false, false, true}, want: ModeIdle},
		{name: "index and middle", fingers: Fingers{false, true, true, false, false}, want: ModeIdle},
		{name: "four fingers", fingers: Fingers{false, true, true, true, true}, want: ModeIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.fingers); got != tt.want {
				t.Errorf("Select(%s) = %v, want %v", tt.fingers, got, tt.want)
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	want := map[Mode]string{
		ModeIdle:   "IDLE",
		ModeVolume: "VOLUME CONTROL",
		ModeExit:   "EXITING...",
		ModeLaser:  "LASER",
		ModeMute:   "MUTED",
		Mode(99):   "IDLE",
	}
	for mode, s := range want {
		if got := mode.String(); got != s {
			t.Errorf("Mode(%d).String() = %q, want %q", int(mode), got, s)
		}
	}
}

func TestVolumeLevel(t *testing.T) {
	const min, max = -65.25, 0.0

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{name: "lower bound", distance: 30, want: min},
		{name: "upper bound", distance: 200, want: max},
		{name: "midpoint", distance: 115, want: (min + max) / 2},
		{name: "below range extrapolates", distance: 13, want: min - (max-min)*0.1},
		{name: "above range extrapolates", distance: 217, want: max + (max-min)*0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VolumeLevel(tt.distance, min, max)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VolumeLevel(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestVolumePercentAndBar(t *testing.T) {
	tests := []struct {
		distance    float64
		wantPercent float64
		wantBar     float64
	}{
		{distance: 30, wantPercent: 0, wantBar: BarBottom},
		{distance: 115, wantPercent: 50, wantBar: (BarTop + BarBottom) / 2},
		{distance: 200, wantPercent: 100, wantBar: BarTop},
		{distance: 0, wantPercent: 0, wantBar: BarBottom},
		{distance: 500, wantPercent: 100, wantBar: BarTop},
	}

	for _, tt := range tests {
		if got := VolumePercent(tt.distance); math.Abs(got-tt.wantPercent) > 1e-9 {
			t.Errorf("VolumePercent(%v) = %v, want %v", tt.distance, got, tt.wantPercent)
		}
		if got := VolumeBar(tt.distance); math.Abs(got-tt.wantBar) > 1e-9 {
			t.Errorf("VolumeBar(%v) = %v, want %v", tt.distance, got, tt.wantBar)
		}
	}
}

func TestInterp_DegenerateRange(t *testing.T) {
	if got := Interp(5, 1, 1, 7, 9); got != 7 {
		t.Errorf("Interp with empty input range = %v, want 7", got)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(image.Pt(0, 0), image.Pt(3, 4)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestHoldTimer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first observe starts the hold", func(t *testing.T) {
		var h HoldTimer
		if got := h.Observe(t0); got != 0 {
			t.Errorf("first Observe() = %v, want 0", got)
		}
		if got := h.Observe(t0.Add(time.Second)); got != time.Second {
			t.Errorf("Observe() one second later = %v, want 1s", got)
		}
	})

	t.Run("reaches the exit hold exactly at five seconds", func(t *testing.T) {
		var h HoldTimer
		h.Observe(t0)

		if got := h.Observe(t0.Add(ExitHold - time.Millisecond)); got >= ExitHold {
			t.Errorf("elapsed %v should be below %v", got, ExitHold)
		}
		if got := h.Observe(t0.Add(ExitHold)); got < ExitHold {
			t.Errorf("elapsed %v should reach %v", got, ExitHold)
		}
	})

	t.Run("reset restarts the hold", func(t *testing.T) {
		var h HoldTimer
		h.Observe(t0)
		h.Reset()
		if got := h.Observe(t0.Add(10 * time.Second)); got != 0 {
			t.Errorf("Observe after Reset = %v, want 0", got)
		}
	})
}

func TestTrail(t *testing.T) {
	t.Run("never exceeds capacity", func(t *testing.T) {
		trail := NewTrail(TrailCapacity)
		for i := 0; i < 40; i++ {
			trail.Push(image.Pt(i, i))
			if n := len(trail.Points()); n > TrailCapacity {
				t.Fatalf("after %d pushes the trail holds %d, exceeds %d", i+1, n, TrailCapacity)
			}
		}
	})

	t.Run("sixteen pushes keep the last fifteen in order", func(t *testing.T) {
		trail := NewTrail(TrailCapacity)
		for i := 0; i < 16; i++ {
			trail.Push(image.Pt(i, 2*i))
		}

		got := trail.Points()
		if len(got) != 15 {
			t.Fatalf("Len = %d, want 15", len(got))
		}
		for i, p := range got {
			want := image.Pt(i+1, 2*(i+1))
			if p != want {
				t.Errorf("point %d = %v, want %v", i, p, want)
			}
		}
		for _, p := range got {
			if p == image.Pt(0, 0) {
				t.Error("first pushed point should have been evicted")
			}
		}
	})

	t.Run("partial fill keeps insertion order", func(t *testing.T) {
		trail := NewTrail(TrailCapacity)
		want := []image.Point{image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3)}
		for _, p := range want {
			trail.Push(p)
		}
		if got := trail.Points(); !reflect.DeepEqual(got, want) {
			t.Errorf("Points() = %v, want %v", got, want)
		}
	})

	t.Run("non-positive capacity uses the default", func(t *testing.T) {
		trail := NewTrail(0)
		if len(trail.Points()) != 0 {
			t.Error("new trail should be empty")
		}
		for i := 0; i < 20; i++ {
			trail.Push(image.Pt(i, i))
		}
		if got := len(trail.Points()); got != TrailCapacity {
			t.Errorf("len(Points()) = %d, want %d", got, TrailCapacity)
		}
	})
}
