package gesture

// Mode is the control mode selected for a frame.
type Mode int

const (
	// ModeIdle covers every finger combination without a bound action.
	ModeIdle Mode = iota
	// ModeVolume maps the thumb-index pinch distance onto the output volume.
	ModeVolume
	// ModeExit counts down the open-hand hold that terminates the program.
	ModeExit
	// ModeLaser extends the laser trail with the index fingertip.
	ModeLaser
	// ModeMute mutes the output device.
	ModeMute
)

// String returns the dashboard status text for the mode.
func (m Mode) String() string {
	switch m {
	case ModeVolume:
		return "VOLUME CONTROL"
	case ModeExit:
		return "EXITING..."
	case ModeLaser:
		return "LASER"
	case ModeMute:
		return "MUTED"
	default:
		return "IDLE"
	}
}

// Select picks the mode for a finger vector. Checks run in priority order and
// exactly one mode is returned.
func Select(f Fingers) Mode {
	switch {
	case f.Only(Thumb, Index):
		return ModeVolume
	case f.Count() == NumFingers:
		return ModeExit
	case f.Only(Index):
		return ModeLaser
	case f.Count() == 0:
		return ModeMute
	default:
		return ModeIdle
	}
}
