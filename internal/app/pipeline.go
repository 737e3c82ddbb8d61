package app

import (
	"context"
	"fmt"

	"github.com/ayusman/handvolume/internal/gesture"
	"github.com/ayusman/handvolume/internal/overlay"
	"go.uber.org/zap"
)

// Run opens the camera and processes frames until the exit gesture is held,
// the exit key is pressed or ctx is cancelled. It returns ErrExitGesture for
// the gesture, nil for the key or cancellation, and an error when a frame
// cannot be read or analyzed.
//
// Per frame:
// 1. Read a (mirrored) frame
// 2. Detect hands
// 3. Classify each hand and step the session
// 4. Apply volume and mute to the sink
// 5. Draw skeleton and dashboard, show, poll the keyboard
func (a *App) Run(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	if a.display == nil {
		a.display = overlay.NewWindow(a.config.WindowTitle)
	}

	volMin, volMax := a.sink.Range()
	session := NewSession(volMin, volMax)

	a.logger.Info("frame loop started",
		zap.Int("camera", a.config.CameraID),
		zap.Float64("volume_min", volMin),
		zap.Float64("volume_max", volMax))

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("frame loop cancelled")
			return nil
		default:
		}

		stop, err := a.processFrame(ctx, session)
		if err != nil {
			return err
		}
		if stop {
			a.logger.Info("exit key pressed")
			return nil
		}
	}
}

// processFrame runs one loop iteration and reports whether the exit key was pressed.
func (a *App) processFrame(ctx context.Context, session *Session) (bool, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	hands, err := a.detector.Detect(frame)
	if err != nil {
		return false, fmt.Errorf("detect hands: %w", err)
	}

	view := overlay.View{Status: gesture.ModeIdle.String()}

	if len(hands) == 0 {
		a.report(session, session.Step(nil, a.now()))
	}

	for i := range hands {
		hand := hands[i].ToPixels(frame.Cols(), frame.Rows())
		out := session.Step(hand, a.now())
		a.report(session, out)

		if out.Exit {
			a.logger.Info("exit gesture held", zap.Duration("hold", gesture.ExitHold))
			return false, ErrExitGesture
		}

		a.apply(ctx, out)
		view = viewFor(out, session)
		overlay.DrawSkeleton(frame, hand)
	}

	overlay.Draw(frame, view)
	a.display.Show(*frame)

	key := a.display.WaitKey(a.config.KeyDelayMs)
	return key >= 0 && key&0xFF == a.config.ExitKey, nil
}

// apply issues the outcome's audio side effects. Sink failures are logged and
// do not stop the loop.
func (a *App) apply(ctx context.Context, out Outcome) {
	if !out.HandPresent {
		return
	}

	if out.Mode == gesture.ModeVolume {
		if err := a.sink.SetLevel(ctx, out.Level); err != nil {
			a.logger.Warn("set volume failed", zap.Float64("level", out.Level), zap.Error(err))
		}
	}

	if err := a.sink.SetMute(ctx, out.Mute); err != nil {
		a.logger.Warn("set mute failed", zap.Bool("muted", out.Mute), zap.Error(err))
	}
}

// report logs status transitions at info and every frame at debug.
func (a *App) report(session *Session, out Outcome) {
	status := out.Status()
	if session.observeStatus(status) {
		a.logger.Info("mode changed",
			zap.String("status", status),
			zap.Stringer("fingers", out.Fingers))
	}
	if ce := a.logger.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(
			zap.Bool("hand", out.HandPresent),
			zap.Stringer("fingers", out.Fingers),
			zap.String("status", status),
			zap.Float64("distance", out.Distance),
			zap.Duration("remaining", out.Remaining))
	}
}

// viewFor builds the dashboard for a hand outcome.
func viewFor(out Outcome, session *Session) overlay.View {
	v := overlay.View{
		Status:    out.Status(),
		Fingers:   out.Fingers.Count(),
		OpenNames: out.Fingers.OpenNames(),
	}

	switch out.Mode {
	case gesture.ModeVolume:
		v.Volume = &overlay.VolumeView{Thumb: out.Thumb, Index: out.Index, Distance: out.Distance}
	case gesture.ModeLaser:
		v.Trail = session.Trail()
	case gesture.ModeExit:
		v.Paused = true
		v.Remaining = out.Remaining
	}

	return v
}
