package overlay

import "gocv.io/x/gocv"

// KeyEscape is the key code WaitKey reports for ESC.
const KeyEscape = 27

// Window is an on-screen preview window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays img.
func (w *Window) Show(img gocv.Mat) {
	w.win.IMShow(img)
}

// WaitKey pumps window events for up to delay milliseconds and returns the
// pressed key, or -1.
func (w *Window) WaitKey(delay int) int {
	return w.win.WaitKey(delay)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
