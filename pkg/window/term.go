package window

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
)

// Run opens the terminal, initializes the surface and redraws it every
// configured frame interval until the user quits or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	ap := ansipixels.NewAnsiPixels(FPS(w.cfg.FrameInterval()))
	if err := ap.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.MouseTrackingOn()
	ap.HideCursor()

	if err := w.Initialize(); err != nil {
		return err
	}
	if err := w.Layout(ap.W, ap.H); err != nil {
		log.Warnf("terminal %dx%d too small for a frame: %v", ap.W, ap.H, err)
	}

	ap.OnResize = func() error {
		if err := w.Layout(ap.W, ap.H); err != nil {
			log.Debugf("resize ignored: %v", err)
		}
		return nil
	}
	// ansipixels reports 1-based mouse coordinates.
	ap.OnMouse = func() {
		switch {
		case ap.LeftClick():
			w.HandleMouse(ap.Mx-1, ap.My-1, MousePress)
		case ap.LeftDrag():
			w.HandleMouse(ap.Mx-1, ap.My-1, MouseDrag)
		case ap.MouseRelease():
			w.HandleMouse(ap.Mx-1, ap.My-1, MouseRelease)
		}
	}

	var frameErr error
	err := ap.FPSTicks(ctx, func(context.Context) bool {
		var more bool
		if more, frameErr = w.Tick(ap.Data); !more {
			return false
		}
		w.present(ap)
		return true
	})
	return errors.Join(frameErr, err)
}

// present paints one frame. FPSTicks brackets it in sync mode.
func (w *Window) present(ap *ansipixels.AnsiPixels) {
	ap.ClearScreen()
	ap.WriteCentered(0, "%s", w.cfg.Title)
	if w.frameShown {
		ap.DrawTrueColorImage(0, titleRows, w.fb.ToImage())
	}
	for i, s := range w.sliders {
		ap.WriteAtStr(0, s.Row, w.sliderLine(i))
	}
}
