// Package window is the host shell around the cube surface: a terminal
// "window" with the rendered frame on top and three rotation sliders below.
package window

import (
	"bytes"
	"fmt"
	"time"

	"github.com/taigrr/glcube/pkg/cube"
	"github.com/taigrr/glcube/pkg/gfx"
)

const (
	titleRows  = 1
	sliderRows = 3
	labelCols  = 3 // "X> "
	valueCols  = 6 // " 198°"
)

// MouseAction is the subset of mouse events the sliders react to.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseDrag
	MouseRelease
)

// Window wires three sliders to a cube.Surface drawing through a software
// context. All methods run on the event loop goroutine.
type Window struct {
	cfg     cube.Config
	surface *cube.Surface
	fb      *gfx.Framebuffer
	ctx     *gfx.Soft
	sliders [sliderRows]*Slider

	active   int
	dragging int
	cols     int
	rows     int

	// frameShown is false until a Layout fits a frame and again after one
	// that doesn't, so a stale framebuffer never spills over the sliders.
	frameShown bool
}

// New builds the window; each slider change sets the matching rotation to
// value*cfg.SliderScale degrees.
func New(cfg cube.Config) *Window {
	w := &Window{
		cfg:      cfg,
		surface:  cube.NewSurface(cfg),
		fb:       gfx.NewFramebuffer(cfg.Width, cfg.Height),
		dragging: -1,
	}
	w.ctx = gfx.NewSoft(w.fb)
	fps := FPS(cfg.FrameInterval())
	for i, axis := range cube.Axes {
		s := NewSlider(axis.String(), int(fps+0.5))
		s.OnChange = func(v int) {
			w.surface.SetRotation(axis, float64(v)*cfg.SliderScale)
		}
		w.sliders[i] = s
	}
	return w
}

// FPS converts a redraw period into a rate.
func FPS(interval time.Duration) float64 {
	if interval <= 0 {
		return 1
	}
	return float64(time.Second) / float64(interval)
}

// Surface returns the rendering surface.
func (w *Window) Surface() *cube.Surface { return w.surface }

// Framebuffer returns the render target.
func (w *Window) Framebuffer() *gfx.Framebuffer { return w.fb }

// Slider returns the slider driving axis.
func (w *Window) Slider(axis cube.Axis) *Slider { return w.sliders[axis] }

// Active returns the index of the slider keyboard input goes to.
func (w *Window) Active() int { return w.active }

// Initialize prepares the graphics state and sizes the surface to the
// configured window size until the first Layout.
func (w *Window) Initialize() error {
	if err := w.surface.Initialize(w.ctx); err != nil {
		return fmt.Errorf("initialize surface: %w", err)
	}
	return w.surface.Resize(w.fb.Width, w.fb.Height)
}

// Layout fits the window into a cols x rows terminal: the title on the
// first row, the sliders on the last three, the frame in between at two
// pixels per cell vertically. A terminal too small for a frame hides it,
// keeps the previous frame size and returns the resize error.
func (w *Window) Layout(cols, rows int) error {
	w.cols, w.rows = cols, rows
	for i, s := range w.sliders {
		s.Layout(rows-sliderRows+i, labelCols, cols-labelCols-valueCols)
	}
	width, height := cols, (rows-titleRows-sliderRows)*2
	if err := w.surface.Resize(width, height); err != nil {
		w.frameShown = false
		return err
	}
	w.fb.Resize(width, height)
	w.frameShown = true
	return nil
}

// FrameShown reports whether the last Layout left room for the frame.
func (w *Window) FrameShown() bool { return w.frameShown }

// Frame advances the slider animations and redraws the cube.
func (w *Window) Frame() error {
	for _, s := range w.sliders {
		s.Update()
	}
	return w.surface.Draw()
}

// Tick runs one timer period: it applies pending input, then redraws.
// It returns false once the user quits or the frame fails.
func (w *Window) Tick(input []byte) (bool, error) {
	if w.HandleInput(input) {
		return false, nil
	}
	if err := w.Frame(); err != nil {
		return false, err
	}
	return true, nil
}

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyPageUp
	keyPageDown
	keyHome
	keyEnd
	keyBackTab
)

var escapeKeys = []struct {
	seq string
	key key
}{
	{"\x1b[A", keyUp},
	{"\x1b[B", keyDown},
	{"\x1b[C", keyRight},
	{"\x1b[D", keyLeft},
	{"\x1bOA", keyUp},
	{"\x1bOB", keyDown},
	{"\x1bOC", keyRight},
	{"\x1bOD", keyLeft},
	{"\x1b[5~", keyPageUp},
	{"\x1b[6~", keyPageDown},
	{"\x1b[H", keyHome},
	{"\x1b[F", keyEnd},
	{"\x1b[1~", keyHome},
	{"\x1b[4~", keyEnd},
	{"\x1b[Z", keyBackTab},
}

func (w *Window) selectSlider(i int) {
	w.active = (i%sliderRows + sliderRows) % sliderRows
}

// HandleInput applies raw terminal input and reports whether to quit.
func (w *Window) HandleInput(data []byte) (quit bool) {
	for len(data) > 0 {
		if data[0] == 0x1b && len(data) > 1 {
			k, n := matchEscape(data)
			w.handleKey(k)
			data = data[n:]
			continue
		}
		b := data[0]
		data = data[1:]
		s := w.sliders[w.active]
		switch b {
		case 'q', 'Q', 0x1b, 3, 4: // Esc, Ctrl-C, Ctrl-D
			return true
		case '\t':
			w.selectSlider(w.active + 1)
		case '1', '2', '3':
			w.selectSlider(int(b - '1'))
		case 'x', 'X', 'y', 'Y', 'z', 'Z':
			if a, err := cube.ParseAxis(string(b)); err == nil {
				w.selectSlider(int(a))
			}
		case 'k':
			w.selectSlider(w.active - 1)
		case 'j':
			w.selectSlider(w.active + 1)
		case 'h', '-':
			s.StepBy(-1)
		case 'l', '+', '=':
			s.StepBy(1)
		}
	}
	return false
}

// matchEscape decodes one escape sequence, returning the bytes consumed.
// Unknown sequences consume only the ESC byte.
func matchEscape(data []byte) (key, int) {
	for _, e := range escapeKeys {
		if bytes.HasPrefix(data, []byte(e.seq)) {
			return e.key, len(e.seq)
		}
	}
	return keyNone, 1
}

func (w *Window) handleKey(k key) {
	s := w.sliders[w.active]
	switch k {
	case keyUp, keyBackTab:
		w.selectSlider(w.active - 1)
	case keyDown:
		w.selectSlider(w.active + 1)
	case keyLeft:
		s.StepBy(-1)
	case keyRight:
		s.StepBy(1)
	case keyPageUp:
		s.PageBy(1)
	case keyPageDown:
		s.PageBy(-1)
	case keyHome:
		s.SetValue(s.Min)
	case keyEnd:
		s.SetValue(s.Max)
	}
}

// HandleMouse applies a mouse event at 0-based cell (x, y). A press on a
// track selects that slider and starts a drag; drags keep following the
// column even off the row until release.
func (w *Window) HandleMouse(x, y int, action MouseAction) {
	switch action {
	case MousePress:
		for i, s := range w.sliders {
			if s.Contains(x, y) {
				w.active, w.dragging = i, i
				s.SetValue(s.ValueAt(x))
				return
			}
		}
	case MouseDrag:
		if w.dragging >= 0 {
			s := w.sliders[w.dragging]
			s.SetValue(s.ValueAt(x))
		}
	case MouseRelease:
		w.dragging = -1
	}
}

// sliderLine renders one slider row: marker, label, track, angle.
func (w *Window) sliderLine(i int) string {
	s := w.sliders[i]
	marker := " "
	if i == w.active {
		marker = ">"
	}
	deg := float64(s.Value()) * w.cfg.SliderScale
	return fmt.Sprintf("%s%s %s%5.0f°", s.Label, marker, s.Track(), deg)
}
