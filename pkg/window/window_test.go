package window

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/glcube/pkg/cube"
	"github.com/taigrr/glcube/pkg/gfx"
)

func newWindow(t *testing.T) *Window {
	t.Helper()
	w := New(cube.DefaultConfig())
	require.NoError(t, w.Initialize())
	return w
}

func TestSliderDrivesRotation(t *testing.T) {
	w := newWindow(t)
	s := w.Surface()

	w.Slider(cube.AxisY).SetValue(45)
	assert.Equal(t, 90.0, s.Rotation(cube.AxisY), "slider value is doubled")
	assert.Zero(t, s.Rotation(cube.AxisX))
	assert.Zero(t, s.Rotation(cube.AxisZ))

	w.Slider(cube.AxisZ).SetValue(99)
	assert.Equal(t, 198.0, s.Rotation(cube.AxisZ))
}

func TestHandleInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		active int
		value  int // value of the active slider afterwards
		quit   bool
	}{
		{"tab selects next", "\t", 1, 0, false},
		{"back tab wraps", "\x1b[Z", 2, 0, false},
		{"digit selects", "3", 2, 0, false},
		{"axis letter selects", "y", 1, 0, false},
		{"arrow steps", "\x1b[C\x1b[C\x1b[C\x1b[D", 0, 2, false},
		{"vi keys step", "lllh", 0, 2, false},
		{"page up", "\x1b[5~\x1b[5~", 0, 20, false},
		{"end jumps to max", "\x1b[F", 0, 99, false},
		{"home after end", "\x1b[F\x1b[H", 0, 0, false},
		{"down then step", "\x1b[B\x1b[C", 1, 1, false},
		{"unknown escape ignored", "\x1b[99xl", 0, 1, false},
		{"q quits", "lq", 0, 1, true},
		{"bare escape quits", "\x1b", 0, 0, true},
		{"ctrl-c quits", "\x03", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWindow(t)
			assert.Equal(t, tt.quit, w.HandleInput([]byte(tt.input)))
			assert.Equal(t, tt.active, w.Active())
			assert.Equal(t, tt.value, w.sliders[w.Active()].Value())
		})
	}
}

func TestHandleMouse(t *testing.T) {
	w := newWindow(t)
	require.NoError(t, w.Layout(60, 20))
	y := w.Slider(cube.AxisY)
	require.Equal(t, 18, y.Row)
	require.Equal(t, 3, y.X0)
	require.Equal(t, 51, y.Width)

	w.HandleMouse(y.X0+25, y.Row, MousePress)
	assert.Equal(t, 1, w.Active())
	assert.Equal(t, 50, y.Value())
	assert.Equal(t, 100.0, w.Surface().Rotation(cube.AxisY))

	// Dragging off the row still follows the column.
	w.HandleMouse(y.X0+50, 0, MouseDrag)
	assert.Equal(t, 99, y.Value())

	w.HandleMouse(0, 0, MouseRelease)
	w.HandleMouse(y.X0, 0, MouseDrag)
	assert.Equal(t, 99, y.Value(), "drag after release is ignored")

	// Presses outside every track do nothing.
	w.HandleMouse(1, 5, MousePress)
	assert.Equal(t, 1, w.Active())
}

func TestLayout(t *testing.T) {
	w := newWindow(t)
	assert.False(t, w.FrameShown(), "no frame before the first Layout")

	require.NoError(t, w.Layout(80, 24))
	fb := w.Framebuffer()
	assert.Equal(t, 80, fb.Width)
	assert.Equal(t, 40, fb.Height)
	assert.Equal(t, 2.0, w.Surface().Aspect())
	assert.True(t, w.FrameShown())
	for i, s := range w.sliders {
		assert.Equal(t, 21+i, s.Row, "slider %d row", i)
	}
}

func TestLayoutTooSmallHidesFrame(t *testing.T) {
	w := newWindow(t)
	// Straight from startup the framebuffer still has the configured size.
	assert.ErrorIs(t, w.Layout(80, 4), cube.ErrInvalidSize)
	assert.False(t, w.FrameShown())
	for i, s := range w.sliders {
		assert.Equal(t, i+1, s.Row, "sliders still fit on rows 1..3")
	}

	require.NoError(t, w.Layout(80, 24))
	assert.ErrorIs(t, w.Layout(80, 4), cube.ErrInvalidSize)
	assert.False(t, w.FrameShown(), "a shrink below the minimum hides the stale frame")
	fb := w.Framebuffer()
	assert.Equal(t, 80, fb.Width)
	assert.Equal(t, 40, fb.Height, "rejected layout keeps the previous size")
	assert.Equal(t, 2.0, w.Surface().Aspect())

	require.NoError(t, w.Layout(80, 10))
	assert.True(t, w.FrameShown())
	assert.Equal(t, 12, w.Framebuffer().Height)
}

func TestFrameRenders(t *testing.T) {
	w := newWindow(t)
	require.NoError(t, w.Layout(60, 34))
	w.Slider(cube.AxisX).SetValue(20)
	require.NoError(t, w.Frame())

	fb := w.Framebuffer()
	assert.Equal(t, gfx.ColorBlue, fb.GetPixel(0, 0), "corner shows the clear color")
	assert.NotEqual(t, gfx.ColorBlue, fb.GetPixel(fb.Width/2, fb.Height/2), "center is covered by the cube")
	assert.NotZero(t, w.Slider(cube.AxisX).Thumb(), "Frame advances slider animation")

	img := fb.ToImage()
	assert.Equal(t, 60, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestTick(t *testing.T) {
	w := newWindow(t)
	require.NoError(t, w.Layout(40, 24))

	more, err := w.Tick([]byte("\x1b[C"))
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, 2.0, w.Surface().Rotation(cube.AxisX))
	assert.NotZero(t, w.Slider(cube.AxisX).Thumb(), "Tick redraws and animates")

	more, err = w.Tick(nil)
	require.NoError(t, err)
	assert.True(t, more)

	more, err = w.Tick([]byte("q"))
	require.NoError(t, err)
	assert.False(t, more)
}

func TestSliderLine(t *testing.T) {
	w := newWindow(t)
	require.NoError(t, w.Layout(40, 24))
	w.Slider(cube.AxisX).SetValue(99)

	line := w.sliderLine(0)
	assert.True(t, strings.HasPrefix(line, "X> "), "active line %q", line)
	assert.True(t, strings.HasSuffix(line, "  198°"), "active line %q", line)

	line = w.sliderLine(1)
	assert.True(t, strings.HasPrefix(line, "Y  "), "inactive line %q", line)
	assert.True(t, strings.HasSuffix(line, "    0°"), "inactive line %q", line)
}
