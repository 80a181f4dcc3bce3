package cube

import (
	"errors"
	"fmt"

	"github.com/taigrr/glcube/pkg/gfx"
	"github.com/taigrr/glcube/pkg/math3d"
)

var (
	// ErrNoContext is returned by Initialize when given a nil context.
	ErrNoContext = errors.New("no graphics context")
	// ErrNotInitialized is returned by Resize and Draw before Initialize.
	ErrNotInitialized = errors.New("surface not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("surface already initialized")
	// ErrInvalidSize wraps Resize calls with a non-positive dimension.
	ErrInvalidSize = errors.New("invalid surface size")
)

// Surface owns the cube's graphics resources and rotation state. It is
// used from a single goroutine: Initialize once, then Resize on size
// changes, SetRotation on slider changes and Draw on every frame tick.
type Surface struct {
	cfg Config
	ctx gfx.Context

	vertices *gfx.Buffer
	colors   *gfx.Buffer
	indices  []uint32

	rot    [3]float64 // degrees, indexed by Axis
	aspect float64
}

// NewSurface returns an uninitialized surface with all angles at zero.
func NewSurface(cfg Config) *Surface {
	return &Surface{cfg: cfg}
}

// Config returns the configuration the surface was built with.
func (s *Surface) Config() Config { return s.cfg }

// Initialized reports whether Initialize has succeeded.
func (s *Surface) Initialized() bool { return s.ctx != nil }

// Initialize sets the clear color, enables depth testing and uploads the
// position and color buffers. It must run once, after ctx is current.
func (s *Surface) Initialize(ctx gfx.Context) error {
	if ctx == nil {
		return ErrNoContext
	}
	if s.ctx != nil {
		return ErrAlreadyInitialized
	}
	r, g, b := s.cfg.ClearColorFloat()
	ctx.ClearColor(r, g, b, 1)
	ctx.Enable(gfx.DepthTest)

	s.vertices = ctx.NewBuffer(flatten(positions))
	s.colors = ctx.NewBuffer(flatten(colors))
	idx := Indices()
	s.indices = idx[:]
	s.ctx = ctx
	return nil
}

// Resize sets the viewport and replaces the projection with a perspective
// of aspect width/height. Non-positive sizes are rejected and the previous
// projection stays in place.
func (s *Surface) Resize(width, height int) error {
	if s.ctx == nil {
		return ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s.aspect = float64(width) / float64(height)

	s.ctx.Viewport(0, 0, width, height)
	s.ctx.MatrixMode(gfx.Projection)
	s.ctx.LoadIdentity()
	s.ctx.Perspective(s.cfg.FovY, s.aspect, s.cfg.Near, s.cfg.Far)
	s.ctx.MatrixMode(gfx.ModelView)
	return nil
}

// Aspect returns the aspect ratio of the last accepted Resize, or 0.
func (s *Surface) Aspect() float64 { return s.aspect }

// SetRotation stores the angle for one axis in degrees. The value is used
// as given: no clamping, no wrap-around.
func (s *Surface) SetRotation(axis Axis, degrees float64) {
	if !axis.valid() {
		return
	}
	s.rot[axis] = degrees
}

// Rotation returns the stored angle for axis in degrees.
func (s *Surface) Rotation(axis Axis) float64 {
	if !axis.valid() {
		return 0
	}
	return s.rot[axis]
}

// ModelMatrix returns the modelview transform Draw applies on top of the
// current matrix: camera offset, scale, X, Y, Z rotations, re-centering.
func (s *Surface) ModelMatrix() math3d.Mat4 {
	m := math3d.Translate(math3d.V3(0, 0, s.cfg.CameraZ))
	m = m.Mul(math3d.Scale(math3d.V3(s.cfg.ModelScale, s.cfg.ModelScale, s.cfg.ModelScale)))
	for _, a := range Axes {
		m = m.Mul(math3d.Rotate(s.rot[a], a.Vector()))
	}
	return m.Mul(math3d.Translate(math3d.V3(-0.5, -0.5, -0.5)))
}

// Draw renders one frame. The modelview matrix is saved and restored
// around the cube, so the stack depth is the same before and after.
func (s *Surface) Draw() error {
	if s.ctx == nil {
		return ErrNotInitialized
	}
	ctx := s.ctx
	ctx.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)

	ctx.PushMatrix()
	ctx.Translate(0, 0, s.cfg.CameraZ)
	ctx.Scale(s.cfg.ModelScale, s.cfg.ModelScale, s.cfg.ModelScale)
	for _, a := range Axes {
		v := a.Vector()
		ctx.Rotate(s.rot[a], v.X, v.Y, v.Z)
	}
	ctx.Translate(-0.5, -0.5, -0.5)

	ctx.EnableClientState(gfx.VertexArray)
	ctx.EnableClientState(gfx.ColorArray)
	ctx.VertexPointer(3, s.vertices)
	ctx.ColorPointer(3, s.colors)

	drawErr := ctx.DrawElements(gfx.Quads, s.indices)
	if drawErr != nil {
		drawErr = fmt.Errorf("draw cube: %w", drawErr)
	}

	ctx.DisableClientState(gfx.VertexArray)
	ctx.DisableClientState(gfx.ColorArray)
	return errors.Join(drawErr, ctx.PopMatrix())
}
