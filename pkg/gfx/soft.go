package gfx

import (
	"fmt"
	"image"
	"math"

	"github.com/taigrr/glcube/pkg/math3d"
)

// Stats counts pipeline work. DrawCalls and LastIndexCount only change on
// a DrawElements call that passes validation.
type Stats struct {
	DrawCalls       int
	LastIndexCount  int
	Triangles       int // rasterized by the last draw, after clipping
	ModelViewDepth  int
	ProjectionDepth int
}

var _ Context = (*Soft)(nil)

type pointer struct {
	size int
	buf  *Buffer
}

// Soft is a software fixed-function pipeline rendering into a Framebuffer.
type Soft struct {
	fb         *Framebuffer
	clearColor [4]float32
	depthTest  bool
	viewport   image.Rectangle // GL window coordinates, origin bottom-left
	mode       MatrixMode
	stacks     [2]*math3d.MatrixStack
	arrays     [2]bool
	pointers   [2]pointer
	nextBuffer uint32
	stats      Stats
}

// NewSoft returns a context drawing into fb, with the viewport covering it.
func NewSoft(fb *Framebuffer) *Soft {
	return &Soft{
		fb:       fb,
		viewport: image.Rect(0, 0, fb.Width, fb.Height),
		stacks:   [2]*math3d.MatrixStack{math3d.NewMatrixStack(), math3d.NewMatrixStack()},
	}
}

// Framebuffer returns the render target.
func (s *Soft) Framebuffer() *Framebuffer { return s.fb }

// Stats returns the work counters and current stack depths.
func (s *Soft) Stats() Stats {
	st := s.stats
	st.ModelViewDepth = s.stacks[ModelView].Depth()
	st.ProjectionDepth = s.stacks[Projection].Depth()
	return st
}

// Matrix returns the current matrix of the given stack.
func (s *Soft) Matrix(mode MatrixMode) math3d.Mat4 {
	return s.stacks[mode].Top()
}

// ViewportRect returns the viewport in GL window coordinates.
func (s *Soft) ViewportRect() image.Rectangle { return s.viewport }

// Enabled reports whether a capability is on.
func (s *Soft) Enabled(c Capability) bool {
	return c == DepthTest && s.depthTest
}

// ClearColorValue returns the color Clear fills with.
func (s *Soft) ClearColorValue() Color {
	return FloatRGB(s.clearColor[0], s.clearColor[1], s.clearColor[2])
}

func (s *Soft) ClearColor(r, g, b, a float32) {
	s.clearColor = [4]float32{r, g, b, a}
	s.fb.BG = s.ClearColorValue()
}

func (s *Soft) Enable(c Capability) {
	if c == DepthTest {
		s.depthTest = true
	}
}

func (s *Soft) Disable(c Capability) {
	if c == DepthTest {
		s.depthTest = false
	}
}

func (s *Soft) Clear(mask ClearMask) {
	if mask&ColorBufferBit != 0 {
		s.fb.Clear()
	}
	if mask&DepthBufferBit != 0 {
		s.fb.ClearDepth()
	}
}

func (s *Soft) Viewport(x, y, width, height int) {
	s.viewport = image.Rect(x, y, x+width, y+height)
}

func (s *Soft) MatrixMode(mode MatrixMode) {
	s.mode = mode
}

func (s *Soft) current() *math3d.MatrixStack {
	return s.stacks[s.mode]
}

func (s *Soft) LoadIdentity() {
	s.current().LoadIdentity()
}

// Perspective multiplies the current matrix like gluPerspective.
func (s *Soft) Perspective(fovy, aspect, near, far float64) {
	s.current().Mul(math3d.Perspective(fovy, aspect, near, far))
}

func (s *Soft) PushMatrix() {
	s.current().Push()
}

func (s *Soft) PopMatrix() error {
	return s.current().Pop()
}

func (s *Soft) Translate(x, y, z float64) {
	s.current().Mul(math3d.Translate(math3d.V3(x, y, z)))
}

func (s *Soft) Scale(x, y, z float64) {
	s.current().Mul(math3d.Scale(math3d.V3(x, y, z)))
}

func (s *Soft) Rotate(deg, x, y, z float64) {
	s.current().Mul(math3d.Rotate(deg, math3d.V3(x, y, z)))
}

func (s *Soft) NewBuffer(data []float32) *Buffer {
	s.nextBuffer++
	return NewBuffer(s.nextBuffer, data)
}

func (s *Soft) EnableClientState(a ClientArray) {
	s.arrays[a] = true
}

func (s *Soft) DisableClientState(a ClientArray) {
	s.arrays[a] = false
}

func (s *Soft) VertexPointer(size int, b *Buffer) {
	s.pointers[VertexArray] = pointer{size: size, buf: b}
}

func (s *Soft) ColorPointer(size int, b *Buffer) {
	s.pointers[ColorArray] = pointer{size: size, buf: b}
}

type clipVertex struct {
	pos   math3d.Vec4
	color [3]float64
}

// DrawElements assembles indices into primitives and rasterizes them.
// Without an enabled color array every vertex is white.
func (s *Soft) DrawElements(mode Primitive, indices []uint32) error {
	vp := s.pointers[VertexArray]
	if !s.arrays[VertexArray] || vp.buf == nil {
		return ErrNoVertexArray
	}
	if vp.size != 3 && vp.size != 4 {
		return fmt.Errorf("%w: vertex size %d", ErrBadPointerSize, vp.size)
	}
	per := mode.VerticesPer()
	if len(indices)%per != 0 {
		return fmt.Errorf("%w: %d indices for %s", ErrIndexCount, len(indices), mode)
	}
	cp := s.pointers[ColorArray]
	useColor := s.arrays[ColorArray] && cp.buf != nil
	if useColor && cp.size != 3 && cp.size != 4 {
		return fmt.Errorf("%w: color size %d", ErrBadPointerSize, cp.size)
	}

	vdata := vp.buf.data
	n := len(vdata) / vp.size
	if useColor {
		n = min(n, len(cp.buf.data)/cp.size)
	}
	for _, idx := range indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, n)
		}
	}

	mvp := s.stacks[Projection].Top().Mul(s.stacks[ModelView].Top())
	verts := make([]clipVertex, n)
	for i := range verts {
		o := i * vp.size
		w := 1.0
		if vp.size == 4 {
			w = float64(vdata[o+3])
		}
		p := math3d.V4(float64(vdata[o]), float64(vdata[o+1]), float64(vdata[o+2]), w)
		verts[i].pos = mvp.MulVec4(p)
		verts[i].color = [3]float64{1, 1, 1}
		if useColor {
			c := cp.buf.data[i*cp.size:]
			verts[i].color = [3]float64{float64(c[0]), float64(c[1]), float64(c[2])}
		}
	}

	s.stats.DrawCalls++
	s.stats.LastIndexCount = len(indices)
	s.stats.Triangles = 0
	for i := 0; i < len(indices); i += per {
		prim := indices[i : i+per]
		s.triangle(verts[prim[0]], verts[prim[1]], verts[prim[2]])
		if mode == Quads {
			s.triangle(verts[prim[0]], verts[prim[2]], verts[prim[3]])
		}
	}
	return nil
}

type screenVertex struct {
	x, y, z float64
	invW    float64
	color   [3]float64
}

// visible reports whether a clip-space point lies between the near and
// far planes. Triangles with any vertex outside are dropped whole.
func visible(p math3d.Vec4) bool {
	return p.W > 0 && p.Z >= -p.W && p.Z <= p.W
}

func (s *Soft) toScreen(v clipVertex) screenVertex {
	ndc := v.pos.PerspectiveDivide()
	vp := s.viewport
	x := float64(vp.Min.X) + (ndc.X+1)/2*float64(vp.Dx())
	yUp := float64(vp.Min.Y) + (ndc.Y+1)/2*float64(vp.Dy())
	return screenVertex{
		x:     x,
		y:     float64(s.fb.Height) - yUp,
		z:     (ndc.Z + 1) / 2,
		invW:  1 / v.pos.W,
		color: v.color,
	}
}

func edge(a, b screenVertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// scissor is the viewport in framebuffer rows, intersected with the target.
func (s *Soft) scissor() image.Rectangle {
	vp := s.viewport
	r := image.Rect(vp.Min.X, s.fb.Height-vp.Max.Y, vp.Max.X, s.fb.Height-vp.Min.Y)
	return r.Intersect(image.Rect(0, 0, s.fb.Width, s.fb.Height))
}

func (s *Soft) triangle(c0, c1, c2 clipVertex) {
	if !visible(c0.pos) || !visible(c1.pos) || !visible(c2.pos) {
		return
	}
	a, b, c := s.toScreen(c0), s.toScreen(c1), s.toScreen(c2)
	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return
	}
	clip := s.scissor()
	minX := max(int(math.Floor(min(a.x, b.x, c.x))), clip.Min.X)
	maxX := min(int(math.Ceil(max(a.x, b.x, c.x))), clip.Max.X-1)
	minY := max(int(math.Floor(min(a.y, b.y, c.y))), clip.Min.Y)
	maxY := min(int(math.Ceil(max(a.y, b.y, c.y))), clip.Max.Y-1)
	s.stats.Triangles++

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) / area
			w1 := edge(c, a, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if s.depthTest && !s.fb.depthTest(x, y, z) {
				continue
			}
			// Perspective-correct attribute weights.
			p0, p1, p2 := w0*a.invW, w1*b.invW, w2*c.invW
			sum := p0 + p1 + p2
			var rgb [3]float32
			for k := range rgb {
				rgb[k] = float32((p0*a.color[k] + p1*b.color[k] + p2*c.color[k]) / sum)
			}
			s.fb.SetPixel(x, y, FloatRGB(rgb[0], rgb[1], rgb[2]))
		}
	}
}
