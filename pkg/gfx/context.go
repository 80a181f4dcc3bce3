// Package gfx defines the fixed-function graphics context the cube surface
// draws through, and a software implementation of it.
package gfx

import (
	"errors"

	"github.com/taigrr/glcube/pkg/math3d"
)

var (
	ErrNoVertexArray   = errors.New("vertex array not enabled or not bound")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrIndexCount      = errors.New("index count does not match primitive")
	ErrBadPointerSize  = errors.New("pointer component size must be 3 or 4")
	ErrStackUnderflow  = math3d.ErrStackUnderflow
)

// Capability is a server-side toggle for Enable and Disable.
type Capability int

const (
	DepthTest Capability = iota
)

func (c Capability) String() string {
	switch c {
	case DepthTest:
		return "DEPTH_TEST"
	default:
		return "UNKNOWN_CAPABILITY"
	}
}

// ClearMask selects the planes Clear resets.
type ClearMask uint8

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// MatrixMode selects the stack matrix operations apply to.
type MatrixMode int

const (
	ModelView MatrixMode = iota
	Projection
)

func (m MatrixMode) String() string {
	if m == Projection {
		return "PROJECTION"
	}
	return "MODELVIEW"
}

// ClientArray is a per-vertex attribute array.
type ClientArray int

const (
	VertexArray ClientArray = iota
	ColorArray
)

func (a ClientArray) String() string {
	if a == ColorArray {
		return "COLOR_ARRAY"
	}
	return "VERTEX_ARRAY"
}

// Primitive is the topology DrawElements assembles indices into.
type Primitive int

const (
	Triangles Primitive = iota
	Quads
)

// VerticesPer returns how many indices make one primitive.
func (p Primitive) VerticesPer() int {
	if p == Quads {
		return 4
	}
	return 3
}

func (p Primitive) String() string {
	if p == Quads {
		return "QUADS"
	}
	return "TRIANGLES"
}

// Buffer is immutable float data uploaded to a context.
type Buffer struct {
	id   uint32
	data []float32
}

// NewBuffer copies data into a new buffer with the given handle.
func NewBuffer(id uint32, data []float32) *Buffer {
	return &Buffer{id: id, data: append([]float32(nil), data...)}
}

// ID returns the buffer handle.
func (b *Buffer) ID() uint32 { return b.id }

// Len returns the number of floats stored.
func (b *Buffer) Len() int { return len(b.data) }

// Data returns a copy of the stored floats.
func (b *Buffer) Data() []float32 { return append([]float32(nil), b.data...) }

// Context is the fixed-function subset of OpenGL 1.x the renderer needs.
// Calls are made from a single goroutine.
type Context interface {
	ClearColor(r, g, b, a float32)
	Enable(c Capability)
	Disable(c Capability)
	Clear(mask ClearMask)
	Viewport(x, y, width, height int)

	MatrixMode(mode MatrixMode)
	LoadIdentity()
	Perspective(fovy, aspect, near, far float64)
	PushMatrix()
	PopMatrix() error
	Translate(x, y, z float64)
	Scale(x, y, z float64)
	Rotate(deg, x, y, z float64)

	NewBuffer(data []float32) *Buffer
	EnableClientState(a ClientArray)
	DisableClientState(a ClientArray)
	VertexPointer(size int, b *Buffer)
	ColorPointer(size int, b *Buffer)
	DrawElements(mode Primitive, indices []uint32) error
}
