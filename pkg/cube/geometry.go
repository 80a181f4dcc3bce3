// Package cube implements the rendering surface: a unit cube with
// per-vertex colors drawn through a fixed-function gfx.Context, rotated
// by three independently settable angles.
package cube

import "github.com/taigrr/glcube/pkg/math3d"

const (
	VertexCount = 8
	FaceCount   = 6
	IndexCount  = FaceCount * 4
)

// Corner layout:
//
//	   h---------g       a = (0,0,0)   e = (0,0,1)
//	  /|        /|       b = (1,0,0)   f = (1,0,1)
//	 / |       / |       c = (1,1,0)   g = (1,1,1)
//	d---------c  |       d = (0,1,0)   h = (0,1,1)
//	|  e------|--f
//	| /       | /
//	a---------b
var positions = [VertexCount][3]float32{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// Each corner is colored by its own coordinates.
var colors = [VertexCount][3]float32{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

var faceIndices = [IndexCount]uint32{
	0, 1, 2, 3, // back (z=0)
	3, 2, 6, 7, // top
	1, 0, 4, 5, // bottom
	2, 1, 5, 6, // right
	0, 3, 7, 4, // left
	7, 6, 5, 4, // front (z=1)
}

// Positions returns a copy of the vertex positions.
func Positions() [VertexCount][3]float32 { return positions }

// Colors returns a copy of the vertex colors, parallel to Positions.
func Colors() [VertexCount][3]float32 { return colors }

// Indices returns a copy of the quad index list, four indices per face.
func Indices() [IndexCount]uint32 { return faceIndices }

// TriangleIndices splits every quad (a,b,c,d) into (a,b,c) and (a,c,d).
func TriangleIndices() []uint32 {
	out := make([]uint32, 0, FaceCount*6)
	for f := 0; f < FaceCount; f++ {
		q := faceIndices[f*4 : f*4+4]
		out = append(out, q[0], q[1], q[2], q[0], q[2], q[3])
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the positions.
func Bounds() (lo, hi math3d.Vec3) {
	lo = vec(positions[0])
	hi = lo
	for _, p := range positions[1:] {
		lo = lo.Min(vec(p))
		hi = hi.Max(vec(p))
	}
	return lo, hi
}

func vec(p [3]float32) math3d.Vec3 {
	return math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
}

func flatten(v [VertexCount][3]float32) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, p := range v {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}
