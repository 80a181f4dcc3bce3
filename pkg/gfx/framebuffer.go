package gfx

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Common colors.
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 255, 0)
	ColorBlue  = RGB(0, 0, 255)
)

// quantize maps a [0,1] channel to 0..255, clamping out-of-range input.
func quantize(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(math32.Floor(v*255 + 0.5))
}

// FloatRGB converts float channels in [0,1] to a Color.
func FloatRGB(r, g, b float32) Color {
	return Color{quantize(r), quantize(g), quantize(b)}
}

// Framebuffer holds the color and depth planes the pipeline renders into.
// Row 0 is the top of the image.
type Framebuffer struct {
	Width, Height int
	Pixels        []Color
	Depth         []float64
	BG            Color
}

// NewFramebuffer allocates a framebuffer cleared to black with depth 1.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both planes. Negative sizes are treated as zero.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	fb.Width, fb.Height = width, height
	fb.Pixels = make([]Color, width*height)
	fb.Depth = make([]float64, width*height)
	fb.Clear()
	fb.ClearDepth()
}

// Clear fills the color plane with BG.
func (fb *Framebuffer) Clear() {
	for i := range fb.Pixels {
		fb.Pixels[i] = fb.BG
	}
}

// ClearDepth resets every depth sample to the far plane.
func (fb *Framebuffer) ClearDepth() {
	for i := range fb.Depth {
		fb.Depth[i] = 1
	}
}

func (fb *Framebuffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// SetPixel writes a color, ignoring out-of-bounds coordinates.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if fb.inside(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// GetPixel reads a color; out-of-bounds reads return BG.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.inside(x, y) {
		return fb.BG
	}
	return fb.Pixels[y*fb.Width+x]
}

// depthTest stores z at (x,y) if it is nearer than the stored sample.
func (fb *Framebuffer) depthTest(x, y int, z float64) bool {
	i := y*fb.Width + x
	if z >= fb.Depth[i] {
		return false
	}
	fb.Depth[i] = z
	return true
}

// ToImage copies the color plane into an RGBA image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Pixels[y*fb.Width+x]
			img.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 255})
		}
	}
	return img
}

// SavePNG writes the color plane to path.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
