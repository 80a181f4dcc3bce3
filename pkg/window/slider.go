package window

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
)

// Slider defaults follow the usual toolkit range input: 0..99, single
// steps of 1 and page steps of 10.
const (
	DefaultMin      = 0
	DefaultMax      = 99
	DefaultStep     = 1
	DefaultPageStep = 10
)

// Slider is a horizontal range input occupying one terminal row.
type Slider struct {
	Label    string
	Min, Max int
	Step     int
	PageStep int

	// OnChange is called with the new value whenever it changes.
	OnChange func(value int)

	value int

	// layout, in terminal cells
	Row   int
	X0    int
	Width int

	// The drawn thumb follows value on a critically damped spring.
	spring   harmonica.Spring
	thumb    float64
	thumbVel float64
}

// NewSlider creates a slider at its minimum; fps is the redraw rate the
// thumb animation is stepped at.
func NewSlider(label string, fps int) *Slider {
	return &Slider{
		Label:    label,
		Min:      DefaultMin,
		Max:      DefaultMax,
		Step:     DefaultStep,
		PageStep: DefaultPageStep,
		value:    DefaultMin,
		thumb:    DefaultMin,
		spring:   harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 12.0, 1.0),
	}
}

// Value returns the current value.
func (s *Slider) Value() int { return s.value }

// SetValue clamps v into range and reports whether the value changed.
// OnChange fires only on change.
func (s *Slider) SetValue(v int) bool {
	v = min(max(v, s.Min), s.Max)
	if v == s.value {
		return false
	}
	s.value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
	return true
}

// StepBy moves n single steps.
func (s *Slider) StepBy(n int) bool { return s.SetValue(s.value + n*s.Step) }

// PageBy moves n page steps.
func (s *Slider) PageBy(n int) bool { return s.SetValue(s.value + n*s.PageStep) }

// Layout places the track at columns [x0, x0+width) of row.
func (s *Slider) Layout(row, x0, width int) {
	s.Row, s.X0, s.Width = row, x0, max(width, 0)
}

// Contains reports whether the cell (x, y) is on the track.
func (s *Slider) Contains(x, y int) bool {
	return y == s.Row && x >= s.X0 && x < s.X0+s.Width
}

// ValueAt maps a column to the nearest value; columns past either end of
// the track clamp to Min or Max.
func (s *Slider) ValueAt(x int) int {
	if s.Width <= 1 {
		return s.Min
	}
	frac := float32(x-s.X0) / float32(s.Width-1)
	frac = math32.Max(0, math32.Min(1, frac))
	return s.Min + int(math32.Floor(frac*float32(s.Max-s.Min)+0.5))
}

// Update advances the thumb animation by one frame.
func (s *Slider) Update() {
	s.thumb, s.thumbVel = s.spring.Update(s.thumb, s.thumbVel, float64(s.value))
}

// Thumb returns the animated thumb position in value units.
func (s *Slider) Thumb() float64 { return s.thumb }

// thumbCell is the track cell the thumb is drawn in.
func (s *Slider) thumbCell() int {
	if s.Width <= 1 || s.Max == s.Min {
		return 0
	}
	frac := float32(s.thumb-float64(s.Min)) / float32(s.Max-s.Min)
	frac = math32.Max(0, math32.Min(1, frac))
	return int(math32.Floor(frac*float32(s.Width-1) + 0.5))
}

// Track renders the track as Width cells.
func (s *Slider) Track() string {
	if s.Width == 0 {
		return ""
	}
	at := s.thumbCell()
	var b strings.Builder
	for i := 0; i < s.Width; i++ {
		switch {
		case i == at:
			b.WriteRune('●')
		case i < at:
			b.WriteRune('━')
		default:
			b.WriteRune('─')
		}
	}
	return b.String()
}
