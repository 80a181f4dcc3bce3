package cube

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tuning constants of the demo. The defaults reproduce
// the reference look: a 300x300 window, blue background, camera 50 units
// away from a cube scaled by 20, slider values doubled into degrees.
type Config struct {
	Title           string   `toml:"title"`
	Width           int      `toml:"width"`
	Height          int      `toml:"height"`
	FrameIntervalMS int      `toml:"frame_interval_ms"`
	SliderScale     float64  `toml:"slider_scale"`
	CameraZ         float64  `toml:"camera_z"`
	ModelScale      float64  `toml:"model_scale"`
	FovY            float64  `toml:"fov_y"`
	Near            float64  `toml:"near"`
	Far             float64  `toml:"far"`
	ClearColor      [3]uint8 `toml:"clear_color"`
}

const (
	DefaultTitle         = "Hello OpenGL App"
	DefaultWidth         = 300
	DefaultHeight        = 300
	DefaultFrameInterval = 20 * time.Millisecond
	DefaultSliderScale   = 2.0
	DefaultCameraZ       = -50.0
	DefaultModelScale    = 20.0
	DefaultFovY          = 45.0
	DefaultNear          = 1.0
	DefaultFar           = 100.0
)

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Title:           DefaultTitle,
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		FrameIntervalMS: int(DefaultFrameInterval / time.Millisecond),
		SliderScale:     DefaultSliderScale,
		CameraZ:         DefaultCameraZ,
		ModelScale:      DefaultModelScale,
		FovY:            DefaultFovY,
		Near:            DefaultNear,
		Far:             DefaultFar,
		ClearColor:      [3]uint8{0, 0, 255},
	}
}

// FrameInterval is the redraw period.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// ClearColorFloat returns the clear color as [0,1] channels.
func (c Config) ClearColorFloat() (r, g, b float32) {
	return float32(c.ClearColor[0]) / 255, float32(c.ClearColor[1]) / 255, float32(c.ClearColor[2]) / 255
}

// Validate checks the values the pipeline cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FrameIntervalMS <= 0:
		return fmt.Errorf("%w: frame interval %dms", ErrInvalidConfig, c.FrameIntervalMS)
	case c.ModelScale == 0:
		return fmt.Errorf("%w: model scale is zero", ErrInvalidConfig)
	case c.FovY <= 0 || c.FovY >= 180:
		return fmt.Errorf("%w: fov %v outside (0,180)", ErrInvalidConfig, c.FovY)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalidConfig, c.Near, c.Far)
	}
	return nil
}

// LoadConfig reads a TOML file over the defaults. Keys that are absent
// keep their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
