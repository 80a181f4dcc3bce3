// glcube - rotating color cube in the terminal
// A per-vertex colored cube drawn through a fixed-function style pipeline,
// with one slider per rotation axis.
//
// Controls:
//
//	Tab / Up / Down     - Select slider (also 1/2/3 or x/y/z)
//	Left / Right        - Step the selected slider (also h/l, -/+)
//	PgUp / PgDn         - Page step
//	Home / End          - Jump to minimum / maximum
//	Mouse click / drag  - Set a slider
//	q / Esc             - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/glcube/pkg/cube"
	"github.com/taigrr/glcube/pkg/gfx"
	"github.com/taigrr/glcube/pkg/window"
)

type options struct {
	configPath string
	interval   time.Duration
	logLevel   string
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "glcube",
		Short: "Rotating color cube",
		Long: `glcube - rotating color cube

Draws a cube whose corner colors match their positions, rotated by three
sliders (X, Y, Z). Slider values 0..99 map to 0..198 degrees.

Controls:
  Tab/Up/Down   - Select slider
  Left/Right    - Step slider
  PgUp/PgDn     - Page step
  Home/End      - Min/Max
  Mouse         - Click or drag a slider
  q/Esc         - Quit`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetLogLevelStr(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			log.Infof("starting %q at %v per frame", cfg.Title, cfg.FrameInterval())
			return window.New(cfg).Run(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	cmd.PersistentFlags().DurationVar(&opts.interval, "interval", 0, "Redraw interval (overrides config, e.g. 20ms)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, verbose, info, warning, error)")

	cmd.AddCommand(newSnapshotCmd(opts), newExportCmd(), newInfoCmd(opts))
	return cmd
}

// config loads the config file, if any, and applies flag overrides.
func (o *options) config() (cube.Config, error) {
	cfg := cube.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = cube.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
		log.Debugf("loaded config from %s", o.configPath)
	}
	if o.interval > 0 {
		cfg.FrameIntervalMS = int(o.interval / time.Millisecond)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var (
		out        string
		size       string
		rx, ry, rz float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG",
		Long:  "Render a single frame of the cube at the given rotation (in degrees) and save it as a PNG image.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if size != "" {
				if cfg.Width, cfg.Height, err = parseSize(size); err != nil {
					return err
				}
			}
			fb, err := snapshot(cfg, [3]float64{rx, ry, rz})
			if err != nil {
				return err
			}
			if err := fb.SavePNG(out); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			log.Infof("wrote %dx%d snapshot to %s", fb.Width, fb.Height, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "cube.png", "Output PNG path")
	cmd.Flags().StringVar(&size, "size", "", "Image size WxH (default from config, 300x300)")
	cmd.Flags().Float64Var(&rx, "rot-x", 0, "Rotation about X in degrees")
	cmd.Flags().Float64Var(&ry, "rot-y", 0, "Rotation about Y in degrees")
	cmd.Flags().Float64Var(&rz, "rot-z", 0, "Rotation about Z in degrees")
	return cmd
}

// snapshot renders one frame offscreen.
func snapshot(cfg cube.Config, rot [3]float64) (*gfx.Framebuffer, error) {
	fb := gfx.NewFramebuffer(cfg.Width, cfg.Height)
	surface := cube.NewSurface(cfg)
	if err := surface.Initialize(gfx.NewSoft(fb)); err != nil {
		return nil, err
	}
	if err := surface.Resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	for _, a := range cube.Axes {
		surface.SetRotation(a, rot[a])
	}
	if err := surface.Draw(); err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	return fb, nil
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if n, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil || n != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (want WxH)", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", cube.ErrInvalidSize, w, h)
	}
	return w, h, nil
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the cube mesh as binary glTF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cube.SaveGLB(out); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			log.Infof("wrote %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "cube.glb", "Output GLB path")
	return cmd
}

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display cube and configuration information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return runInfo(cmd.OutOrStdout(), cfg, opts.configPath)
		},
	}
}

func runInfo(w io.Writer, cfg cube.Config, configPath string) error {
	lo, hi := cube.Bounds()
	source := "built-in defaults"
	if configPath != "" {
		source = filepath.Base(configPath)
	}

	fmt.Fprintf(w, "Title:      %s\n", cfg.Title)
	fmt.Fprintf(w, "Config:     %s\n", source)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Vertices:   %d\n", cube.VertexCount)
	fmt.Fprintf(w, "Faces:      %d quads (%d triangles)\n", cube.FaceCount, len(cube.TriangleIndices())/3)
	fmt.Fprintf(w, "Indices:    %d\n", cube.IndexCount)
	fmt.Fprintf(w, "Bounds Min: (%.3f, %.3f, %.3f)\n", lo.X, lo.Y, lo.Z)
	fmt.Fprintf(w, "Bounds Max: (%.3f, %.3f, %.3f)\n", hi.X, hi.Y, hi.Z)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Window:     %dx%d\n", cfg.Width, cfg.Height)
	fmt.Fprintf(w, "Interval:   %v (%.0f FPS)\n", cfg.FrameInterval(), window.FPS(cfg.FrameInterval()))
	fmt.Fprintf(w, "Camera:     z=%.1f scale=%.1f fovy=%.1f near=%.1f far=%.1f\n",
		cfg.CameraZ, cfg.ModelScale, cfg.FovY, cfg.Near, cfg.Far)
	fmt.Fprintf(w, "Clear:      rgb(%d, %d, %d)\n", cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2])
	fmt.Fprintf(w, "Sliders:    %d..%d, x%.0f degrees\n", window.DefaultMin, window.DefaultMax, cfg.SliderScale)
	return nil
}
