package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/glcube/pkg/cube"
	"github.com/taigrr/glcube/pkg/gfx"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"300x300", 300, 300, false},
		{"640x480", 640, 480, false},
		{"0x10", 0, 0, true},
		{"10", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.w, w)
		assert.Equal(t, tt.h, h)
	}
	_, _, err := parseSize("-1x5")
	assert.True(t, errors.Is(err, cube.ErrInvalidSize))
}

func TestSnapshot(t *testing.T) {
	fb, err := snapshot(cube.DefaultConfig(), [3]float64{30, 40, 0})
	require.NoError(t, err)
	assert.Equal(t, 300, fb.Width)
	assert.Equal(t, 300, fb.Height)
	assert.Equal(t, gfx.ColorBlue, fb.GetPixel(0, 0))
	assert.NotEqual(t, gfx.ColorBlue, fb.GetPixel(150, 150))
}

func TestSnapshotCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "-o", out, "--size", "64x48", "--rot-y", "45", "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	hdr := make([]byte, 8)
	_, err = f.Read(hdr)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG\r\n\x1a\n", string(hdr))
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cube.glb")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"export", "-o", out, "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	st, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, st.Size())
}

func TestConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"Spin\"\nframe_interval_ms = 40\n"), 0o600))

	opts := &options{configPath: path}
	cfg, err := opts.config()
	require.NoError(t, err)
	assert.Equal(t, "Spin", cfg.Title)
	assert.Equal(t, 40*time.Millisecond, cfg.FrameInterval())

	opts.interval = 10 * time.Millisecond
	cfg, err = opts.config()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.FrameIntervalMS)

	opts.interval = time.Microsecond
	_, err = opts.config()
	assert.ErrorIs(t, err, cube.ErrInvalidConfig)
}

func TestRunInfo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runInfo(&buf, cube.DefaultConfig(), ""))
	out := buf.String()
	assert.Contains(t, out, "Title:      Hello OpenGL App")
	assert.Contains(t, out, "Vertices:   8")
	assert.Contains(t, out, "Faces:      6 quads (12 triangles)")
	assert.Contains(t, out, "Bounds Max: (1.000, 1.000, 1.000)")
	assert.Contains(t, out, "Interval:   20ms (50 FPS)")
	assert.Contains(t, out, "Clear:      rgb(0, 0, 255)")
}
