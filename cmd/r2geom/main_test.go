// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2dChan/r2geom/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const room = `<svg xmlns="http://www.w3.org/2000/svg">
  <polygon points="0,0 10,0 10,10 0,10"/>
  <polygon points="4,4 6,4 6,6 4,6"/>
  <circle cx="2" cy="5" r="0.2"/>
</svg>`

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := writeFile(t, "r2geom.toml", `
width = 640

[styles.site]
fill = "#00ff00"
`)
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 1000, cfg.Height)
	assert.Equal(t, "#00ff00", cfg.Styles.Site.Fill)
	assert.Equal(t, defaultConfig().Styles.Face, cfg.Styles.Face)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = loadConfig(writeFile(t, "bad.toml", "widht = 10\n"))
	assert.ErrorContains(t, err, "widht")

	_, err = loadConfig(writeFile(t, "zero.toml", "height = 0\n"))
	assert.ErrorIs(t, err, numeric.ErrPrecondition)
}

func TestOutputName(t *testing.T) {
	a := &app{format: "png"}
	name, format, err := a.outputName()
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Contains(t, name, "-")

	a.out = "diagram.SVG"
	_, format, err = a.outputName()
	require.NoError(t, err)
	assert.Equal(t, "svg", format)

	a.out = "diagram.pdf"
	_, _, err = a.outputName()
	assert.Error(t, err)
}

func TestRun_Delaunay(t *testing.T) {
	out := filepath.Join(t.TempDir(), "delaunay.png")
	require.NoError(t, run(t, "delaunay", "-n", "30", "--seed", "7", "-o", out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
}

func TestRun_Commands(t *testing.T) {
	input := writeFile(t, "room.svg", room)
	tests := []struct {
		name string
		args []string
	}{
		{"voronoi", []string{"voronoi", "-n", "40", "--relax", "2"}},
		{"spanner", []string{"spanner", "-n", "25", "-t", "2"}},
		{"mst", []string{"spanner", "-n", "25", "--mst"}},
		{"triangulate", []string{"triangulate", "-i", input}},
		{"visibility", []string{"visibility", "-i", input}},
		{"visibility at", []string{"visibility", "-i", input, "--at", "8,8.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.svg")
			require.NoError(t, run(t, append(tt.args, "-o", out)...))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(data), "<svg")
		})
	}
}

func TestRun_Errors(t *testing.T) {
	input := writeFile(t, "room.svg", room)
	out := filepath.Join(t.TempDir(), "out.svg")
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"triangulate"}},
		{"no points", []string{"delaunay", "-n", "0"}},
		{"bad ratio", []string{"spanner", "-t", "0.5"}},
		{"bad viewpoint", []string{"visibility", "-i", input, "--at", "5"}},
		{"viewpoint in hole", []string{"visibility", "-i", input, "--at", "5,5"}},
		{"too many sets", []string{"hamsandwich", "--sets", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(t, append(tt.args, "-o", out)...))
		})
	}
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	return cmd.Execute()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
