// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"strings"

	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/svgio"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the rendering settings. Any field missing from the TOML file
// keeps its default.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Styles Styles `toml:"styles"`
}

type Styles struct {
	Face       svgio.Style `toml:"face"`
	Edge       svgio.Style `toml:"edge"`
	Highlight  svgio.Style `toml:"highlight"`
	Site       svgio.Style `toml:"site"`
	SiteRadius float64     `toml:"site_radius"`
}

// palette colours the point sets of the ham-sandwich command.
var palette = []string{"#d62728", "#1f77b4", "#2ca02c"}

func defaultConfig() Config {
	return Config{
		Width:  1000,
		Height: 1000,
		Styles: Styles{
			Face:       svgio.Style{Fill: "#ffffff", Stroke: "#aaaaaa", StrokeWidth: 1},
			Edge:       svgio.Style{Stroke: "#333333", StrokeWidth: 1},
			Highlight:  svgio.Style{Fill: "#ffe08a", Stroke: "#e6a100", StrokeWidth: 2},
			Site:       svgio.Style{Fill: "#ff0000"},
			SiteRadius: 3,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "r2geom: problem reading configuration file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Errorf("r2geom: unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, errors.Wrapf(numeric.ErrPrecondition, "r2geom: invalid canvas %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
