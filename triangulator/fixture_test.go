// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package triangulator

import (
	"embed"
	"strconv"
	"strings"
	"testing"

	"github.com/2dChan/r2geom/polygon"
	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/require"
)

// Fixtures are single-polygon SVG files in fixtures/, loaded by name without
// the extension.

//go:embed fixtures
var fixtures embed.FS

func loadFixture(t *testing.T, name string) polygon.Polygon {
	t.Helper()
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err, "could not load fixture %q", name)
	defer fixture.Close()

	rootEl, err := svgparser.Parse(fixture, true)
	require.NoError(t, err, "failed to parse fixture %q", name)

	polygons := rootEl.FindAll("polygon")
	require.Len(t, polygons, 1, "fixture %q must hold exactly one polygon", name)

	var points []r2.Point
	for _, pointString := range strings.Fields(polygons[0].Attributes["points"]) {
		coords := strings.Split(pointString, ",")
		require.Len(t, coords, 2, "invalid point string %q", pointString)
		x, err := strconv.ParseFloat(coords[0], 64)
		require.NoError(t, err)
		y, err := strconv.ParseFloat(coords[1], 64)
		require.NoError(t, err)
		points = append(points, r2.Point{X: x, Y: y})
	}

	p, err := polygon.New(points)
	require.NoError(t, err)
	return p
}
