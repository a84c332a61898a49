// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package svgio reads polygons and points from SVG documents and renders
// geometry to SVG and PNG.
package svgio

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Document holds the geometry found in an SVG file: every <polygon> element
// and the centre of every <circle> element, in document order.
type Document struct {
	Polygons []polygon.Polygon
	Points   []r2.Point
}

// Read parses an SVG document.
func Read(r io.Reader) (Document, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return Document{}, errors.Wrap(err, "svgio: parse")
	}

	var doc Document
	for i, el := range root.FindAll("polygon") {
		pts, err := parsePoints(el.Attributes["points"])
		if err != nil {
			return Document{}, errors.WithMessagef(err, "svgio: polygon %d", i)
		}
		p, err := polygon.New(pts)
		if err != nil {
			return Document{}, errors.WithMessagef(err, "svgio: polygon %d", i)
		}
		doc.Polygons = append(doc.Polygons, p)
	}
	for i, el := range root.FindAll("circle") {
		x, errX := strconv.ParseFloat(el.Attributes["cx"], 64)
		y, errY := strconv.ParseFloat(el.Attributes["cy"], 64)
		if errX != nil || errY != nil {
			return Document{}, errors.Wrapf(numeric.ErrInvalidGeometry,
				"svgio: circle %d has invalid centre (%q, %q)", i, el.Attributes["cx"], el.Attributes["cy"])
		}
		doc.Points = append(doc.Points, r2.Point{X: x, Y: y})
	}
	return doc, nil
}

// ReadPolygons returns the polygons of an SVG document.
func ReadPolygons(r io.Reader) ([]polygon.Polygon, error) {
	doc, err := Read(r)
	if err != nil {
		return nil, err
	}
	return doc.Polygons, nil
}

// Shape returns the largest polygon as the outer ring with every other
// polygon as a hole.
func (d Document) Shape() (polygon.WithHoles, error) {
	if len(d.Polygons) == 0 {
		return polygon.WithHoles{}, errors.Wrap(numeric.ErrInvalidGeometry, "svgio: document has no polygons")
	}
	outer := 0
	for i, p := range d.Polygons {
		if p.Area() > d.Polygons[outer].Area() {
			outer = i
		}
	}
	holes := make([]polygon.Polygon, 0, len(d.Polygons)-1)
	for i, p := range d.Polygons {
		if i != outer {
			holes = append(holes, p)
		}
	}
	return polygon.NewWithHoles(d.Polygons[outer], holes...)
}

// parsePoints reads the points attribute: coordinate pairs separated by
// commas or whitespace.
func parsePoints(s string) ([]r2.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields)%2 != 0 {
		return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "odd number of coordinates in %q", s)
	}
	pts := make([]r2.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "coordinate %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "coordinate %q", fields[i+1])
		}
		pts = append(pts, r2.Point{X: x, Y: y})
	}
	return pts, nil
}
