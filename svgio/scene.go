// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package svgio

import (
	"fmt"
	"io"
	"math"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	defaultPadding = 20
	none           = "none"
)

// Style describes how a shape is painted. Colours are "#rrggbb" hex strings;
// an empty colour is not painted.
type Style struct {
	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width"`
}

func (s Style) css() string {
	fill, stroke := s.Fill, s.Stroke
	if fill == "" {
		fill = none
	}
	if stroke == "" {
		stroke = none
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g", fill, stroke, s.StrokeWidth)
}

type itemKind int

const (
	kindPolygon itemKind = iota
	kindSegment
	kindPoint
)

type item struct {
	kind   itemKind
	points []r2.Point
	radius float64
	style  Style
}

// Scene collects shapes in world coordinates and renders them into a
// Width x Height image, fitting Bounds with uniform scale and y pointing up.
type Scene struct {
	Width, Height int
	Bounds        r2.Rect
	Background    string

	items []item
}

// NewScene returns an empty scene showing bounds.
func NewScene(width, height int, bounds r2.Rect) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(numeric.ErrPrecondition, "svgio: invalid canvas %dx%d", width, height)
	}
	if bounds.IsEmpty() {
		return nil, errors.Wrap(numeric.ErrPrecondition, "svgio: empty bounds")
	}
	return &Scene{Width: width, Height: height, Bounds: bounds, Background: "#ffffff"}, nil
}

func (s *Scene) Len() int {
	return len(s.items)
}

func (s *Scene) Polygon(p polygon.Polygon, st Style) {
	s.items = append(s.items, item{kind: kindPolygon, points: p.Vertices(), style: st})
}

func (s *Scene) Segment(seg line.Segment, st Style) {
	s.items = append(s.items, item{kind: kindSegment, points: []r2.Point{seg.A, seg.B}, style: st})
}

// Line draws the part of l inside the scene bounds.
func (s *Scene) Line(l line.Line, st Style) {
	if seg, ok := line.ClipToRect(l, s.Bounds); ok {
		s.Segment(seg, st)
	}
}

// Point draws a disc of radius pixels around p.
func (s *Scene) Point(p r2.Point, radius float64, st Style) {
	s.items = append(s.items, item{kind: kindPoint, points: []r2.Point{p}, radius: radius, style: st})
}

// toScreen maps world coordinates to pixels.
func (s *Scene) toScreen(p r2.Point) (float64, float64) {
	size := s.Bounds.Size()
	w := float64(s.Width - 2*defaultPadding)
	h := float64(s.Height - 2*defaultPadding)
	scale := math.Min(w/math.Max(size.X, numeric.DefaultEps), h/math.Max(size.Y, numeric.DefaultEps))

	lo := s.Bounds.Lo()
	offX := defaultPadding + (w-scale*size.X)/2
	offY := defaultPadding + (h-scale*size.Y)/2
	return offX + (p.X-lo.X)*scale, float64(s.Height) - (offY + (p.Y-lo.Y)*scale)
}

// WriteSVG renders the scene as an SVG document.
func (s *Scene) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, Style{Fill: s.Background}.css())

	for _, it := range s.items {
		xs := make([]int, len(it.points))
		ys := make([]int, len(it.points))
		for i, p := range it.points {
			x, y := s.toScreen(p)
			xs[i], ys[i] = int(math.Round(x)), int(math.Round(y))
		}
		switch it.kind {
		case kindPolygon:
			canvas.Polygon(xs, ys, it.style.css())
		case kindSegment:
			canvas.Line(xs[0], ys[0], xs[1], ys[1], it.style.css())
		case kindPoint:
			canvas.Circle(xs[0], ys[0], int(math.Ceil(it.radius)), it.style.css())
		}
	}
	canvas.End()
	return errors.Wrap(ew.err, "svgio: write svg")
}

// WritePNG rasterizes the scene.
func (s *Scene) WritePNG(w io.Writer) error {
	dc := gg.NewContext(s.Width, s.Height)
	if s.Background != "" {
		dc.SetHexColor(s.Background)
		dc.Clear()
	}

	for _, it := range s.items {
		switch it.kind {
		case kindPolygon:
			for i, p := range it.points {
				x, y := s.toScreen(p)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		case kindSegment:
			x0, y0 := s.toScreen(it.points[0])
			x1, y1 := s.toScreen(it.points[1])
			dc.MoveTo(x0, y0)
			dc.LineTo(x1, y1)
		case kindPoint:
			x, y := s.toScreen(it.points[0])
			dc.DrawCircle(x, y, it.radius)
		}
		paint(dc, it.style)
	}
	return errors.Wrap(dc.EncodePNG(w), "svgio: write png")
}

// paint fills and strokes the current path, then clears it.
func paint(dc *gg.Context, st Style) {
	if st.Fill != "" && st.Fill != none {
		dc.SetHexColor(st.Fill)
		dc.FillPreserve()
	}
	if st.Stroke != "" && st.Stroke != none && st.StrokeWidth > 0 {
		dc.SetHexColor(st.Stroke)
		dc.SetLineWidth(st.StrokeWidth)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
