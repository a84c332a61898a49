// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package line implements infinite lines and finite segments in the plane.
package line

import (
	"fmt"
	"math"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Line is an immutable infinite line. Vertical lines have a slope of +Inf and
// a NaN height at the y axis.
type Line struct {
	p1, p2   r2.Point
	slope    float64
	height   float64
	oriented bool
}

// New returns the oriented line running from p1 towards p2.
func New(p1, p2 r2.Point) Line {
	l := Line{p1: p1, p2: p2, oriented: true}
	if numeric.EqualsEps(p1.X, p2.X) {
		l.slope = math.Inf(1)
		l.height = math.NaN()
		return l
	}
	l.slope = (p2.Y - p1.Y) / (p2.X - p1.X)
	l.height = p1.Y - l.slope*p1.X
	return l
}

// FromSlope returns the unoriented line y = slope*x + height.
func FromSlope(slope, height float64) Line {
	return Line{
		p1:     r2.Point{X: 0, Y: height},
		p2:     r2.Point{X: 1, Y: height + slope},
		slope:  slope,
		height: height,
	}
}

func Vertical(x float64) Line {
	return Line{
		p1:     r2.Point{X: x, Y: 0},
		p2:     r2.Point{X: x, Y: 1},
		slope:  math.Inf(1),
		height: math.NaN(),
	}
}

func (l Line) String() string {
	if l.IsVertical() {
		return fmt.Sprintf("x = %v", l.p1.X)
	}
	return fmt.Sprintf("y = %v*x + %v", l.slope, l.height)
}

func (l Line) Points() (r2.Point, r2.Point) {
	return l.p1, l.p2
}

// Oriented reports whether the line has a direction, and so a left and a
// right side.
func (l Line) Oriented() bool {
	return l.oriented
}

// Slope returns the slope, +Inf for vertical lines.
func (l Line) Slope() float64 {
	return l.slope
}

// HeightAtYAxis returns the y intercept, NaN for vertical lines.
func (l Line) HeightAtYAxis() float64 {
	return l.height
}

func (l Line) IsVertical() bool {
	return math.IsInf(l.slope, 0)
}

func (l Line) IsHorizontal() bool {
	return !l.IsVertical() && numeric.EqualsEps(l.slope, 0)
}

// Direction returns the unit direction vector from the first to the second
// defining point.
func (l Line) Direction() r2.Point {
	return l.p2.Sub(l.p1).Normalize()
}

// Angle returns the angle of the direction vector with the positive x axis
// in (-π, π].
func (l Line) Angle() float64 {
	d := l.p2.Sub(l.p1)
	return math.Atan2(d.Y, d.X)
}

// Y returns the height of the line at x. It fails on vertical lines.
func (l Line) Y(x float64) (float64, error) {
	if l.IsVertical() {
		return 0, errors.Wrapf(numeric.ErrPrecondition, "line: Y(%v) on vertical %v", x, l)
	}
	return l.slope*x + l.height, nil
}

// X returns the x coordinate of the line at height y. It fails on
// horizontal lines.
func (l Line) X(y float64) (float64, error) {
	if l.IsVertical() {
		return l.p1.X, nil
	}
	if l.IsHorizontal() {
		return 0, errors.Wrapf(numeric.ErrPrecondition, "line: X(%v) on horizontal %v", y, l)
	}
	return (y - l.height) / l.slope, nil
}

// Intersect returns the intersection point of l1 and l2. Two vertical lines
// have no unique intersection and are rejected; callers must handle parallel
// verticals themselves.
func Intersect(l1, l2 Line) (r2.Point, error) {
	switch {
	case l1.IsVertical() && l2.IsVertical():
		return r2.Point{}, errors.Wrapf(numeric.ErrPrecondition,
			"line: intersect two verticals %v and %v", l1, l2)
	case l1.IsVertical():
		x := l1.p1.X
		return r2.Point{X: x, Y: l2.slope*x + l2.height}, nil
	case l2.IsVertical():
		x := l2.p1.X
		return r2.Point{X: x, Y: l1.slope*x + l1.height}, nil
	}

	x := (l2.height - l1.height) / (l1.slope - l2.slope)
	p := r2.Point{X: x, Y: l1.slope*x + l1.height}
	if !numeric.IsFinite(p) {
		return r2.Point{}, errors.Wrapf(numeric.ErrInvalidGeometry,
			"line: parallel lines %v and %v", l1, l2)
	}
	return p, nil
}

// Parallel reports whether l1 and l2 have the same slope.
func Parallel(l1, l2 Line) bool {
	if l1.IsVertical() || l2.IsVertical() {
		return l1.IsVertical() && l2.IsVertical()
	}
	return numeric.EqualsEps(l1.slope, l2.slope)
}

// PointAbove reports whether p lies above l. For vertical lines, points to
// the left count as above.
func (l Line) PointAbove(p r2.Point) bool {
	if l.IsVertical() {
		return p.X < l.p1.X
	}
	return p.Y > l.slope*p.X+l.height
}

// PointOnLine reports whether p lies on l within DefaultEps.
func (l Line) PointOnLine(p r2.Point) bool {
	return l.DistanceToPoint(p) < numeric.DefaultEps
}

// PointRightOfLine reports whether p lies strictly to the right of the
// oriented line. Unoriented lines have no right side.
func (l Line) PointRightOfLine(p r2.Point) (bool, error) {
	if !l.oriented {
		return false, errors.Wrapf(numeric.ErrPrecondition, "line: right of unoriented %v", l)
	}
	return numeric.Orient2D(l.p1, l.p2, p) < 0, nil
}

// DistanceToPoint returns the Euclidean distance from p to its projection
// onto l along the line normal.
func (l Line) DistanceToPoint(p r2.Point) float64 {
	normal := l.Direction().Ortho()
	offset := normal.Dot(p.Sub(l.p1))
	foot := p.Sub(normal.Mul(offset))
	return p.Sub(foot).Norm()
}

func (l Line) Project(p r2.Point) r2.Point {
	d := l.Direction()
	return l.p1.Add(d.Mul(d.Dot(p.Sub(l.p1))))
}
