// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package numeric holds the tolerance-aware comparisons and geometric
// predicates every other package in r2geom is built on.
//
// Sign conventions are fixed here and relied upon downstream: a positive
// orientation means counter-clockwise, a negative one clockwise.
package numeric

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultEps is the tolerance used by every approximate comparison in the
// module unless a caller overrides it through an option.
const DefaultEps = 1e-5

// Relative error bounds of the floating-point orientation and in-circle
// determinants. A determinant within its bound has an unreliable sign.
const (
	orientErrBound   = 1e-14
	inCircleErrBound = 1e-13
)

var (
	// ErrInvalidGeometry reports non-finite or otherwise degenerate input.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrPrecondition reports an operation called outside of its domain.
	ErrPrecondition = errors.New("precondition violated")
)

// EqualsEps reports whether a and b differ by at most DefaultEps.
func EqualsEps(a, b float64) bool {
	return EqualsWithin(a, b, DefaultEps)
}

// EqualsWithin reports whether a and b differ by at most eps.
func EqualsWithin(a, b, eps float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return scalar.EqualWithinAbs(a, b, eps)
}

// GEQEps reports a >= b with DefaultEps slack.
func GEQEps(a, b float64) bool {
	return a >= b-DefaultEps
}

// LEQEps reports a <= b with DefaultEps slack.
func LEQEps(a, b float64) bool {
	return a <= b+DefaultEps
}

// PointsEqual reports whether a and b are closer than DefaultEps.
func PointsEqual(a, b r2.Point) bool {
	return PointsEqualWithin(a, b, DefaultEps)
}

// PointsEqualWithin compares squared distance against eps².
func PointsEqualWithin(a, b r2.Point, eps float64) bool {
	d := a.Sub(b)
	return d.Dot(d) < eps*eps
}

// IsFinite reports whether both coordinates of p are finite.
func IsFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Det2D returns the determinant of the 2x2 matrix (a-c, b-c). It is twice the
// signed area of the triangle abc.
func Det2D(a, b, c r2.Point) float64 {
	return (a.X-c.X)*(b.Y-c.Y) - (a.Y-c.Y)*(b.X-c.X)
}

// Orient2D returns +1 when abc turns counter-clockwise, -1 when it turns
// clockwise and 0 when one of the points lies within DefaultEps of the line
// through the other two.
func Orient2D(a, b, c r2.Point) int {
	return Orient2DWithin(a, b, c, DefaultEps)
}

// Orient2DWithin is Orient2D with the distance tolerance eps. The smallest
// height of abc is twice its area over its longest edge.
func Orient2DWithin(a, b, c r2.Point, eps float64) int {
	d := Det2D(a, b, c)
	longest := math.Max(b.Sub(a).Norm(), math.Max(c.Sub(b).Norm(), a.Sub(c).Norm()))
	switch {
	case d > eps*longest:
		return 1
	case d < -eps*longest:
		return -1
	}
	return 0
}

// OrientSign returns the sign of Det2D(a, b, c). It returns 0 only when the
// points are collinear or the sign is lost to rounding.
func OrientSign(a, b, c r2.Point) int {
	l := (a.X - c.X) * (b.Y - c.Y)
	r := (a.Y - c.Y) * (b.X - c.X)
	d := l - r
	bound := orientErrBound * (math.Abs(l) + math.Abs(r))
	switch {
	case d > bound:
		return 1
	case d < -bound:
		return -1
	}
	return 0
}

// InsideCircle reports whether x lies strictly inside the circle through a, b
// and c. The result does not depend on the winding of abc. Points whose
// in-circle determinant is within rounding error of zero count as on the
// circle, whatever the size of the triangle.
func InsideCircle(a, b, c, x r2.Point) bool {
	orient := Det2D(a, b, c)
	if orient == 0 {
		return false
	}

	adx, ady := a.X-x.X, a.Y-x.Y
	bdx, bdy := b.X-x.X, b.Y-x.Y
	cdx, cdy := c.X-x.X, c.Y-x.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	bcx, cby := bdx*cdy, cdx*bdy
	cax, acy := cdx*ady, adx*cdy
	abx, bay := adx*bdy, bdx*ady

	det := alift*(bcx-cby) + blift*(cax-acy) + clift*(abx-bay)
	perm := alift*(math.Abs(bcx)+math.Abs(cby)) +
		blift*(math.Abs(cax)+math.Abs(acy)) +
		clift*(math.Abs(abx)+math.Abs(bay))

	if orient < 0 {
		det = -det
	}
	return det > inCircleErrBound*perm
}

// Circumcenter returns the center of the circle through a, b and c. Collinear
// input yields a non-finite center, reported as ErrInvalidGeometry.
func Circumcenter(a, b, c r2.Point) (r2.Point, error) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))

	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y

	p := r2.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
	if !IsFinite(p) {
		return r2.Point{}, pkgerrors.Wrapf(ErrInvalidGeometry,
			"numeric: circumcenter of %v %v %v", a, b, c)
	}
	return p, nil
}

// Angle returns the counter-clockwise angle swept from a to b around x,
// normalized into [0, 2π).
func Angle(x, a, b r2.Point) (float64, error) {
	va := a.Sub(x)
	vb := b.Sub(x)
	raw := math.Atan2(va.Cross(vb), va.Dot(vb))
	if !(raw >= -math.Pi-DefaultEps && raw <= math.Pi+DefaultEps) {
		return 0, pkgerrors.Wrapf(ErrInvalidGeometry,
			"numeric: angle %v-%v-%v out of range: %v", a, x, b, raw)
	}
	if raw < 0 {
		raw += 2 * math.Pi
	}
	if raw >= 2*math.Pi {
		raw -= 2 * math.Pi
	}
	return raw, nil
}

// Mod returns i modulo n in [0, n).
func Mod(i, n int) int {
	return (i%n + n) % n
}

// ModFloat returns x modulo m in [0, m).
func ModFloat(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
