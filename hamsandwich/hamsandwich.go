// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package hamsandwich finds lines bisecting up to three point sets at once.
//
// A point (a, b) is dual to the line y = a*x - b. A primal line bisects a set
// exactly when its dual point has half of the set's dual lines above it, so
// the bisectors of one set are the duals of the middle faces of its line
// arrangement, and common bisectors are the duals of the overlap of the
// middle faces of every set.
package hamsandwich

import (
	"github.com/2dChan/r2geom/internal/invariant"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const (
	maxSets = 3
	// boxMargin pads the box around the arrangement of all dual lines.
	boxMargin = 1.0
)

var ErrTooManySets = errors.New("hamsandwich: at most three sets can be bisected")

// PointToLine returns the dual line y = p.X*x - p.Y.
func PointToLine(p r2.Point) line.Line {
	return line.FromSlope(p.X, -p.Y)
}

// LineToPoint returns the dual point of l. Vertical lines have none.
func LineToPoint(l line.Line) (r2.Point, error) {
	if l.IsVertical() {
		return r2.Point{}, errors.Wrapf(numeric.ErrPrecondition, "hamsandwich: vertical line %v has no dual", l)
	}
	return r2.Point{X: l.Slope(), Y: -l.HeightAtYAxis()}, nil
}

// FindCutLines returns one line per connected piece of the common bisector
// region of the sets. Each line leaves at most half of every set on either
// side; odd sets keep their extra point above the line.
func FindCutLines(sets ...[]r2.Point) (lines []line.Line, err error) {
	if err := checkCount(len(sets)); err != nil {
		return nil, err
	}
	duals := make([][]line.Line, len(sets))
	var all []line.Line
	for i, set := range sets {
		if len(set) == 0 {
			return nil, errors.Wrapf(numeric.ErrPrecondition, "hamsandwich: set %d is empty", i)
		}
		if err := checkSet(set); err != nil {
			return nil, errors.WithMessagef(err, "set %d", i)
		}
		for _, p := range set {
			duals[i] = append(duals[i], PointToLine(p))
		}
		all = append(all, duals[i]...)
	}

	bounds, err := arrangementBounds(all)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, invariant.Recover(r)
		}
	}()

	regions := make([]Region, len(sets))
	for i, ls := range duals {
		regions[i], err = middleRegion(ls, bounds)
		if err != nil {
			return nil, errors.WithMessagef(err, "hamsandwich: set %d", i)
		}
	}
	return cutLines(regions)
}

// CutLinesFromRegions returns the cut lines for precomputed middle regions.
// Each region must list faces ordered along x with consecutive bounding
// boxes sharing exactly their x boundary.
func CutLinesFromRegions(regions ...Region) ([]line.Line, error) {
	if err := checkCount(len(regions)); err != nil {
		return nil, err
	}
	for i, r := range regions {
		if err := r.validate(); err != nil {
			return nil, errors.WithMessagef(err, "hamsandwich: region %d", i)
		}
	}
	return cutLines(regions)
}

func checkCount(n int) error {
	switch {
	case n == 0:
		return errors.Wrap(numeric.ErrPrecondition, "hamsandwich: no sets")
	case n > maxSets:
		return errors.Wrapf(ErrTooManySets, "got %d", n)
	}
	return nil
}

func cutLines(regions []Region) ([]line.Line, error) {
	merged := regions[0]
	for _, r := range regions[1:] {
		merged = merge(merged, r)
	}

	lines := make([]line.Line, 0, len(merged))
	for _, face := range merged {
		lines = append(lines, PointToLine(chebyshevCenter(face)))
	}
	return lines, nil
}

// arrangementBounds returns a box holding every vertex of the arrangement in
// which every line enters through the left side and leaves through the
// right one.
func arrangementBounds(lines []line.Line) (r2.Rect, error) {
	box, err := line.BoundingBoxFromLines(lines, boxMargin)
	if err != nil {
		return r2.Rect{}, err
	}
	lo, hi := box.Lo().X, box.Hi().X
	for _, l := range lines {
		for _, x := range []float64{lo, hi} {
			// Dual lines are never vertical.
			y, _ := l.Y(x)
			box = box.AddPoint(r2.Point{X: x, Y: y})
		}
	}
	return r2.Rect{X: box.X, Y: box.Y.Expanded(boxMargin)}, nil
}
