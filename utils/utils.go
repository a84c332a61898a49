// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar point sets for tests, benchmarks and examples.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt random points in the unit square.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	return GenerateRandomPointsInRect(cnt, seed, r2.RectFromPoints(r2.Point{}, r2.Point{X: 1, Y: 1}))
}

// GenerateRandomPointsInRect generates cnt random points uniformly inside rect.
func GenerateRandomPointsInRect(cnt int, seed int64, rect r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	lo, size := rect.Lo(), rect.Size()
	for i := range cnt {
		points[i] = r2.Point{
			X: lo.X + random.Float64()*size.X,
			Y: lo.Y + random.Float64()*size.Y,
		}
	}

	return points
}

// GenerateCirclePoints returns cnt points evenly spaced on the circle around
// center, starting at angle zero and going counter-clockwise.
func GenerateCirclePoints(cnt int, center r2.Point, radius float64) []r2.Point {
	points := make([]r2.Point, cnt)
	for i := range cnt {
		a := 2 * math.Pi * float64(i) / float64(cnt)
		points[i] = center.Add(r2.Point{X: math.Cos(a), Y: math.Sin(a)}.Mul(radius))
	}
	return points
}
