// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

func TestGenerateRandomPoints_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateRandomPoints(tt.cnt, tt.seed)
			if len(points) != tt.cnt {
				t.Errorf("GenerateRandomPoints(%v, %v) len = %v, want %v", tt.cnt, tt.seed,
					len(points), tt.cnt)
			}
		})
	}
}

func TestGenerateRandomPoints_InUnitSquare(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	unit := r2.RectFromPoints(r2.Point{}, r2.Point{X: 1, Y: 1})
	for i, p := range GenerateRandomPoints(cnt, seed) {
		if !unit.ContainsPoint(p) {
			t.Errorf("GenerateRandomPoints(%v, %v)[%d] = %v, want inside %v", cnt, seed, i, p, unit)
		}
	}
}

func TestGenerateRandomPointsInRect(t *testing.T) {
	rect := r2.RectFromPoints(r2.Point{X: -5, Y: 10}, r2.Point{X: -3, Y: 20})
	for i, p := range GenerateRandomPointsInRect(50, 7, rect) {
		if !rect.ContainsPoint(p) {
			t.Errorf("GenerateRandomPointsInRect(50, 7, %v)[%d] = %v, want inside", rect, i, p)
		}
	}
}

func TestGenerateRandomPoints_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := GenerateRandomPoints(cnt, seed)
	b := GenerateRandomPoints(cnt, seed)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomPoints(%v, %v) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}

func TestGenerateCirclePoints(t *testing.T) {
	const (
		cnt     = 12
		radius  = 3
		epsilon = 1e-12
	)
	center := r2.Point{X: 1, Y: -2}
	for i, p := range GenerateCirclePoints(cnt, center, radius) {
		if d := p.Sub(center).Norm(); math.Abs(d-radius) > epsilon {
			t.Errorf("GenerateCirclePoints(...)[%d]: distance to center = %v, want %v", i, d, radius)
		}
	}
}
