// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package line

import (
	"errors"
	"math"
	"testing"

	"github.com/2dChan/r2geom/numeric"
	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// Line

func TestNew_Vertical(t *testing.T) {
	l := New(r2.Point{X: 2, Y: 0}, r2.Point{X: 2, Y: 5})
	if !l.IsVertical() {
		t.Fatalf("IsVertical() = false, want true")
	}
	if !math.IsInf(l.Slope(), 1) {
		t.Errorf("Slope() = %v, want +Inf", l.Slope())
	}
	if !math.IsNaN(l.HeightAtYAxis()) {
		t.Errorf("HeightAtYAxis() = %v, want NaN", l.HeightAtYAxis())
	}
	if _, err := l.Y(1); !errors.Is(err, numeric.ErrPrecondition) {
		t.Errorf("Y(1) error = %v, want ErrPrecondition", err)
	}
	x, err := l.X(10)
	if err != nil || x != 2 {
		t.Errorf("X(10) = %v, %v, want 2, nil", x, err)
	}
}

func TestLine_XY(t *testing.T) {
	l := FromSlope(2, 1)
	y, err := l.Y(3)
	if err != nil || y != 7 {
		t.Errorf("Y(3) = %v, %v, want 7, nil", y, err)
	}
	x, err := l.X(7)
	if err != nil || x != 3 {
		t.Errorf("X(7) = %v, %v, want 3, nil", x, err)
	}

	h := FromSlope(0, 4)
	if _, err := h.X(4); !errors.Is(err, numeric.ErrPrecondition) {
		t.Errorf("horizontal X(4) error = %v, want ErrPrecondition", err)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name    string
		l1, l2  Line
		want    r2.Point
		wantErr error
	}{
		{"crossing", FromSlope(1, 0), FromSlope(-1, 2), r2.Point{X: 1, Y: 1}, nil},
		{"one vertical", Vertical(3), FromSlope(2, 1), r2.Point{X: 3, Y: 7}, nil},
		{"other vertical", FromSlope(2, 1), Vertical(3), r2.Point{X: 3, Y: 7}, nil},
		{"two verticals", Vertical(1), Vertical(2), r2.Point{}, numeric.ErrPrecondition},
		{"parallel", FromSlope(1, 0), FromSlope(1, 1), r2.Point{}, numeric.ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Intersect(tt.l1, tt.l2)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Intersect(...) error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Intersect(...) error = %v, want nil", err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Intersect(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLine_PointAbove(t *testing.T) {
	l := FromSlope(1, 0)
	if !l.PointAbove(r2.Point{X: 0, Y: 1}) {
		t.Errorf("PointAbove((0,1)) = false, want true")
	}
	if l.PointAbove(r2.Point{X: 0, Y: -1}) {
		t.Errorf("PointAbove((0,-1)) = true, want false")
	}

	v := Vertical(0)
	if !v.PointAbove(r2.Point{X: -1, Y: 0}) {
		t.Errorf("vertical PointAbove(left) = false, want true")
	}
	if v.PointAbove(r2.Point{X: 1, Y: 0}) {
		t.Errorf("vertical PointAbove(right) = true, want false")
	}
}

func TestLine_PointRightOfLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 r2.Point
		p      r2.Point
		want   bool
	}{
		{"left to right, below", r2.Point{X: 0}, r2.Point{X: 1}, r2.Point{X: 0.5, Y: -1}, true},
		{"left to right, above", r2.Point{X: 0}, r2.Point{X: 1}, r2.Point{X: 0.5, Y: 1}, false},
		{"right to left, above", r2.Point{X: 1}, r2.Point{X: 0}, r2.Point{X: 0.5, Y: 1}, true},
		{"bottom up, right", r2.Point{Y: 0}, r2.Point{Y: 1}, r2.Point{X: 1, Y: 0.5}, true},
		{"top down, right", r2.Point{Y: 1}, r2.Point{Y: 0}, r2.Point{X: 1, Y: 0.5}, false},
		{"on line", r2.Point{X: 0}, r2.Point{X: 1}, r2.Point{X: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.p1, tt.p2).PointRightOfLine(tt.p)
			if err != nil {
				t.Fatalf("PointRightOfLine(...) error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("PointRightOfLine(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if _, err := FromSlope(1, 0).PointRightOfLine(r2.Point{}); !errors.Is(err, numeric.ErrPrecondition) {
		t.Errorf("unoriented PointRightOfLine error = %v, want ErrPrecondition", err)
	}
}

func TestLine_DistanceToPoint(t *testing.T) {
	tests := []struct {
		name string
		l    Line
		p    r2.Point
		want float64
	}{
		{"horizontal", FromSlope(0, 1), r2.Point{X: 5, Y: 4}, 3},
		{"vertical", Vertical(-1), r2.Point{X: 2, Y: 7}, 3},
		{"diagonal", FromSlope(1, 0), r2.Point{X: 0, Y: 2}, math.Sqrt2},
		{"on line", FromSlope(1, 0), r2.Point{X: 3, Y: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.DistanceToPoint(tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceToPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// Segment

func TestSegment_Intersect(t *testing.T) {
	tests := []struct {
		name   string
		s1, s2 Segment
		want   r2.Point
		wantOk bool
	}{
		{
			"crossing",
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}},
			Segment{r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 0}},
			r2.Point{X: 1, Y: 1}, true,
		},
		{
			"touching endpoint",
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}},
			Segment{r2.Point{X: 1, Y: 0}, r2.Point{X: 1, Y: 1}},
			r2.Point{X: 1, Y: 0}, true,
		},
		{
			"horizontal overlap",
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}},
			Segment{r2.Point{X: 1, Y: 0}, r2.Point{X: 3, Y: 0}},
			r2.Point{}, false,
		},
		{
			"identical",
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 1}},
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 1}},
			r2.Point{}, false,
		},
		{
			"boxes overlap without crossing",
			Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}},
			Segment{r2.Point{X: 1.5, Y: 0}, r2.Point{X: 2, Y: 1}},
			r2.Point{}, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.s1.Intersect(tt.s2)
			if ok != tt.wantOk {
				t.Fatalf("Intersect(...) ok = %v, want %v", ok, tt.wantOk)
			}
			if diff := cmp.Diff(tt.want, got, approx); ok && diff != "" {
				t.Errorf("Intersect(...) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegment_IntersectMany(t *testing.T) {
	s := Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}}
	others := []Segment{
		{r2.Point{X: 7, Y: -1}, r2.Point{X: 7, Y: 1}},
		{r2.Point{X: 2, Y: -1}, r2.Point{X: 2, Y: 1}},
		{r2.Point{X: 20, Y: -1}, r2.Point{X: 20, Y: 1}},
	}
	want := []r2.Point{{X: 2, Y: 0}, {X: 7, Y: 0}}
	if diff := cmp.Diff(want, s.IntersectMany(others), approx); diff != "" {
		t.Errorf("IntersectMany(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_DistanceToPoint(t *testing.T) {
	s := Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}}
	if got := s.DistanceToPoint(r2.Point{X: 1, Y: 1}); got != 1 {
		t.Errorf("DistanceToPoint(mid) = %v, want 1", got)
	}
	if got := s.DistanceToPoint(r2.Point{X: 5, Y: 4}); got != 5 {
		t.Errorf("DistanceToPoint(beyond) = %v, want 5", got)
	}
	if !s.ContainsPoint(r2.Point{X: 2, Y: 0}) {
		t.Errorf("ContainsPoint(endpoint) = false, want true")
	}
}

// Bounds

func TestBoundingBox(t *testing.T) {
	if _, err := BoundingBox(nil); !errors.Is(err, numeric.ErrInvalidGeometry) {
		t.Errorf("BoundingBox(nil) error = %v, want ErrInvalidGeometry", err)
	}
	got, err := BoundingBox([]r2.Point{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 0, Y: 7}})
	if err != nil {
		t.Fatalf("BoundingBox(...) error = %v, want nil", err)
	}
	want := r2.RectFromPoints(r2.Point{X: -2, Y: 3}, r2.Point{X: 1, Y: 7})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BoundingBox(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestBoundingBoxFromLines(t *testing.T) {
	lines := []Line{FromSlope(1, 0), FromSlope(-1, 4), Vertical(6)}
	got, err := BoundingBoxFromLines(lines, 1)
	if err != nil {
		t.Fatalf("BoundingBoxFromLines(...) error = %v, want nil", err)
	}
	for _, p := range []r2.Point{{X: 2, Y: 2}, {X: 6, Y: 6}, {X: 6, Y: -2}, {X: 0, Y: 4}} {
		if !got.ContainsPoint(p) {
			t.Errorf("BoundingBoxFromLines(...) = %v does not contain %v", got, p)
		}
	}

	if _, err := BoundingBoxFromLines(nil, 1); !errors.Is(err, numeric.ErrInvalidGeometry) {
		t.Errorf("BoundingBoxFromLines(nil) error = %v, want ErrInvalidGeometry", err)
	}
}

func TestClipToRect(t *testing.T) {
	rect := r2.RectFromPoints(r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1})
	tests := []struct {
		name   string
		l      Line
		want   Segment
		wantOk bool
	}{
		{"diagonal", FromSlope(1, 0), Segment{r2.Point{X: -1, Y: -1}, r2.Point{X: 1, Y: 1}}, true},
		{"horizontal", FromSlope(0, 0.5), Segment{r2.Point{X: -1, Y: 0.5}, r2.Point{X: 1, Y: 0.5}}, true},
		{"steep", FromSlope(4, 0), Segment{r2.Point{X: -0.25, Y: -1}, r2.Point{X: 0.25, Y: 1}}, true},
		{"vertical", Vertical(0), Segment{r2.Point{X: 0, Y: 1}, r2.Point{X: 0, Y: -1}}, true},
		{"miss", FromSlope(0, 5), Segment{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClipToRect(tt.l, rect)
			if ok != tt.wantOk {
				t.Fatalf("ClipToRect(%v) ok = %v, want %v", tt.l, ok, tt.wantOk)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("ClipToRect(%v) mismatch (-want +got):\n%s", tt.l, diff)
			}
		})
	}
}

// Index

func TestIndex_Intersections(t *testing.T) {
	segments := []Segment{
		{r2.Point{X: 1, Y: -1}, r2.Point{X: 1, Y: 1}},
		{r2.Point{X: 5, Y: -1}, r2.Point{X: 5, Y: 1}},
		{r2.Point{X: 3, Y: 2}, r2.Point{X: 3, Y: 4}},
		{r2.Point{X: 3, Y: -1}, r2.Point{X: 3, Y: 1}},
	}
	ix := NewIndex(segments)
	hits := ix.Intersections(Segment{r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}})

	got := make([]int, len(hits))
	for i, h := range hits {
		got[i] = h.Segment
	}
	want := []int{0, 3, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Intersections(...) mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{2}, ix.Near(r2.Point{X: 3, Y: 3}, 1e-6)); diff != "" {
		t.Errorf("Near(...) mismatch (-want +got):\n%s", diff)
	}
}
