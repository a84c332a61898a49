// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"github.com/2dChan/r2geom/graph"
	"github.com/2dChan/r2geom/hamsandwich"
	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/polygon"
	"github.com/2dChan/r2geom/r2delaunay"
	"github.com/2dChan/r2geom/r2voronoi"
	"github.com/2dChan/r2geom/svgio"
	"github.com/2dChan/r2geom/triangulator"
	"github.com/2dChan/r2geom/utils"
	"github.com/2dChan/r2geom/visibility"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) delaunayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delaunay",
		Short: "Delaunay triangulation of a point set",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			pts, err := a.points()
			if err != nil {
				return err
			}
			dt, err := r2delaunay.NewTriangulation(pts, r2delaunay.WithLogger(a.log))
			if err != nil {
				return err
			}
			s, err := a.scene(pts)
			if err != nil {
				return err
			}
			if err := a.drawMesh(s, dt); err != nil {
				return err
			}

			hull, err := dt.ConvexHull()
			if err != nil {
				return err
			}
			for i, v := range hull {
				w := hull[numeric.Mod(i+1, len(hull))]
				s.Segment(line.Segment{A: dt.Vertices[v], B: dt.Vertices[w]}, a.cfg.Styles.Edge)
			}
			for _, p := range pts {
				a.site(s, p)
			}
			a.log.WithFields(logrus.Fields{"triangles": dt.NumTriangles(), "hull": len(hull)}).Info("r2geom: delaunay")
			return a.write(s)
		},
	}
}

func (a *app) voronoiCmd() *cobra.Command {
	var relax int
	cmd := &cobra.Command{
		Use:   "voronoi",
		Short: "Voronoi diagram of a point set",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			pts, err := a.points()
			if err != nil {
				return err
			}
			vd, err := r2voronoi.NewDiagram(pts, r2voronoi.WithLogger(a.log))
			if err != nil {
				return err
			}
			if err := vd.Relax(relax); err != nil {
				return err
			}

			sites := make([]r2.Point, vd.NumCells())
			for i := range sites {
				c, err := vd.Cell(i)
				if err != nil {
					return err
				}
				sites[i] = c.Site()
			}
			s, err := a.scene(sites)
			if err != nil {
				return err
			}

			bounded := 0
			for i := range vd.NumCells() {
				c, err := vd.Cell(i)
				if err != nil {
					return err
				}
				if !c.IsBounded() {
					continue
				}
				p, err := c.Polygon()
				if err != nil {
					return err
				}
				s.Polygon(p, a.cfg.Styles.Face)
				bounded++
			}
			for _, p := range sites {
				a.site(s, p)
			}
			a.log.WithFields(logrus.Fields{"cells": vd.NumCells(), "bounded": bounded}).Info("r2geom: voronoi")
			return a.write(s)
		},
	}
	cmd.Flags().IntVar(&relax, "relax", 0, "Lloyd relaxation steps")
	return cmd
}

func (a *app) triangulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triangulate",
		Short: "Ear-clipping triangulation of the polygons of an SVG file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			doc, err := a.document()
			if err != nil {
				return err
			}
			if len(doc.Polygons) == 0 {
				return errors.Wrapf(numeric.ErrInvalidGeometry, "r2geom: %s has no <polygon> elements", a.input)
			}

			var all []r2.Point
			for _, p := range doc.Polygons {
				all = append(all, p.Vertices()...)
			}
			s, err := a.scene(all)
			if err != nil {
				return err
			}
			for i, p := range doc.Polygons {
				tr, err := triangulator.Polygon(p, r2delaunay.WithLogger(a.log))
				if err != nil {
					return errors.WithMessagef(err, "r2geom: polygon %d", i)
				}
				if err := a.drawMesh(s, tr); err != nil {
					return err
				}
				s.Polygon(p, a.cfg.Styles.Edge)
			}
			return a.write(s)
		},
	}
}

func (a *app) visibilityCmd() *cobra.Command {
	var at []float64
	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "Visibility polygon inside the polygons of an SVG file",
		Long: `visibility treats the largest <polygon> of the input as the outer
boundary and every other polygon as a hole. The viewpoint is the first
<circle> unless --at is given.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			doc, err := a.document()
			if err != nil {
				return err
			}
			shape, err := doc.Shape()
			if err != nil {
				return err
			}

			var x r2.Point
			switch {
			case len(at) == 2:
				x = r2.Point{X: at[0], Y: at[1]}
			case len(at) != 0:
				return errors.Wrapf(numeric.ErrPrecondition, "r2geom: --at needs two coordinates, got %d", len(at))
			case len(doc.Points) > 0:
				x = doc.Points[0]
			default:
				return errors.Wrap(numeric.ErrPrecondition, "r2geom: no viewpoint")
			}

			vis, err := visibility.Vision(shape, x)
			if err != nil {
				return err
			}
			s, err := a.scene(shape.Outer.Vertices())
			if err != nil {
				return err
			}
			s.Polygon(shape.Outer, a.cfg.Styles.Face)
			for _, h := range shape.Holes {
				s.Polygon(h, a.cfg.Styles.Edge)
			}
			s.Polygon(vis, a.cfg.Styles.Highlight)
			a.site(s, x)
			a.log.WithFields(logrus.Fields{"vertices": vis.Len(), "area": vis.Area()}).Info("r2geom: visibility")
			return a.write(s)
		},
	}
	cmd.Flags().Float64SliceVar(&at, "at", nil, "viewpoint as x,y")
	return cmd
}

func (a *app) spannerCmd() *cobra.Command {
	var (
		ratio float64
		mst   bool
	)
	cmd := &cobra.Command{
		Use:   "spanner",
		Short: "Greedy t-spanner or minimum spanning tree of a point set",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			pts, err := a.points()
			if err != nil {
				return err
			}

			var g *graph.Graph
			if mst {
				complete := graph.New(pts)
				complete.MakeComplete()
				g = complete.MinimumSpanningTree()
			} else {
				g, err = graph.GreedySpanner(pts, ratio)
				if err != nil {
					return err
				}
			}

			s, err := a.scene(pts)
			if err != nil {
				return err
			}
			for _, e := range g.Edges() {
				s.Segment(line.Segment{A: g.Point(e.U), B: g.Point(e.V)}, a.cfg.Styles.Edge)
			}
			for _, p := range pts {
				a.site(s, p)
			}

			report := g.VerifySpanner(ratio)
			a.log.WithFields(logrus.Fields{
				"edges":      g.NumEdges(),
				"length":     g.TotalLength(),
				"max_ratio":  report.MaxRatio,
				"is_spanner": report.IsSpanner,
			}).Info("r2geom: spanner")
			return a.write(s)
		},
	}
	cmd.Flags().Float64VarP(&ratio, "ratio", "t", 1.5, "stretch factor")
	cmd.Flags().BoolVar(&mst, "mst", false, "draw the minimum spanning tree instead")
	return cmd
}

func (a *app) hamSandwichCmd() *cobra.Command {
	var numSets int
	cmd := &cobra.Command{
		Use:   "hamsandwich",
		Short: "Lines bisecting up to three point sets",
		Long: `hamsandwich finds lines that bisect every point set at once. With
--input each <polygon> element's vertices form one set; otherwise --sets
random sets of --points points are generated side by side.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			sets, err := a.pointSets(numSets)
			if err != nil {
				return err
			}
			lines, err := hamsandwich.FindCutLines(sets...)
			if err != nil {
				return err
			}

			var all []r2.Point
			for _, set := range sets {
				all = append(all, set...)
			}
			s, err := a.scene(all)
			if err != nil {
				return err
			}
			for _, l := range lines {
				s.Line(l, a.cfg.Styles.Highlight)
			}
			for i, set := range sets {
				st := svgio.Style{Fill: palette[i%len(palette)]}
				for _, p := range set {
					s.Point(p, a.cfg.Styles.SiteRadius, st)
				}
			}
			a.log.WithFields(logrus.Fields{"sets": len(sets), "lines": len(lines)}).Info("r2geom: hamsandwich")
			return a.write(s)
		},
	}
	cmd.Flags().IntVar(&numSets, "sets", 3, "number of random point sets (1 to 3)")
	return cmd
}

func (a *app) pointSets(numSets int) ([][]r2.Point, error) {
	if a.input != "" {
		doc, err := a.document()
		if err != nil {
			return nil, err
		}
		sets := make([][]r2.Point, len(doc.Polygons))
		for i, p := range doc.Polygons {
			sets[i] = p.Vertices()
		}
		return sets, nil
	}

	if numSets < 1 || numSets > len(palette) {
		return nil, errors.Wrapf(numeric.ErrPrecondition, "r2geom: invalid number of sets %d", numSets)
	}
	sets := make([][]r2.Point, numSets)
	for i := range sets {
		x := 1.5 * float64(i)
		rect := r2.RectFromPoints(r2.Point{X: x, Y: 0}, r2.Point{X: x + 1, Y: 1})
		sets[i] = utils.GenerateRandomPointsInRect(a.numPoints, a.seed+int64(i), rect)
	}
	return sets, nil
}

// drawMesh draws every triangle of t.
func (a *app) drawMesh(s *svgio.Scene, t *r2delaunay.Triangulation) error {
	vertices, indices := t.Mesh()
	for i := 0; i+2 < len(indices); i += 3 {
		p, err := polygon.New([]r2.Point{vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]})
		if err != nil {
			return err
		}
		s.Polygon(p, a.cfg.Styles.Face)
	}
	return nil
}
