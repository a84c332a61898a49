// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/2dChan/r2geom/line"
	"github.com/2dChan/r2geom/numeric"
	"github.com/2dChan/r2geom/svgio"
	"github.com/2dChan/r2geom/utils"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/golang/geo/r2"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// boundsMargin pads the scene around the input, as a fraction of its size.
const boundsMargin = 0.05

func init() {
	petname.NonDeterministicMode()
}

type app struct {
	configPath string
	out        string
	format     string
	input      string
	numPoints  int
	seed       int64
	imgcat     bool
	verbose    bool

	cfg Config
	log logrus.FieldLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "r2geom",
		Short: "Planar computational geometry toolkit.",
		Long: `r2geom runs Delaunay triangulation, Voronoi diagrams, polygon
triangulation, visibility polygons, geometric spanners and ham-sandwich cuts
on random points or on the <polygon> and <circle> elements of an SVG file,
and renders the result.

Rendering settings can be changed with a TOML configuration file passed
through the --config flag.`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML configuration file")
	flags.StringVarP(&a.out, "out", "o", "", "output file (.svg or .png); a random name is used when empty")
	flags.StringVar(&a.format, "format", "svg", "output format when --out is empty (svg or png)")
	flags.StringVarP(&a.input, "input", "i", "", "SVG file with input polygons and points")
	flags.IntVarP(&a.numPoints, "points", "n", 100, "number of random points when no input is given")
	flags.Int64Var(&a.seed, "seed", 0, "random seed")
	flags.BoolVar(&a.imgcat, "imgcat", false, "print PNG output to an iTerm2 compatible terminal")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.delaunayCmd(),
		a.voronoiCmd(),
		a.triangulateCmd(),
		a.visibilityCmd(),
		a.spannerCmd(),
		a.hamSandwichCmd(),
	)
	return root
}

func (a *app) setup() error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	a.log = logger

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) document() (svgio.Document, error) {
	if a.input == "" {
		return svgio.Document{}, errors.Wrap(numeric.ErrPrecondition, "r2geom: --input is required")
	}
	f, err := os.Open(a.input)
	if err != nil {
		return svgio.Document{}, errors.Wrap(err, "r2geom: open input")
	}
	defer func() {
		if err := f.Close(); err != nil {
			a.log.WithError(err).Warn("r2geom: close input")
		}
	}()
	return svgio.Read(f)
}

// points returns the circle centres of the input file, or random points in
// the unit square.
func (a *app) points() ([]r2.Point, error) {
	if a.input == "" {
		if a.numPoints <= 0 {
			return nil, errors.Wrapf(numeric.ErrPrecondition, "r2geom: invalid point count %d", a.numPoints)
		}
		return utils.GenerateRandomPoints(a.numPoints, a.seed), nil
	}
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	if len(doc.Points) == 0 {
		return nil, errors.Wrapf(numeric.ErrInvalidGeometry, "r2geom: %s has no <circle> elements", a.input)
	}
	return doc.Points, nil
}

// scene returns an empty scene framing points.
func (a *app) scene(points []r2.Point) (*svgio.Scene, error) {
	box, err := line.BoundingBox(points)
	if err != nil {
		return nil, err
	}
	size := box.Size()
	pad := boundsMargin * max(size.X, size.Y, numeric.DefaultEps)
	box = box.ExpandedByMargin(pad)
	return svgio.NewScene(a.cfg.Width, a.cfg.Height, box)
}

func (a *app) site(s *svgio.Scene, p r2.Point) {
	s.Point(p, a.cfg.Styles.SiteRadius, a.cfg.Styles.Site)
}

func (a *app) outputName() (string, string, error) {
	name := a.out
	if name == "" {
		name = petname.Generate(2, "-") + "." + a.format
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if format != "svg" && format != "png" {
		return "", "", errors.Errorf("r2geom: unsupported output format %q", format)
	}
	return name, format, nil
}

// write renders s to the output file.
func (a *app) write(s *svgio.Scene) (err error) {
	name, format, err := a.outputName()
	if err != nil {
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "r2geom: create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "r2geom: close output")
		}
	}()

	if format == "png" {
		err = s.WritePNG(f)
	} else {
		err = s.WriteSVG(f)
	}
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"file": name, "shapes": s.Len()}).Info("r2geom: scene written")

	if a.imgcat {
		if format != "png" {
			a.log.Warn("r2geom: --imgcat needs png output")
			return nil
		}
		imgcat.CatFile(name, os.Stdout)
	}
	return nil
}
