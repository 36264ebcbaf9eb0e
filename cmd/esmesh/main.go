// Command esmesh writes the meshes of package shape as Wavefront OBJ files.
//
//	esmesh -shape sphere -slices 40 -radius 1 -o sphere.obj
//	esmesh -shape cube -scale 2 > cube.obj
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/esutil"
	"github.com/gogpu/esutil/shape"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "esmesh: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("esmesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kind    = fs.String("shape", "sphere", "shape to generate: sphere or cube")
		slices  = fs.Int("slices", 20, "sphere slices")
		radius  = fs.Float64("radius", 0.75, "sphere radius")
		scale   = fs.Float64("scale", 1, "cube scale")
		output  = fs.String("o", "", "output file (default stdout)")
		verbose = fs.Bool("v", false, "log at debug level")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	esutil.SetLogger(logger)
	defer esutil.SetLogger(nil)

	var (
		mesh shape.Mesh
		err  error
	)
	switch *kind {
	case "sphere":
		mesh, err = shape.Sphere(*slices, float32(*radius))
	case "cube":
		mesh, err = shape.Cube(float32(*scale))
	default:
		return fmt.Errorf("unknown shape %q", *kind)
	}
	if err != nil {
		return err
	}

	w := stdout
	var f *os.File
	if *output != "" {
		if f, err = os.Create(*output); err != nil {
			return err
		}
		w = f
	}

	err = writeOBJ(w, *kind, mesh)
	if f != nil {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", *kind, err)
	}

	logger.Info("mesh written",
		"shape", *kind,
		"vertices", mesh.NumVertices(),
		"triangles", mesh.NumTriangles(),
		"output", outputName(*output))
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
