// Command esshader checks a WGSL vertex and fragment shader pair without a
// GPU and prints the locations of the requested attributes and uniforms.
//
//	esshader -vs sphere.wgsl -fs sphere.wgsl -attrib position -attrib normal -uniform uniforms
//
// The exit status is 1 if the pair does not compile or link.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/esutil"
	"github.com/gogpu/esutil/backend"
	"github.com/gogpu/esutil/backend/native"
	"github.com/gogpu/esutil/backend/offline"
	"github.com/gogpu/esutil/shader"
	"github.com/gogpu/wgpu/hal/noop"
)

// names collects repeated string flags.
type names []string

func (n *names) String() string { return strings.Join(*n, ",") }

func (n *names) Set(s string) error {
	*n = append(*n, s)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("esshader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		vsPath        = fs.String("vs", "", "vertex shader WGSL file (required)")
		fsPath        = fs.String("fs", "", "fragment shader WGSL file (default: same as -vs)")
		vertexEntry   = fs.String("vertex-entry", "vs_main", "vertex entry point")
		fragmentEntry = fs.String("fragment-entry", "fs_main", "fragment entry point")
		backendName   = fs.String("backend", backend.Offline, "shader backend")
		list          = fs.Bool("list", false, "list backends and exit")
		verbose       = fs.Bool("v", false, "log at debug level")
		attribs       names
		uniforms      names
	)
	fs.Var(&attribs, "attrib", "attribute to look up (repeatable)")
	fs.Var(&uniforms, "uniform", "uniform to look up (repeatable)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *list {
		for _, name := range backend.Available() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}
	if *vsPath == "" {
		fmt.Fprintln(stderr, "esshader: -vs is required")
		fs.Usage()
		return 2
	}
	if *fsPath == "" {
		*fsPath = *vsPath
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	esutil.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer esutil.SetLogger(nil)

	ctx, err := newContext(*backendName, *vertexEntry, *fragmentEntry)
	if err != nil {
		fmt.Fprintf(stderr, "esshader: %v\n", err)
		return 1
	}
	defer ctx.Close()

	vs, err := os.ReadFile(*vsPath)
	if err != nil {
		fmt.Fprintf(stderr, "esshader: %v\n", err)
		return 1
	}
	fsrc, err := os.ReadFile(*fsPath)
	if err != nil {
		fmt.Fprintf(stderr, "esshader: %v\n", err)
		return 1
	}

	prog, err := shader.Build(ctx, string(vs), string(fsrc), shader.WithLabel(*vsPath))
	if err != nil {
		reportBuildError(stderr, err, *vsPath, *fsPath)
		return 1
	}
	defer prog.Release()

	status := 0
	for _, name := range attribs {
		loc := prog.AttribLocation(name)
		if loc < 0 {
			fmt.Fprintf(stderr, "esshader: attribute %q not found\n", name)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "attribute %s %d\n", name, loc)
	}
	for _, name := range uniforms {
		loc := prog.UniformLocation(name)
		if loc < 0 {
			fmt.Fprintf(stderr, "esshader: uniform %q not found\n", name)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "uniform %s group %d binding %d\n", name, loc>>16, loc&0xFFFF)
	}
	return status
}

// newContext creates the named backend. The built-in backends honor the
// entry point flags; other registered backends use their defaults.
func newContext(name, vertexEntry, fragmentEntry string) (backend.Context, error) {
	switch name {
	case backend.Offline:
		return offline.New(offline.WithEntryPoints(vertexEntry, fragmentEntry)), nil
	case backend.Headless:
		return native.New(&noop.Device{}, native.WithEntryPoints(vertexEntry, fragmentEntry))
	default:
		return backend.New(name)
	}
}

func reportBuildError(w io.Writer, err error, vsPath, fsPath string) {
	var be *shader.BuildError
	if !errors.As(err, &be) {
		fmt.Fprintf(w, "esshader: %v\n", err)
		return
	}
	switch be.Stage {
	case shader.StageVertex:
		fmt.Fprintf(w, "%s: vertex shader failed to compile:\n%s\n", vsPath, be.Log)
	case shader.StageFragment:
		fmt.Fprintf(w, "%s: fragment shader failed to compile:\n%s\n", fsPath, be.Log)
	default:
		fmt.Fprintf(w, "esshader: %v\n", err)
	}
}
