// Package offline provides a shader.Context that validates WGSL with naga and
// needs no GPU.
//
// It is meant for tooling and tests: compile errors, missing entry points and
// attribute or uniform lookups behave as they would on a device, but nothing
// is uploaded anywhere. Shader and program objects live in memory until they
// are deleted.
package offline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/esutil"
	"github.com/gogpu/esutil/internal/wgsl"
	"github.com/gogpu/esutil/shader"
)

// ErrUnsupportedStage is returned by CreateShader for stages other than
// vertex and fragment.
var ErrUnsupportedStage = errors.New("offline: unsupported shader stage")

// Option configures a Context.
type Option func(*options)

type options struct {
	vertexEntry   string
	fragmentEntry string
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
	}
}

// WithEntryPoints sets the entry point names a link looks for. Empty names
// keep the defaults, vs_main and fs_main.
func WithEntryPoints(vertex, fragment string) Option {
	return func(o *options) {
		if vertex != "" {
			o.vertexEntry = vertex
		}
		if fragment != "" {
			o.fragmentEntry = fragment
		}
	}
}

// WithLogger sets the logger for the context. By default the package logger
// from esutil.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

type shaderObject struct {
	stage    shader.Stage
	compiled bool
	log      string
	module   *wgsl.Module
}

type programObject struct {
	attached []shader.ShaderID
	linked   bool
	log      string
	vertex   *wgsl.Module
	fragment *wgsl.Module
}

// Context is an in-memory shader.Context backed by naga.
//
// Context is safe for concurrent use.
type Context struct {
	mu       sync.Mutex
	opts     options
	log      *slog.Logger
	nextID   uint32
	shaders  map[shader.ShaderID]*shaderObject
	programs map[shader.ProgramID]*programObject
}

var _ shader.Context = (*Context)(nil)

// New creates an offline context.
func New(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = esutil.Logger()
	}
	return &Context{
		opts:     o,
		log:      log,
		shaders:  make(map[shader.ShaderID]*shaderObject),
		programs: make(map[shader.ProgramID]*programObject),
	}
}

func (c *Context) newID() uint32 {
	c.nextID++
	return c.nextID
}

// CreateShader implements shader.Context.
func (c *Context) CreateShader(stage shader.Stage) (shader.ShaderID, error) {
	if stage != shader.StageVertex && stage != shader.StageFragment {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedStage, stage)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := shader.ShaderID(c.newID())
	c.shaders[id] = &shaderObject{stage: stage}
	return id, nil
}

// CompileShader implements shader.Context. The source is compiled to SPIR-V
// and discarded; only the reflected interface is kept.
func (c *Context) CompileShader(id shader.ShaderID, source string) bool {
	c.mu.Lock()
	obj, ok := c.shaders[id]
	c.mu.Unlock()
	if !ok {
		return false
	}

	spirv, err := wgsl.Compile(source)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		obj.compiled = false
		obj.log = err.Error()
		obj.module = nil
		return false
	}
	obj.compiled = true
	obj.log = ""
	obj.module = wgsl.Reflect(source)
	c.log.Debug("offline: shader compiled", "stage", obj.stage, "spirv_bytes", len(spirv))
	return true
}

// ShaderInfoLog implements shader.Context.
func (c *Context) ShaderInfoLog(id shader.ShaderID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if obj, ok := c.shaders[id]; ok {
		return obj.log
	}
	return ""
}

// DeleteShader implements shader.Context.
func (c *Context) DeleteShader(id shader.ShaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.shaders, id)
}

// CreateProgram implements shader.Context.
func (c *Context) CreateProgram() (shader.ProgramID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := shader.ProgramID(c.newID())
	c.programs[id] = &programObject{}
	return id, nil
}

// AttachShader implements shader.Context.
func (c *Context) AttachShader(program shader.ProgramID, id shader.ShaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prog, ok := c.programs[program]; ok {
		prog.attached = append(prog.attached, id)
	}
}

// LinkProgram implements shader.Context. A link needs exactly one compiled
// vertex and one compiled fragment shader, each declaring its entry point.
func (c *Context) LinkProgram(program shader.ProgramID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok {
		return false
	}

	vertex, fragment, msg := c.resolveStages(prog.attached)
	if msg == "" {
		switch {
		case !vertex.HasEntryPoint(wgsl.StageVertex, c.opts.vertexEntry):
			msg = fmt.Sprintf("vertex entry point %q not found", c.opts.vertexEntry)
		case !fragment.HasEntryPoint(wgsl.StageFragment, c.opts.fragmentEntry):
			msg = fmt.Sprintf("fragment entry point %q not found", c.opts.fragmentEntry)
		}
	}
	if msg != "" {
		prog.linked = false
		prog.log = msg
		prog.vertex, prog.fragment = nil, nil
		return false
	}

	prog.linked = true
	prog.log = ""
	prog.vertex, prog.fragment = vertex, fragment
	return true
}

// resolveStages returns the reflected vertex and fragment modules of the
// attached shaders, or a link log explaining why they are unusable.
// Must be called with mu held.
func (c *Context) resolveStages(attached []shader.ShaderID) (vertex, fragment *wgsl.Module, msg string) {
	var problems []string
	for _, id := range attached {
		obj, ok := c.shaders[id]
		if !ok {
			problems = append(problems, fmt.Sprintf("shader %d does not exist", id))
			continue
		}
		if !obj.compiled {
			problems = append(problems, fmt.Sprintf("%s shader %d is not compiled", obj.stage, id))
			continue
		}
		switch obj.stage {
		case shader.StageVertex:
			if vertex != nil {
				problems = append(problems, "more than one vertex shader attached")
			}
			vertex = obj.module
		case shader.StageFragment:
			if fragment != nil {
				problems = append(problems, "more than one fragment shader attached")
			}
			fragment = obj.module
		}
	}
	if vertex == nil {
		problems = append(problems, "no compiled vertex shader attached")
	}
	if fragment == nil {
		problems = append(problems, "no compiled fragment shader attached")
	}
	return vertex, fragment, strings.Join(problems, "\n")
}

// ProgramInfoLog implements shader.Context.
func (c *Context) ProgramInfoLog(program shader.ProgramID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prog, ok := c.programs[program]; ok {
		return prog.log
	}
	return ""
}

// DeleteProgram implements shader.Context.
func (c *Context) DeleteProgram(program shader.ProgramID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.programs, program)
}

// AttribLocation implements shader.Context. Locations come from the
// @location inputs of the vertex entry point.
func (c *Context) AttribLocation(program shader.ProgramID, name string) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok || !prog.linked {
		return -1
	}
	return prog.vertex.AttribLocation(c.opts.vertexEntry, name)
}

// UniformLocation implements shader.Context. The location of a var<uniform>
// is group<<16 | binding.
func (c *Context) UniformLocation(program shader.ProgramID, name string) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok || !prog.linked {
		return -1
	}
	if loc := prog.vertex.UniformLocation(name); loc >= 0 {
		return loc
	}
	return prog.fragment.UniformLocation(name)
}

// Outstanding returns the number of shader and program objects that have
// not been deleted.
func (c *Context) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shaders) + len(c.programs)
}
