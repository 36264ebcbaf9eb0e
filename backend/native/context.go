//go:build !nogpu

// Package native implements shader.Context on a gogpu/wgpu HAL device.
//
// WGSL sources are compiled to SPIR-V with naga and uploaded as HAL shader
// modules. Linking a program creates a pipeline layout and a render pipeline
// from the attached vertex and fragment modules; the pipeline is available
// through Context.Pipeline for drawing. Attribute and uniform locations are
// reflected from the WGSL source: an attribute's location is its @location,
// a uniform's location is group<<16 | binding.
//
// A Context does not own its device. Destroy releases the objects the
// context created, not the device.
package native

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/esutil"
	"github.com/gogpu/esutil/internal/wgsl"
	"github.com/gogpu/esutil/shader"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type shaderObject struct {
	stage   shader.Stage
	module  hal.ShaderModule
	log     string
	reflect *wgsl.Module
}

type programObject struct {
	attached []shader.ShaderID
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
	log      string
	vertex   *wgsl.Module
	fragment *wgsl.Module
}

// Context is a shader.Context backed by a hal.Device.
//
// Thread Safety: Context is safe for concurrent use from multiple goroutines.
// Object tables are protected by a mutex; HAL calls are made outside it.
type Context struct {
	mu     sync.Mutex
	device hal.Device
	opts   options
	log    *slog.Logger

	nextID    uint32
	destroyed bool

	shaders  map[shader.ShaderID]*shaderObject
	programs map[shader.ProgramID]*programObject
}

var _ shader.Context = (*Context)(nil)

// New creates a context on device.
func New(device hal.Device, opts ...Option) (*Context, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = esutil.Logger()
	}
	return &Context{
		device:   device,
		opts:     o,
		log:      log,
		shaders:  make(map[shader.ShaderID]*shaderObject),
		programs: make(map[shader.ProgramID]*programObject),
	}, nil
}

// NewFromProvider creates a context on the HAL device of provider. The
// provider must expose HalDevice() returning a hal.Device, as gogpu
// applications do. When the provider reports a surface format it becomes
// the default color format; options still override it.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHALDevice
	}
	if format := provider.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithColorFormat(format)}, opts...)
	}
	return New(device, opts...)
}

func (c *Context) newID() uint32 {
	c.nextID++
	return c.nextID
}

func (c *Context) label(kind string, id uint32) string {
	return fmt.Sprintf("%s-%s-%d", c.opts.label, kind, id)
}

// CreateShader implements shader.Context. The HAL module is created when
// the shader is compiled.
func (c *Context) CreateShader(stage shader.Stage) (shader.ShaderID, error) {
	if stage != shader.StageVertex && stage != shader.StageFragment {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedStage, stage)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return 0, ErrDestroyed
	}
	id := shader.ShaderID(c.newID())
	c.shaders[id] = &shaderObject{stage: stage}
	return id, nil
}

// CompileShader implements shader.Context. The WGSL source is compiled to
// SPIR-V and uploaded as a shader module, replacing any earlier module.
func (c *Context) CompileShader(id shader.ShaderID, source string) bool {
	c.mu.Lock()
	obj, ok := c.shaders[id]
	var old hal.ShaderModule
	if ok {
		old, obj.module, obj.reflect = obj.module, nil, nil
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	if old != nil {
		c.device.DestroyShaderModule(old)
	}

	module, log := c.createModule(obj.stage, uint32(id), source)

	c.mu.Lock()
	defer c.mu.Unlock()
	obj.log = log
	if module == nil {
		return false
	}
	if _, alive := c.shaders[id]; !alive {
		// Deleted while compiling.
		c.device.DestroyShaderModule(module)
		return false
	}
	obj.module = module
	obj.reflect = wgsl.Reflect(source)
	return true
}

func (c *Context) createModule(stage shader.Stage, id uint32, source string) (hal.ShaderModule, string) {
	spirv, err := wgsl.CompileWords(source)
	if err != nil {
		return nil, err.Error()
	}
	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: c.label(stage.String(), id),
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Sprintf("create shader module: %v", err)
	}
	c.log.Debug("native: shader module created", "stage", stage, "words", len(spirv))
	return module, ""
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

// DeleteShader implements shader.Context. Pipelines already linked from the
// shader stay valid.
func (c *Context) DeleteShader(id shader.ShaderID) {
	c.mu.Lock()
	obj, ok := c.shaders[id]
	if ok {
		delete(c.shaders, id)
	}
	c.mu.Unlock()

	if ok && obj.module != nil {
		c.device.DestroyShaderModule(obj.module)
	}
}

// CreateProgram implements shader.Context.
func (c *Context) CreateProgram() (shader.ProgramID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return 0, ErrDestroyed
	}
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

// LinkProgram implements shader.Context. It creates the pipeline layout and
// the render pipeline; on failure neither is kept and the program log holds
// the reason.
func (c *Context) LinkProgram(program shader.ProgramID) bool {
	c.mu.Lock()
	prog, ok := c.programs[program]
	if !ok {
		c.mu.Unlock()
		return false
	}
	var vs, fs shaderObject
	vsObj, fsObj, msg := c.resolveStages(prog.attached)
	if msg == "" {
		vs, fs = *vsObj, *fsObj
	}
	oldPipeline, oldLayout := prog.pipeline, prog.layout
	prog.pipeline, prog.layout = nil, nil
	prog.vertex, prog.fragment = nil, nil
	c.mu.Unlock()

	c.destroyPipeline(oldPipeline, oldLayout)

	if msg == "" {
		switch {
		case !vs.reflect.HasEntryPoint(wgsl.StageVertex, c.opts.vertexEntry):
			msg = fmt.Sprintf("vertex entry point %q not found", c.opts.vertexEntry)
		case !fs.reflect.HasEntryPoint(wgsl.StageFragment, c.opts.fragmentEntry):
			msg = fmt.Sprintf("fragment entry point %q not found", c.opts.fragmentEntry)
		}
	}

	var layout hal.PipelineLayout
	var pipeline hal.RenderPipeline
	if msg == "" {
		var err error
		layout, pipeline, err = c.createPipeline(uint32(program), vs.module, fs.module)
		if err != nil {
			msg = err.Error()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	prog.log = msg
	if msg != "" {
		return false
	}
	if _, alive := c.programs[program]; !alive {
		// Deleted while linking.
		c.destroyPipeline(pipeline, layout)
		return false
	}
	prog.layout, prog.pipeline = layout, pipeline
	prog.vertex, prog.fragment = vs.reflect, fs.reflect
	return true
}

// resolveStages picks the compiled vertex and fragment shaders from the
// attached list, or returns a link log explaining why it cannot.
// Must be called with mu held.
func (c *Context) resolveStages(attached []shader.ShaderID) (vs, fs *shaderObject, msg string) {
	var problems []string
	for _, id := range attached {
		obj, ok := c.shaders[id]
		if !ok {
			problems = append(problems, fmt.Sprintf("shader %d does not exist", id))
			continue
		}
		if obj.module == nil {
			problems = append(problems, fmt.Sprintf("%s shader %d is not compiled", obj.stage, id))
			continue
		}
		switch obj.stage {
		case shader.StageVertex:
			if vs != nil {
				problems = append(problems, "more than one vertex shader attached")
			}
			vs = obj
		case shader.StageFragment:
			if fs != nil {
				problems = append(problems, "more than one fragment shader attached")
			}
			fs = obj
		}
	}
	if vs == nil {
		problems = append(problems, "no compiled vertex shader attached")
	}
	if fs == nil {
		problems = append(problems, "no compiled fragment shader attached")
	}
	return vs, fs, strings.Join(problems, "\n")
}

func (c *Context) createPipeline(id uint32, vs, fs hal.ShaderModule) (hal.PipelineLayout, hal.RenderPipeline, error) {
	layout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            c.label("layout", id),
		BindGroupLayouts: c.opts.bindGroupLayouts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  c.label("pipeline", id),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     vs,
			EntryPoint: c.opts.vertexEntry,
			Buffers:    c.opts.vertexBuffers,
		},
		Fragment: &hal.FragmentState{
			Module:     fs,
			EntryPoint: c.opts.fragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    c.opts.colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: c.opts.depthStencil,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: c.opts.cullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: c.opts.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		c.device.DestroyPipelineLayout(layout)
		return nil, nil, fmt.Errorf("create render pipeline: %w", err)
	}
	return layout, pipeline, nil
}

// destroyPipeline releases a pipeline and then its layout. Nil values are
// skipped.
func (c *Context) destroyPipeline(pipeline hal.RenderPipeline, layout hal.PipelineLayout) {
	if pipeline != nil {
		c.device.DestroyRenderPipeline(pipeline)
	}
	if layout != nil {
		c.device.DestroyPipelineLayout(layout)
	}
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
	prog, ok := c.programs[program]
	if ok {
		delete(c.programs, program)
	}
	c.mu.Unlock()

	if ok {
		c.destroyPipeline(prog.pipeline, prog.layout)
	}
}

// AttribLocation implements shader.Context.
func (c *Context) AttribLocation(program shader.ProgramID, name string) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok || prog.pipeline == nil {
		return -1
	}
	return prog.vertex.AttribLocation(c.opts.vertexEntry, name)
}

// UniformLocation implements shader.Context.
func (c *Context) UniformLocation(program shader.ProgramID, name string) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok || prog.pipeline == nil {
		return -1
	}
	if loc := prog.vertex.UniformLocation(name); loc >= 0 {
		return loc
	}
	return prog.fragment.UniformLocation(name)
}

// Pipeline returns the render pipeline of a linked program.
func (c *Context) Pipeline(program shader.ProgramID) (hal.RenderPipeline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[program]
	if !ok || prog.pipeline == nil {
		return nil, false
	}
	return prog.pipeline, true
}

// Outstanding returns the number of shader and program objects that have
// not been deleted.
func (c *Context) Outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shaders) + len(c.programs)
}

// Destroy releases every object still alive and logs a warning for each.
// The context cannot create objects afterwards. Destroy is idempotent.
func (c *Context) Destroy() {
	c.mu.Lock()
	shaders, programs := c.shaders, c.programs
	c.shaders = make(map[shader.ShaderID]*shaderObject)
	c.programs = make(map[shader.ProgramID]*programObject)
	c.destroyed = true
	c.mu.Unlock()

	for id, prog := range programs {
		c.log.Warn("native: program leaked", "program", id)
		c.destroyPipeline(prog.pipeline, prog.layout)
	}
	for id, obj := range shaders {
		c.log.Warn("native: shader leaked", "shader", id, "stage", obj.stage)
		if obj.module != nil {
			c.device.DestroyShaderModule(obj.module)
		}
	}
}
