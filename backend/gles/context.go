//go:build cgo && !nogl

package gles

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/esutil"
	"github.com/gogpu/esutil/shader"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

// Init loads the OpenGL ES 2.0 entry points. A context must be current on
// the calling thread.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrInit, err)
	}
	return nil
}

// Context is a shader.Context on the current OpenGL ES context.
//
// All methods must be called on the OS thread that owns the GL context.
// Use runtime.LockOSThread.
type Context struct {
	log *slog.Logger
}

var _ shader.Context = (*Context)(nil)

// New returns a context bound to whatever GL context is current when its
// methods are called. A nil logger selects esutil.Logger.
func New(logger *slog.Logger) *Context {
	if logger == nil {
		logger = esutil.Logger()
	}
	return &Context{log: logger}
}

// CreateShader implements shader.Context.
func (c *Context) CreateShader(stage shader.Stage) (shader.ShaderID, error) {
	var kind uint32
	switch stage {
	case shader.StageVertex:
		kind = gl.VERTEX_SHADER
	case shader.StageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedStage, stage)
	}
	id := gl.CreateShader(kind)
	if id == 0 {
		return 0, ErrCreateFailed
	}
	return shader.ShaderID(id), nil
}

// CompileShader implements shader.Context.
func (c *Context) CompileShader(id shader.ShaderID, source string) bool {
	csources, free := gl.Strs(cString(source))
	gl.ShaderSource(uint32(id), 1, csources, nil)
	free()
	gl.CompileShader(uint32(id))

	var status int32
	gl.GetShaderiv(uint32(id), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog implements shader.Context.
func (c *Context) ShaderInfoLog(id shader.ShaderID) string {
	var n int32
	gl.GetShaderiv(uint32(id), gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetShaderInfoLog(uint32(id), n, nil, &buf[0])
	return trimInfoLog(buf)
}

// DeleteShader implements shader.Context.
func (c *Context) DeleteShader(id shader.ShaderID) {
	gl.DeleteShader(uint32(id))
}

// CreateProgram implements shader.Context.
func (c *Context) CreateProgram() (shader.ProgramID, error) {
	id := gl.CreateProgram()
	if id == 0 {
		return 0, ErrCreateFailed
	}
	return shader.ProgramID(id), nil
}

// AttachShader implements shader.Context.
func (c *Context) AttachShader(program shader.ProgramID, id shader.ShaderID) {
	gl.AttachShader(uint32(program), uint32(id))
}

// LinkProgram implements shader.Context.
func (c *Context) LinkProgram(program shader.ProgramID) bool {
	gl.LinkProgram(uint32(program))

	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		return false
	}
	var attribs, uniforms int32
	gl.GetProgramiv(uint32(program), gl.ACTIVE_ATTRIBUTES, &attribs)
	gl.GetProgramiv(uint32(program), gl.ACTIVE_UNIFORMS, &uniforms)
	c.log.Debug("gles: program linked", "program", program, "attributes", attribs, "uniforms", uniforms)
	return true
}

// ProgramInfoLog implements shader.Context.
func (c *Context) ProgramInfoLog(program shader.ProgramID) string {
	var n int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetProgramInfoLog(uint32(program), n, nil, &buf[0])
	return trimInfoLog(buf)
}

// DeleteProgram implements shader.Context.
func (c *Context) DeleteProgram(program shader.ProgramID) {
	gl.DeleteProgram(uint32(program))
}

// AttribLocation implements shader.Context.
func (c *Context) AttribLocation(program shader.ProgramID, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(cString(name)))
}

// UniformLocation implements shader.Context.
func (c *Context) UniformLocation(program shader.ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(cString(name)))
}
