package shader

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	// StageNone is used for errors that belong to the program as a whole
	// (link failures, program allocation).
	StageNone Stage = iota

	// StageVertex is the vertex shader stage.
	StageVertex

	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// ShaderID is an opaque handle to a shader object owned by a Context.
// The zero value is never a valid object.
type ShaderID uint32

// ProgramID is an opaque handle to a program object owned by a Context.
// The zero value is never a valid object.
type ProgramID uint32

// Context is the GPU-context capability the builder runs against.
//
// Its methods map one-to-one onto the classic shader object API:
// create, compile, query log, delete for shaders, and create, attach, link,
// query log, delete for programs. Implementations return 0 handles only
// together with a non-nil error.
//
// A Context is not safe for concurrent use unless the implementation says
// otherwise.
type Context interface {
	// CreateShader allocates an empty shader object for the stage.
	CreateShader(stage Stage) (ShaderID, error)

	// CompileShader loads source into the shader object and compiles it.
	// It reports whether compilation succeeded; diagnostics are available
	// from ShaderInfoLog either way.
	CompileShader(id ShaderID, source string) bool

	// ShaderInfoLog returns the compiler diagnostics for the shader object.
	ShaderInfoLog(id ShaderID) string

	// DeleteShader releases the shader object. Deleting an unknown or
	// already deleted handle is a no-op.
	DeleteShader(id ShaderID)

	// CreateProgram allocates an empty program object.
	CreateProgram() (ProgramID, error)

	// AttachShader attaches a compiled shader object to the program.
	AttachShader(program ProgramID, shader ShaderID)

	// LinkProgram links the attached shaders into an executable program and
	// reports whether linking succeeded.
	LinkProgram(id ProgramID) bool

	// ProgramInfoLog returns the linker diagnostics for the program object.
	ProgramInfoLog(id ProgramID) string

	// DeleteProgram releases the program object. Deleting an unknown or
	// already deleted handle is a no-op.
	DeleteProgram(id ProgramID)

	// AttribLocation returns the binding index of a vertex attribute of a
	// linked program, or -1 if the program has no such attribute.
	AttribLocation(id ProgramID, name string) int32

	// UniformLocation returns the location of a uniform of a linked
	// program, or -1 if the program has no such uniform.
	UniformLocation(id ProgramID, name string) int32
}

// Source is one stage's shader source text.
type Source struct {
	Stage Stage
	Text  string
}
