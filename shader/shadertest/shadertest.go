// Package shadertest provides an in-memory shader.Context for tests.
//
// Context understands just enough GLSL ES to behave like a driver: it
// collects attribute, uniform and varying declarations, fails compilation
// on an #error directive and fails linking when the stages disagree. Every
// call is recorded and live objects are counted, so tests can assert that
// nothing leaks.
package shadertest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/esutil/shader"
)

// Errors returned by the injected allocation failures.
var (
	ErrShaderAllocation  = errors.New("shadertest: shader allocation failed")
	ErrProgramAllocation = errors.New("shadertest: program allocation failed")
)

// Op names a recorded Context call.
type Op string

// Recorded operations.
const (
	OpCreateShader  Op = "CreateShader"
	OpCompileShader Op = "CompileShader"
	OpDeleteShader  Op = "DeleteShader"
	OpCreateProgram Op = "CreateProgram"
	OpAttachShader  Op = "AttachShader"
	OpLinkProgram   Op = "LinkProgram"
	OpDeleteProgram Op = "DeleteProgram"
)

// Call is one recorded Context call. ID is the shader or program the call
// acted on (0 for failed allocations).
type Call struct {
	Op    Op
	ID    uint32
	Stage shader.Stage
}

// Context is a recording shader.Context. The zero value is ready to use.
//
// The Fail* fields inject failures; they are read at call time, so tests
// may flip them between builds.
type Context struct {
	// FailCreateShader makes CreateShader return ErrShaderAllocation.
	FailCreateShader bool

	// FailCreateProgram makes CreateProgram return ErrProgramAllocation.
	FailCreateProgram bool

	// FailCompile forces compilation of the given stage to fail with the
	// mapped info log.
	FailCompile map[shader.Stage]string

	// FailLink forces every link to fail with this info log when non-empty.
	FailLink string

	// Calls lists every create, compile, attach, link and delete call in
	// order.
	Calls []Call

	nextID   uint32
	shaders  map[shader.ShaderID]*shaderObject
	programs map[shader.ProgramID]*programObject
}

type shaderObject struct {
	stage    shader.Stage
	compiled bool
	log      string
	decls    declarations
}

type programObject struct {
	attached map[shader.Stage]*shaderObject
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
}

// New returns an empty Context.
func New() *Context {
	c := &Context{}
	c.lazyInit()
	return c
}

func (c *Context) lazyInit() {
	if c.shaders == nil {
		c.shaders = make(map[shader.ShaderID]*shaderObject)
		c.programs = make(map[shader.ProgramID]*programObject)
	}
}

func (c *Context) newID() uint32 {
	c.nextID++
	return c.nextID
}

func (c *Context) record(op Op, id uint32, stage shader.Stage) {
	c.Calls = append(c.Calls, Call{Op: op, ID: id, Stage: stage})
}

// CreateShader implements shader.Context.
func (c *Context) CreateShader(stage shader.Stage) (shader.ShaderID, error) {
	c.lazyInit()
	if c.FailCreateShader {
		c.record(OpCreateShader, 0, stage)
		return 0, ErrShaderAllocation
	}
	id := shader.ShaderID(c.newID())
	c.shaders[id] = &shaderObject{stage: stage}
	c.record(OpCreateShader, uint32(id), stage)
	return id, nil
}

// CompileShader implements shader.Context.
func (c *Context) CompileShader(id shader.ShaderID, source string) bool {
	c.lazyInit()
	s, ok := c.shaders[id]
	if !ok {
		return false
	}
	c.record(OpCompileShader, uint32(id), s.stage)

	if log, forced := c.FailCompile[s.stage]; forced {
		s.compiled, s.log = false, log
		return false
	}
	if strings.TrimSpace(source) == "" {
		s.compiled, s.log = false, "ERROR: 0:1: empty shader source"
		return false
	}
	if msg, line, found := findErrorDirective(source); found {
		s.compiled, s.log = false, fmt.Sprintf("ERROR: 0:%d: '#error' : %s", line, msg)
		return false
	}

	s.decls = parseDeclarations(s.stage, source)
	s.compiled, s.log = true, ""
	return true
}

// ShaderInfoLog implements shader.Context.
func (c *Context) ShaderInfoLog(id shader.ShaderID) string {
	if s, ok := c.shaders[id]; ok {
		return s.log
	}
	return ""
}

// DeleteShader implements shader.Context.
func (c *Context) DeleteShader(id shader.ShaderID) {
	s, ok := c.shaders[id]
	if !ok {
		return
	}
	delete(c.shaders, id)
	c.record(OpDeleteShader, uint32(id), s.stage)
}

// CreateProgram implements shader.Context.
func (c *Context) CreateProgram() (shader.ProgramID, error) {
	c.lazyInit()
	if c.FailCreateProgram {
		c.record(OpCreateProgram, 0, shader.StageNone)
		return 0, ErrProgramAllocation
	}
	id := shader.ProgramID(c.newID())
	c.programs[id] = &programObject{attached: make(map[shader.Stage]*shaderObject)}
	c.record(OpCreateProgram, uint32(id), shader.StageNone)
	return id, nil
}

// AttachShader implements shader.Context.
func (c *Context) AttachShader(program shader.ProgramID, id shader.ShaderID) {
	p, ok := c.programs[program]
	if !ok {
		return
	}
	s, ok := c.shaders[id]
	if !ok {
		return
	}
	p.attached[s.stage] = s
	c.record(OpAttachShader, uint32(program), s.stage)
}

// LinkProgram implements shader.Context.
func (c *Context) LinkProgram(id shader.ProgramID) bool {
	p, ok := c.programs[id]
	if !ok {
		return false
	}
	c.record(OpLinkProgram, uint32(id), shader.StageNone)

	p.linked, p.log = false, ""
	if c.FailLink != "" {
		p.log = c.FailLink
		return false
	}
	if log := link(p); log != "" {
		p.log = log
		return false
	}
	p.linked = true
	return true
}

// ProgramInfoLog implements shader.Context.
func (c *Context) ProgramInfoLog(id shader.ProgramID) string {
	if p, ok := c.programs[id]; ok {
		return p.log
	}
	return ""
}

// DeleteProgram implements shader.Context.
func (c *Context) DeleteProgram(id shader.ProgramID) {
	if _, ok := c.programs[id]; !ok {
		return
	}
	delete(c.programs, id)
	c.record(OpDeleteProgram, uint32(id), shader.StageNone)
}

// AttribLocation implements shader.Context.
func (c *Context) AttribLocation(id shader.ProgramID, name string) int32 {
	p, ok := c.programs[id]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

// UniformLocation implements shader.Context.
func (c *Context) UniformLocation(id shader.ProgramID, name string) int32 {
	p, ok := c.programs[id]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Outstanding returns the number of live shader and program objects.
func (c *Context) Outstanding() int {
	return len(c.shaders) + len(c.programs)
}

// OutstandingShaders returns the number of live shader objects.
func (c *Context) OutstandingShaders() int {
	return len(c.shaders)
}

// OutstandingPrograms returns the number of live program objects.
func (c *Context) OutstandingPrograms() int {
	return len(c.programs)
}

// Count returns how many times op was recorded.
func (c *Context) Count(op Op) int {
	n := 0
	for _, call := range c.Calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// link resolves the attached stages and returns a non-empty info log on
// failure.
func link(p *programObject) string {
	vert, frag := p.attached[shader.StageVertex], p.attached[shader.StageFragment]
	switch {
	case vert == nil || !vert.compiled:
		return "error: no compiled vertex shader attached"
	case frag == nil || !frag.compiled:
		return "error: no compiled fragment shader attached"
	case !vert.decls.hasMain:
		return "error: vertex shader lacks `main'"
	case !frag.decls.hasMain:
		return "error: fragment shader lacks `main'"
	}

	outputs := make(map[string]string, len(vert.decls.outputs))
	for _, v := range vert.decls.outputs {
		outputs[v.name] = v.typ
	}
	var errs []string
	for _, in := range frag.decls.inputs {
		typ, ok := outputs[in.name]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("error: varying %q is read by the fragment shader but not written by the vertex shader", in.name))
		case typ != in.typ:
			errs = append(errs, fmt.Sprintf("error: varying %q has type %s in the vertex shader and %s in the fragment shader", in.name, typ, in.typ))
		}
	}
	if len(errs) > 0 {
		return strings.Join(errs, "\n")
	}

	p.attribs = make(map[string]int32, len(vert.decls.inputs))
	used := make(map[int32]bool)
	for _, a := range vert.decls.inputs {
		if a.location >= 0 {
			p.attribs[a.name] = a.location
			used[a.location] = true
		}
	}
	next := int32(0)
	for _, a := range vert.decls.inputs {
		if a.location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		p.attribs[a.name] = next
		used[next] = true
	}

	p.uniforms = make(map[string]int32)
	for _, s := range []*shaderObject{vert, frag} {
		for _, u := range s.decls.uniforms {
			if _, ok := p.uniforms[u.name]; !ok {
				p.uniforms[u.name] = int32(len(p.uniforms))
			}
		}
	}
	return ""
}

// declaration is one global variable declaration.
type declaration struct {
	name     string
	typ      string
	location int32
}

// declarations holds the interface of one shader stage.
type declarations struct {
	inputs   []declaration
	outputs  []declaration
	uniforms []declaration
	hasMain  bool
}

var (
	declRe = regexp.MustCompile(`^(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?` +
		`(attribute|varying|uniform|in|out)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)`)
	mainRe = regexp.MustCompile(`\bvoid\s+main\s*\(`)
)

func parseDeclarations(stage shader.Stage, source string) declarations {
	var d declarations
	for _, line := range strings.Split(source, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if mainRe.MatchString(line) {
			d.hasMain = true
		}
		m := declRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		decl := declaration{typ: m[3], name: m[4], location: -1}
		if m[1] != "" {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				decl.location = int32(loc)
			}
		}
		switch m[2] {
		case "attribute", "in":
			d.inputs = append(d.inputs, decl)
		case "out":
			d.outputs = append(d.outputs, decl)
		case "varying":
			// varying is a vertex output and a fragment input.
			if stage == shader.StageVertex {
				d.outputs = append(d.outputs, decl)
			} else {
				d.inputs = append(d.inputs, decl)
			}
		case "uniform":
			d.uniforms = append(d.uniforms, decl)
		}
	}
	return d
}

func findErrorDirective(source string) (msg string, line int, found bool) {
	for i, l := range strings.Split(source, "\n") {
		l = strings.TrimSpace(l)
		if rest, ok := strings.CutPrefix(l, "#error"); ok {
			return strings.TrimSpace(rest), i + 1, true
		}
	}
	return "", 0, false
}
