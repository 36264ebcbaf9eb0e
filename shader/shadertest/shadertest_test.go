package shadertest

import (
	"strings"
	"testing"

	"github.com/gogpu/esutil/shader"
)

var _ shader.Context = (*Context)(nil)

func TestParseDeclarations(t *testing.T) {
	src := `#version 300 es
layout(location = 2) in vec4 a_position;
in vec2 a_texCoord; // trailing comment
uniform highp mat4 u_mvp;
out vec2 v_texCoord;
// uniform float u_commented;
void main() { v_texCoord = a_texCoord; }`

	d := parseDeclarations(shader.StageVertex, src)
	if !d.hasMain {
		t.Error("hasMain = false, want true")
	}
	if len(d.inputs) != 2 {
		t.Fatalf("inputs = %v, want 2 entries", d.inputs)
	}
	if d.inputs[0].name != "a_position" || d.inputs[0].location != 2 {
		t.Errorf("inputs[0] = %+v, want a_position at 2", d.inputs[0])
	}
	if d.inputs[1].name != "a_texCoord" || d.inputs[1].location != -1 {
		t.Errorf("inputs[1] = %+v, want a_texCoord without location", d.inputs[1])
	}
	if len(d.uniforms) != 1 || d.uniforms[0].name != "u_mvp" || d.uniforms[0].typ != "mat4" {
		t.Errorf("uniforms = %+v, want [u_mvp mat4]", d.uniforms)
	}
	if len(d.outputs) != 1 || d.outputs[0].name != "v_texCoord" {
		t.Errorf("outputs = %+v, want [v_texCoord]", d.outputs)
	}
}

func TestExplicitLocationsAreRespected(t *testing.T) {
	c := New()
	vs := `layout(location = 0) in vec4 a_position;
in vec3 a_normal;
layout(location = 1) in vec2 a_texCoord;
void main() {}`
	fs := `void main() {}`

	vid, _ := c.CreateShader(shader.StageVertex)
	fid, _ := c.CreateShader(shader.StageFragment)
	if !c.CompileShader(vid, vs) || !c.CompileShader(fid, fs) {
		t.Fatal("compile failed")
	}
	pid, _ := c.CreateProgram()
	c.AttachShader(pid, vid)
	c.AttachShader(pid, fid)
	if !c.LinkProgram(pid) {
		t.Fatalf("link failed: %s", c.ProgramInfoLog(pid))
	}

	want := map[string]int32{"a_position": 0, "a_texCoord": 1, "a_normal": 2}
	for name, loc := range want {
		if got := c.AttribLocation(pid, name); got != loc {
			t.Errorf("AttribLocation(%q) = %d, want %d", name, got, loc)
		}
	}
}

func TestLinkRequiresBothStages(t *testing.T) {
	c := New()
	vid, _ := c.CreateShader(shader.StageVertex)
	c.CompileShader(vid, "void main() {}")
	pid, _ := c.CreateProgram()
	c.AttachShader(pid, vid)

	if c.LinkProgram(pid) {
		t.Fatal("link succeeded without a fragment shader")
	}
	if log := c.ProgramInfoLog(pid); !strings.Contains(log, "fragment") {
		t.Errorf("ProgramInfoLog = %q, want mention of fragment", log)
	}
	if got := c.AttribLocation(pid, "anything"); got != -1 {
		t.Errorf("AttribLocation on unlinked program = %d, want -1", got)
	}
}

func TestLinkDetectsTypeMismatch(t *testing.T) {
	c := New()
	vid, _ := c.CreateShader(shader.StageVertex)
	fid, _ := c.CreateShader(shader.StageFragment)
	c.CompileShader(vid, "varying vec2 v_uv;\nvoid main() {}")
	c.CompileShader(fid, "varying vec3 v_uv;\nvoid main() {}")
	pid, _ := c.CreateProgram()
	c.AttachShader(pid, vid)
	c.AttachShader(pid, fid)

	if c.LinkProgram(pid) {
		t.Fatal("link succeeded with mismatched varying types")
	}
	if log := c.ProgramInfoLog(pid); !strings.Contains(log, "vec2") || !strings.Contains(log, "vec3") {
		t.Errorf("ProgramInfoLog = %q, want both types", log)
	}
}

func TestZeroValueContext(t *testing.T) {
	var c Context
	id, err := c.CreateShader(shader.StageVertex)
	if err != nil || id == 0 {
		t.Fatalf("CreateShader on zero Context = (%d, %v)", id, err)
	}
	if c.Outstanding() != 1 {
		t.Errorf("Outstanding() = %d, want 1", c.Outstanding())
	}
	c.DeleteShader(id)
	c.DeleteShader(id)
	if got := c.Count(OpDeleteShader); got != 1 {
		t.Errorf("DeleteShader recorded %d times, want 1 (second delete is a no-op)", got)
	}
}
