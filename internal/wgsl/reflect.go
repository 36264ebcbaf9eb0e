// Package wgsl extracts the binding information the shader backends need from
// WGSL source text and compiles WGSL to SPIR-V through naga.
//
// Reflection works on the source text, not on the compiled module. It
// recognizes entry points, the @location inputs of a vertex entry point
// (directly or through struct-typed parameters) and var<uniform> globals.
package wgsl

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Entry point stages as written in WGSL attributes.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

var (
	entryRe    = regexp.MustCompile(`@(vertex|fragment|compute)\s+fn\s+(\w+)\s*\(`)
	structRe   = regexp.MustCompile(`\bstruct\s+(\w+)\s*\{`)
	uniformRe  = regexp.MustCompile(`((?:@\w+\s*(?:\([^)]*\))?\s*)+)var\s*<\s*uniform\s*>\s*(\w+)`)
	locationRe = regexp.MustCompile(`@location\s*\(\s*(\d+)\s*\)`)
	groupRe    = regexp.MustCompile(`@group\s*\(\s*(\d+)\s*\)`)
	bindingRe  = regexp.MustCompile(`@binding\s*\(\s*(\d+)\s*\)`)
	memberRe   = regexp.MustCompile(`(\w+)\s*:\s*([\w<>, ]+)$`)
)

// Module is the reflected interface of a WGSL source.
type Module struct {
	entries  map[string]string // entry point name -> stage
	inputs   map[string]map[string]int32
	uniforms map[string]int32
}

// Reflect parses src. It never fails: constructs it does not recognize are
// skipped, so a module that naga rejects may still reflect partially.
func Reflect(src string) *Module {
	src = StripComments(src)
	m := &Module{
		entries:  make(map[string]string),
		inputs:   make(map[string]map[string]int32),
		uniforms: make(map[string]int32),
	}

	structs := parseStructs(src)

	for _, loc := range entryRe.FindAllStringSubmatchIndex(src, -1) {
		stage := src[loc[2]:loc[3]]
		name := src[loc[4]:loc[5]]
		m.entries[name] = stage
		if stage != StageVertex {
			continue
		}
		params, ok := enclosed(src, loc[1]-1, '(', ')')
		if !ok {
			continue
		}
		inputs := make(map[string]int32)
		for _, p := range splitTopLevel(params) {
			collectLocations(p, structs, inputs)
		}
		m.inputs[name] = inputs
	}

	for _, match := range uniformRe.FindAllStringSubmatch(src, -1) {
		attrs, name := match[1], match[2]
		var group, binding int64
		if g := groupRe.FindStringSubmatch(attrs); g != nil {
			group, _ = strconv.ParseInt(g[1], 10, 32)
		}
		b := bindingRe.FindStringSubmatch(attrs)
		if b == nil {
			continue
		}
		binding, _ = strconv.ParseInt(b[1], 10, 32)
		m.uniforms[name] = int32(group<<16 | binding)
	}

	return m
}

// HasEntryPoint reports whether the module declares fn name with the given
// stage attribute.
func (m *Module) HasEntryPoint(stage, name string) bool {
	return m.entries[name] == stage
}

// EntryPoints returns the names of all entry points declared for stage.
func (m *Module) EntryPoints(stage string) []string {
	var names []string
	for name, s := range m.entries {
		if s == stage {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// AttribLocation returns the @location of the named input of the vertex
// entry point, or -1.
func (m *Module) AttribLocation(entry, name string) int32 {
	if loc, ok := m.inputs[entry][name]; ok {
		return loc
	}
	return -1
}

// UniformLocation returns group<<16 | binding for the named var<uniform>,
// or -1.
func (m *Module) UniformLocation(name string) int32 {
	if loc, ok := m.uniforms[name]; ok {
		return loc
	}
	return -1
}

// StripComments removes line and block comments from src. Block comments
// nest, as in WGSL.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	depth := 0
	for i := 0; i < len(src); i++ {
		switch {
		case depth == 0 && strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
		case strings.HasPrefix(src[i:], "/*"):
			depth++
			i++
		case depth > 0 && strings.HasPrefix(src[i:], "*/"):
			depth--
			i++
			if depth == 0 {
				b.WriteByte(' ')
			}
		case depth > 0:
			if src[i] == '\n' {
				b.WriteByte('\n')
			}
		default:
			b.WriteByte(src[i])
		}
	}
	return b.String()
}

// enclosed returns the text between the bracket at src[open] and its match.
func enclosed(src string, open int, left, right byte) (string, bool) {
	if open < 0 || open >= len(src) || src[open] != left {
		return "", false
	}
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return src[open+1 : i], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits a parameter or member list on commas that are not
// nested inside parentheses or template brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := s[start:]; strings.TrimSpace(rest) != "" {
		parts = append(parts, rest)
	}
	return parts
}

func parseStructs(src string) map[string][]string {
	structs := make(map[string][]string)
	for _, loc := range structRe.FindAllStringSubmatchIndex(src, -1) {
		body, ok := enclosed(src, loc[1]-1, '{', '}')
		if !ok {
			continue
		}
		structs[src[loc[2]:loc[3]]] = splitTopLevel(body)
	}
	return structs
}

// collectLocations records the @location of decl, or of the members of its
// struct type, into out.
func collectLocations(decl string, structs map[string][]string, out map[string]int32) {
	decl = strings.TrimSpace(decl)
	attrs, rest := splitAttributes(decl)
	member := memberRe.FindStringSubmatch(rest)
	if member == nil {
		return
	}
	name, typ := member[1], strings.TrimSpace(member[2])

	if loc := locationRe.FindStringSubmatch(attrs); loc != nil {
		n, err := strconv.ParseInt(loc[1], 10, 32)
		if err == nil {
			out[name] = int32(n)
		}
		return
	}
	for _, field := range structs[typ] {
		collectLocations(field, nil, out)
	}
}

// splitAttributes separates the leading @attributes of a declaration from
// the rest of it.
func splitAttributes(decl string) (attrs, rest string) {
	i := 0
	for i < len(decl) && decl[i] == '@' {
		j := i + 1
		for j < len(decl) && isIdent(decl[j]) {
			j++
		}
		for j < len(decl) && decl[j] == ' ' {
			j++
		}
		if j < len(decl) && decl[j] == '(' {
			inner, ok := enclosed(decl, j, '(', ')')
			if !ok {
				break
			}
			j += len(inner) + 2
		}
		for j < len(decl) && isSpace(decl[j]) {
			j++
		}
		i = j
	}
	return decl[:i], decl[i:]
}

func isIdent(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
