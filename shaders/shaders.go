// Package shaders bundles ready-made shader pairs for the meshes produced by
// package shape.
//
// WGSL sources carry both entry points (vs_main and fs_main) in one module
// and are meant for the offline and native backends. GLSL ES 2.0 pairs are
// meant for the gles backend.
package shaders

import (
	_ "embed"

	"github.com/gogpu/esutil/shader"
)

// SphereWGSL shades a sphere by its normal. It reads position, normal and
// tex_coord at locations 0, 1 and 2 and a uniform mvp matrix at group 0,
// binding 0.
//
//go:embed sphere.wgsl
var SphereWGSL string

// SphereVertexGLSL and SphereFragmentGLSL sample a cube map along the sphere
// normal. Attributes are a_position and a_normal; uniforms are u_mvpMatrix
// and s_texture.
var (
	//go:embed sphere.vert
	SphereVertexGLSL string

	//go:embed sphere.frag
	SphereFragmentGLSL string
)

// SphereWGSLSources returns SphereWGSL as a vertex and fragment source pair.
func SphereWGSLSources() (vs, fs shader.Source) {
	return shader.Source{Stage: shader.StageVertex, Text: SphereWGSL},
		shader.Source{Stage: shader.StageFragment, Text: SphereWGSL}
}

// SphereGLSLSources returns the GLSL ES sphere pair.
func SphereGLSLSources() (vs, fs shader.Source) {
	return shader.Source{Stage: shader.StageVertex, Text: SphereVertexGLSL},
		shader.Source{Stage: shader.StageFragment, Text: SphereFragmentGLSL}
}
