package shape

import "github.com/gogpu/gputypes"

// Shader locations of the interleaved vertex attributes.
const (
	LocationPosition = 0
	LocationNormal   = 1
	LocationTexCoord = 2
)

// VertexBufferLayout describes VertexData for a render pipeline: one
// per-vertex buffer with position, normal and texcoord at
// LocationPosition, LocationNormal and LocationTexCoord.
func VertexBufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: LocationTexCoord},
		},
	}
}
