// Package shape generates indexed triangle meshes for the demos: a
// parametric sphere and a unit cube.
//
// Meshes are plain values. Positions, normals and texture coordinates are
// parallel slices addressed by the same vertex index; Indices lists
// triangles as consecutive triples. The buffers can be uploaded as they are
// (mgl32 vectors are tightly packed float32 arrays), or interleaved with
// VertexData for a single vertex buffer described by VertexBufferLayout.
//
// Indices are 16-bit. Generators reject parameters that would produce more
// vertices than a uint16 can address instead of wrapping.
package shape
