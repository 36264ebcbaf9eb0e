package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gogpu/esutil/shape"
)

// writeOBJ writes m as a single OBJ object. Faces reference position,
// texture coordinate and normal by the same 1-based index.
func writeOBJ(w io.Writer, name string, m shape.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# esmesh %s: %d vertices, %d triangles\n", name, m.NumVertices(), m.NumTriangles())
	fmt.Fprintf(bw, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, t := range m.TexCoords {
		fmt.Fprintf(bw, "vt %g %g\n", t[0], t[1])
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	for i := range m.NumTriangles() {
		tri := m.Triangle(i)
		a, b, c := int(tri[0])+1, int(tri[1])+1, int(tri[2])+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}
