// Package mesh builds the vertex/index buffers of the demos.
package mesh

import (
	"github.com/pkg/errors"

	"sketch/kit/gl3d"
)

// ErrNoAdjacentFace is returned when a vertex is not referenced by any triangle, so it
// has no normal.
var ErrNoAdjacentFace = errors.New("mesh: vertex has no adjacent face")

// FaceNormal is the unit normal of the triangle a, b, c (counter-clockwise front).
func FaceNormal(a, b, c gl3d.Vec3) gl3d.Vec3 {
	return gl3d.Normalize(gl3d.Cross(b.Sub(a), c.Sub(a)))
}

// VertexNormals averages the face normals adjacent to each vertex and re-normalizes.
func VertexNormals(pos []gl3d.Vec3, indices []uint32) ([]gl3d.Vec3, error) {
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("mesh: %d indices is not a triangle list", len(indices))
	}
	sum := make([]gl3d.Vec3, len(pos))
	count := make([]int, len(pos))
	for i := 0; i < len(indices); i += 3 {
		tri := indices[i : i+3]
		for _, idx := range tri {
			if int(idx) >= len(pos) {
				return nil, errors.Errorf("mesh: index %d out of range (%d vertices)", idx, len(pos))
			}
		}
		n := FaceNormal(pos[tri[0]], pos[tri[1]], pos[tri[2]])
		for _, idx := range tri {
			sum[idx] = sum[idx].Add(n)
			count[idx]++
		}
	}
	out := make([]gl3d.Vec3, len(pos))
	for i := range sum {
		if count[i] == 0 {
			return nil, errors.Wrapf(ErrNoAdjacentFace, "vertex %d", i)
		}
		out[i] = gl3d.Normalize(sum[i].Mul(1 / float64(count[i])))
	}
	return out, nil
}

// TetraFaces is the fixed winding of the tetrahedron faces.
var TetraFaces = []uint32{
	0, 1, 2, // front
	0, 3, 1, // bottom
	0, 2, 3, // left
	1, 3, 2, // back
}

// TetraColors assigns one color per vertex: red, green, blue, yellow.
var TetraColors = []gl3d.Color{
	gl3d.RGB(0xFF, 0, 0),
	gl3d.RGB(0, 0xFF, 0),
	gl3d.RGB(0, 0, 0xFF),
	gl3d.RGB(0xFF, 0xFF, 0),
}

// Tetrahedron builds a regular tetrahedron inscribed in the cube [-size, size]³ with
// smooth per-vertex normals.
func Tetrahedron(size float64) (gl3d.Mesh, error) {
	s := size
	pos := []gl3d.Vec3{
		gl3d.V3(s, s, s),
		gl3d.V3(-s, -s, s),
		gl3d.V3(-s, s, -s),
		gl3d.V3(s, -s, -s),
	}
	normals, err := VertexNormals(pos, TetraFaces)
	if err != nil {
		return gl3d.Mesh{}, errors.Wrap(err, "tetrahedron")
	}
	verts := make([]gl3d.Vertex, len(pos))
	for i := range pos {
		verts[i] = gl3d.Vertex{Pos: pos[i], Normal: normals[i], Color: TetraColors[i]}
	}
	idx := make([]uint32, len(TetraFaces))
	copy(idx, TetraFaces)
	return gl3d.Mesh{Vertices: verts, Indices: idx}, nil
}
