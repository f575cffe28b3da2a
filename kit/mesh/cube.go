package mesh

import "sketch/kit/gl3d"

// Cube returns a unit cube centred at the origin with one normal per face (24 vertices,
// 36 indices).
func Cube() gl3d.Mesh {
	type face struct {
		n       gl3d.Vec3
		corners [4]gl3d.Vec3
	}
	const h = 0.5
	faces := []face{
		{gl3d.V3(0, 0, -1), [4]gl3d.Vec3{gl3d.V3(-h, -h, -h), gl3d.V3(h, -h, -h), gl3d.V3(h, h, -h), gl3d.V3(-h, h, -h)}},
		{gl3d.V3(0, 0, 1), [4]gl3d.Vec3{gl3d.V3(-h, -h, h), gl3d.V3(h, -h, h), gl3d.V3(h, h, h), gl3d.V3(-h, h, h)}},
		{gl3d.V3(-1, 0, 0), [4]gl3d.Vec3{gl3d.V3(-h, h, h), gl3d.V3(-h, h, -h), gl3d.V3(-h, -h, -h), gl3d.V3(-h, -h, h)}},
		{gl3d.V3(1, 0, 0), [4]gl3d.Vec3{gl3d.V3(h, h, h), gl3d.V3(h, h, -h), gl3d.V3(h, -h, -h), gl3d.V3(h, -h, h)}},
		{gl3d.V3(0, -1, 0), [4]gl3d.Vec3{gl3d.V3(-h, -h, -h), gl3d.V3(h, -h, -h), gl3d.V3(h, -h, h), gl3d.V3(-h, -h, h)}},
		{gl3d.V3(0, 1, 0), [4]gl3d.Vec3{gl3d.V3(-h, h, -h), gl3d.V3(h, h, -h), gl3d.V3(h, h, h), gl3d.V3(-h, h, h)}},
	}

	verts := make([]gl3d.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(verts))
		for _, p := range f.corners {
			verts = append(verts, gl3d.Vertex{Pos: p, Normal: f.n, Color: gl3d.RGB(0xFF, 0xFF, 0xFF)})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return gl3d.Mesh{Vertices: verts, Indices: indices}
}
