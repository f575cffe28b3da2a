package gl3d

import "github.com/pkg/errors"

// Material is a minimal surface description for the flat and wireframe modes.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
}

// LightMode defines the built-in flat lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is the built-in flat light. Meshes with a VertexShader ignore it.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// VertexShader computes a lit vertex color from a world-space position and unit normal.
type VertexShader interface {
	ShadeVertex(pos, normal Vec3, base Color) Color
}

// Camera is the camera state: a look-at view plus a symmetric perspective frustum.
//
// Eye, Target and Up are fixed per demo; the aspect comes from the target at render
// time.
type Camera struct {
	Eye    Vec3
	Target Vec3
	Up     Vec3

	FOVYDeg Scalar
	Near    Scalar
	Far     Scalar
}

// DefaultCamera is the camera every demo starts from: three units back on +Z.
func DefaultCamera() Camera {
	return Camera{
		Eye:     V3(0, 0, 3),
		Target:  V3(0, 0, 0),
		Up:      V3(0, 1, 0),
		FOVYDeg: 45,
		Near:    0.1,
		Far:     100,
	}
}

// View returns the camera view matrix.
func (c Camera) View() (Mat4, error) {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Eye, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) (Mat4, error) {
	return Mat4Perspective(c.FOVYDeg, aspect, c.Near, c.Far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is an indexed triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint32 // triangle list

	Transform Mat4
	Material  Material

	// Shader, when set, lights each vertex and the triangle is color-interpolated.
	Shader VertexShader

	// Edges, when set, outlines every triangle in that color after filling.
	Edges *Color
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: DefaultCamera(),
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.25,
			Dir:       Normalize(V3(-1, -1, -1)),
			DirAmount: 0.75,
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Transform = m
}

// MeshVertices exposes a mesh's vertex slice for in-place updates.
func (s *Scene) MeshVertices(id int) ([]Vertex, error) {
	if !s.valid(id) {
		return nil, errors.Errorf("gl3d: no mesh %d", id)
	}
	return s.meshes[id].Vertices, nil
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh) error) error {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		if err := fn(&s.meshes[i]); err != nil {
			return err
		}
	}
	return nil
}
