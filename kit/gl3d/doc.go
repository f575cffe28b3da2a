// Package gl3d provides the transform math and a small software render pass shared by
// the sketch demos.
//
// Matrices are row-major (m[row*4+col]) and act on column vectors, so a point is
// transformed as M·[x y z 1]ᵀ and transforms compose right to left:
//
//	clip = Projection · View · Model · p
//
// Angles passed to the rotation builders are in degrees.
//
// The renderer draws into a caller-provided Target. It performs the fixed pipeline
//
//	Scene → Transform → Projection → Near rejection → Rasterization
//
// with an optional per-vertex lighting hook (VertexShader) standing in for the vertex
// program of a GPU pipeline.
package gl3d
