package mesh

import "sketch/kit/gl3d"

// Paraboloid is z = x² + y².
func Paraboloid(x, y float64) gl3d.Vec3 { return gl3d.V3(x, y, x*x+y*y) }

// Saddle is z = x² - y².
func Saddle(x, y float64) gl3d.Vec3 { return gl3d.V3(x, y, x*x-y*y) }

// Morph interpolates linearly from the paraboloid (p=0) to the saddle (p=1).
func Morph(x, y, p float64) gl3d.Vec3 {
	a, b := Paraboloid(x, y), Saddle(x, y)
	return a.Add(b.Sub(a).Mul(p))
}

// Surface is a Rows×Cols grid over [-1,1]² whose heights follow Morph.
type Surface struct {
	Rows, Cols int

	mesh gl3d.Mesh
}

// NewSurface builds the grid topology; one triangle per cell is outlined, matching
// the line pattern p0-p1, p1-p2, p2-p0 of each cell.
func NewSurface(rows, cols int) *Surface {
	rows, cols = max(rows, 2), max(cols, 2)
	s := &Surface{Rows: rows, Cols: cols}

	verts := make([]gl3d.Vertex, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := -1 + 2*float64(i)/float64(rows-1)
			y := -1 + 2*float64(j)/float64(cols-1)
			verts[i*cols+j] = gl3d.Vertex{Pos: Paraboloid(x, y), Color: gl3d.RGB(0xFF, 0xFF, 0xFF)}
		}
	}
	indices := make([]uint32, 0, (rows-1)*(cols-1)*3)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			p0 := uint32(i*cols + j)
			p1 := uint32((i+1)*cols + j)
			p2 := uint32(i*cols + j + 1)
			indices = append(indices, p0, p1, p2)
		}
	}
	s.mesh = gl3d.Mesh{Vertices: verts, Indices: indices}
	return s
}

// Mesh returns the grid mesh. Its vertex slice is shared and rewritten by Update.
func (s *Surface) Mesh() gl3d.Mesh { return s.mesh }

// Update recomputes every vertex for progress p into verts, which must be the slice
// returned by Mesh (or a scene's copy of it).
func (s *Surface) Update(verts []gl3d.Vertex, p float64) {
	for i := range verts {
		v := verts[i].Pos
		verts[i].Pos = Morph(v.X, v.Y, p)
	}
}
