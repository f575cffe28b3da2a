package gl3d

import (
	"math"

	"github.com/pkg/errors"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
	lit      []Color
	screen   []screenVertex
}

type screenVertex struct {
	x, y   int
	fx, fy Scalar // unrounded, for clipping
	z      float32
	ok     bool
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Clear fills the target with the clear color and resets the depth buffer.
func (r *Renderer) Clear(t Target) {
	if r == nil || t == nil {
		return
	}
	w, h := t.Size()
	t.Clear(r.ClearColor)
	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}
}

// Render clears the target and renders a scene into it.
func (r *Renderer) Render(t Target, s *Scene) error {
	if r == nil || t == nil || s == nil {
		return nil
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	r.Clear(t)

	view, err := s.Camera.View()
	if err != nil {
		return errors.Wrap(err, "camera view")
	}
	proj, err := s.Camera.Projection(Aspect(w, h))
	if err != nil {
		return errors.Wrap(err, "camera projection")
	}
	pv := Mat4Mul(proj, view)

	return s.eachMesh(func(m *Mesh) error {
		if !m.Enabled {
			return nil
		}
		return r.renderMesh(t, w, h, pv, m, s.Light)
	})
}

func (r *Renderer) renderMesh(t Target, w, h int, pv Mat4, m *Mesh, light Light) error {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return nil
	}
	model := m.Transform
	if model == (Mat4{}) {
		model = Mat4Identity()
	}
	mvp := Mat4Mul(pv, model)

	if err := r.shadeVertices(m, model); err != nil {
		return err
	}

	if cap(r.screen) < len(m.Vertices) {
		r.screen = make([]screenVertex, len(m.Vertices))
	}
	r.screen = r.screen[:len(m.Vertices)]
	for i, v := range m.Vertices {
		r.screen[i] = project(mvp, v.Pos, w, h)
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		s0, s1, s2 := r.screen[i0], r.screen[i1], r.screen[i2]
		// Trivial clip: drop the triangle when any vertex is in front of the near plane.
		if !s0.ok || !s1.ok || !s2.ok {
			continue
		}

		base := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional && m.Shader == nil {
			n := triangleNormal(
				Mat4MulV4(model, m.Vertices[i0].Pos.Point()).XYZ(),
				Mat4MulV4(model, m.Vertices[i1].Pos.Point()).XYZ(),
				Mat4MulV4(model, m.Vertices[i2].Pos.Point()).XYZ(),
			)
			base = base.MulScalar(lightIntensity(light, n))
		}
		base.A = m.Material.Opacity

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, w, h, s0.fx, s0.fy, s1.fx, s1.fy, base)
			r.drawLine(t, w, h, s1.fx, s1.fy, s2.fx, s2.fy, base)
			r.drawLine(t, w, h, s2.fx, s2.fy, s0.fx, s0.fy, base)
		case RenderSolidVertexColor:
			c0, c1, c2 := r.vertexColor(m, i0), r.vertexColor(m, i1), r.vertexColor(m, i2)
			r.fillTriangle(t, w, h, s0, c0, s1, c1, s2, c2)
		default:
			r.fillTriangle(t, w, h, s0, base, s1, base, s2, base)
		}
	}

	if m.Edges != nil {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			i0, i1, i2 := int(m.Indices[i]), int(m.Indices[i+1]), int(m.Indices[i+2])
			if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
				continue
			}
			s0, s1, s2 := r.screen[i0], r.screen[i1], r.screen[i2]
			if !s0.ok || !s1.ok || !s2.ok {
				continue
			}
			r.drawEdge(t, w, h, s0, s1, *m.Edges)
			r.drawEdge(t, w, h, s1, s2, *m.Edges)
			r.drawEdge(t, w, h, s2, s0, *m.Edges)
		}
	}
	return nil
}

// shadeVertices runs the mesh's VertexShader in world space.
func (r *Renderer) shadeVertices(m *Mesh, model Mat4) error {
	r.lit = r.lit[:0]
	if m.Shader == nil {
		return nil
	}
	nm, err := NormalMatrix(model)
	if err != nil {
		return errors.Wrap(err, "shading")
	}
	for _, v := range m.Vertices {
		pos := Mat4MulV4(model, v.Pos.Point()).XYZ()
		n := Normalize(Mat3MulV3(nm, v.Normal))
		r.lit = append(r.lit, m.Shader.ShadeVertex(pos, n, v.Color))
	}
	return nil
}

func (r *Renderer) vertexColor(m *Mesh, i int) Color {
	if i < len(r.lit) {
		return r.lit[i]
	}
	return m.Vertices[i].Color
}

// Polyline draws a connected line strip whose points are given in normalized device
// coordinates (x and y in -1..1, z ignored).
func (r *Renderer) Polyline(t Target, pts []Vec3, c Color) {
	if r == nil || t == nil || len(pts) < 2 {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := ndcToScreen(pts[0].X, pts[0].Y, w, h)
	for _, p := range pts[1:] {
		x1, y1 := ndcToScreen(p.X, p.Y, w, h)
		r.drawLine(t, w, h, x0, y0, x1, y1, c)
		x0, y0 = x1, y1
	}
}

// project maps p to the screen. Points in front of the near plane (clip z < -w) are
// rejected, so every accepted vertex has w >= near and finite screen coordinates.
func project(mvp Mat4, p Vec3, w, h int) screenVertex {
	c := Mat4MulV4(mvp, p.Point())
	if !(c.W > 0) || c.Z < -c.W {
		return screenVertex{}
	}
	inv := 1 / c.W
	fx, fy := ndcToScreen(c.X*inv, c.Y*inv, w, h)
	sv := screenVertex{fx: fx, fy: fy, z: float32(c.Z * inv), ok: true}
	sv.x, sv.y = roundInt(fx), roundInt(fy)
	return sv
}

// maxCoord keeps far off-screen vertices inside int range; the triangle filler only
// walks the on-screen part of the bounding box.
const maxCoord = 1 << 24

func ndcToScreen(nx, ny Scalar, w, h int) (x, y Scalar) {
	x = (nx*0.5 + 0.5) * Scalar(w-1)
	y = (1 - (ny*0.5 + 0.5)) * Scalar(h-1)
	return Clamp(x, -maxCoord, maxCoord), Clamp(y, -maxCoord, maxCoord)
}

func roundInt(v Scalar) int { return int(math.Floor(v + 0.5)) }

// clipSegment clips the segment p0-p1 to the pixel rectangle [0,w-1]x[0,h-1]
// (Liang-Barsky) and returns the parameter range that stays inside.
func clipSegment(x0, y0, x1, y1 Scalar, w, h int) (t0, t1 Scalar, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	edges := [4][2]Scalar{
		{-dx, x0},
		{dx, Scalar(w-1) - x0},
		{-dy, y0},
		{dy, Scalar(h-1) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return t0, t1, true
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) Scalar {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = 0
	}
	return Clamp01(amb + d*dir)
}

// depthOf maps NDC z from [-1,1] to [0,1].
func depthOf(z float32) float32 {
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	d := depthOf(z)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// edgeBias lets outlines win against the faces they border.
const edgeBias = 2e-4

func (r *Renderer) drawEdge(t Target, w, h int, a, b screenVertex, c Color) {
	if !r.Depth || r.depthBuf == nil {
		r.drawLine(t, w, h, a.fx, a.fy, b.fx, b.fy, c)
		return
	}
	t0, t1, ok := clipSegment(a.fx, a.fy, b.fx, b.fy, w, h)
	if !ok {
		return
	}
	ax, ay := roundInt(a.fx+(b.fx-a.fx)*t0), roundInt(a.fy+(b.fy-a.fy)*t0)
	bx, by := roundInt(a.fx+(b.fx-a.fx)*t1), roundInt(a.fy+(b.fy-a.fy)*t1)
	az := a.z + (b.z-a.z)*float32(t0)
	bz := a.z + (b.z-a.z)*float32(t1)

	steps := max(absInt(bx-ax), absInt(by-ay))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float32(i) / float32(steps)
		x := ax + int(float32(bx-ax)*f+0.5*sign(bx-ax))
		y := ay + int(float32(by-ay)*f+0.5*sign(by-ay))
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		idx := y*w + x
		if idx >= len(r.depthBuf) {
			continue
		}
		if depthOf(az+(bz-az)*f)-edgeBias > r.depthBuf[idx] {
			continue
		}
		t.SetPixel(x, y, c)
	}
}

// drawLine clips the segment to the target and rasterizes the visible part.
func (r *Renderer) drawLine(t Target, w, h int, fx0, fy0, fx1, fy1 Scalar, c Color) {
	t0, t1, ok := clipSegment(fx0, fy0, fx1, fy1, w, h)
	if !ok {
		return
	}
	x0, y0 := roundInt(fx0+(fx1-fx0)*t0), roundInt(fy0+(fy1-fy0)*t0)
	x1, y1 := roundInt(fx0+(fx1-fx0)*t1), roundInt(fy0+(fy1-fy0)*t1)

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangle(t Target, w, h int, v0 screenVertex, c0 Color, v1 screenVertex, c1 Color, v2 screenVertex, c2 Color) {
	minX, maxX := min(v0.x, v1.x, v2.x), max(v0.x, v1.x, v2.x)
	minY, maxY := min(v0.y, v1.y, v2.y), max(v0.y, v1.y, v2.y)
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, w-1), min(maxY, h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	invArea := 1.0 / float32(area)
	flat := c0 == c1 && c1 == c2

	r0, g0, b0 := float32(c0.R), float32(c0.G), float32(c0.B)
	r1, g1, b1 := float32(c1.R), float32(c1.G), float32(c1.B)
	r2, g2, b2 := float32(c2.R), float32(c2.G), float32(c2.B)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, x, y)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, x, y)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, x, y)
			// Accept both windings; the depth test resolves visibility.
			if area > 0 && (w0|w1|w2) < 0 {
				continue
			}
			if area < 0 && (w0 > 0 || w1 > 0 || w2 > 0) {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			if !r.depthTest(w, x, y, a0*v0.z+a1*v1.z+a2*v2.z) {
				continue
			}
			if flat {
				t.SetPixel(x, y, c0)
				continue
			}
			rr := uint8(clampF32(a0*r0+a1*r1+a2*r2, 0, 255))
			gg := uint8(clampF32(a0*g0+a1*g1+a2*g2, 0, 255))
			bb := uint8(clampF32(a0*b0+a1*b1+a2*b2, 0, 255))
			t.SetPixel(x, y, Color{R: rr, G: gg, B: bb, A: c0.A})
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
