package gl3d

import (
	"errors"
	"image"
	"testing"
)

func quad() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-0.5, -0.5, 0), Normal: V3(0, 0, 1), Color: RGB(255, 0, 0)},
			{Pos: V3(0.5, -0.5, 0), Normal: V3(0, 0, 1), Color: RGB(255, 0, 0)},
			{Pos: V3(0.5, 0.5, 0), Normal: V3(0, 0, 1), Color: RGB(255, 0, 0)},
			{Pos: V3(-0.5, 0.5, 0), Normal: V3(0, 0, 1), Color: RGB(255, 0, 0)},
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

type constShader struct{ c Color }

func (s constShader) ShadeVertex(pos, normal Vec3, base Color) Color { return s.c }

func TestRenderFillsCentre(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	r := NewRenderer(64, 48, true)
	r.Mode = RenderSolidVertexColor
	s := CreateScene(1)
	s.AddMesh(quad())

	if err := r.Render(ImageTarget{Img: img}, s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := img.RGBAAt(32, 24); c.R != 255 || c.G != 0 {
		t.Fatalf("centre = %v, want red", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 0 {
		t.Fatalf("corner = %v, want clear color", c)
	}
}

func TestRenderVertexShader(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	r := NewRenderer(32, 32, true)
	r.Mode = RenderSolidVertexColor
	s := CreateScene(1)
	m := quad()
	m.Shader = constShader{c: RGB(0, 200, 0)}
	s.AddMesh(m)

	if err := r.Render(ImageTarget{Img: img}, s); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := img.RGBAAt(16, 16); c.G != 200 || c.R != 0 {
		t.Fatalf("centre = %v, want shader color", c)
	}
}

func TestRenderDegenerateCamera(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	r := NewRenderer(8, 8, false)
	s := CreateScene(1)
	s.Camera.Target = s.Camera.Eye
	if err := r.Render(ImageTarget{Img: img}, s); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("err = %v, want ErrDegenerate", err)
	}
}

func TestPolyline(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	r := NewRenderer(21, 21, false)
	r.Clear(ImageTarget{Img: img})
	r.Polyline(ImageTarget{Img: img}, []Vec3{V3(-1, 0, 0), V3(1, 0, 0)}, RGB(1, 2, 3))
	for x := 0; x < 21; x++ {
		if c := img.RGBAAt(x, 10); c.R != 1 || c.G != 2 || c.B != 3 {
			t.Fatalf("pixel %d = %v", x, c)
		}
	}
}

// countingTarget records every pixel write, including the ones a Target would drop.
type countingTarget struct {
	w, h      int
	writes    int
	offscreen int
}

func (c *countingTarget) Size() (int, int) { return c.w, c.h }
func (c *countingTarget) Clear(Color)      {}
func (c *countingTarget) SetPixel(x, y int, _ Color) {
	c.writes++
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		c.offscreen++
	}
}

func TestProjectRejectsNearPlane(t *testing.T) {
	cam := DefaultCamera()
	view, err := cam.View()
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	proj, err := cam.Projection(Aspect(800, 600))
	if err != nil {
		t.Fatalf("Projection: %v", err)
	}
	mvp := Mat4Mul(proj, view)

	// Eye at z=3 with near 0.1: z=2.95 is in front of the eye but closer than near.
	if sv := project(mvp, V3(0.01, 0, 2.95), 800, 600); sv.ok {
		t.Fatalf("vertex inside the near distance accepted: %+v", sv)
	}
	if sv := project(mvp, V3(0, 0, 3.5), 800, 600); sv.ok {
		t.Fatalf("vertex behind the eye accepted: %+v", sv)
	}
	if sv := project(mvp, V3(0, 0, 0), 800, 600); !sv.ok || sv.x != 400 || sv.y != 300 {
		t.Fatalf("origin = %+v, want centre", sv)
	}
}

func TestClipSegment(t *testing.T) {
	t0, t1, ok := clipSegment(-1e6, 5, 1e6, 5, 21, 11)
	if !ok {
		t.Fatalf("crossing segment rejected")
	}
	if x0, x1 := -1e6+2e6*t0, -1e6+2e6*t1; roundInt(x0) != 0 || roundInt(x1) != 20 {
		t.Fatalf("clipped to x %v..%v, want 0..20", x0, x1)
	}
	if _, _, ok := clipSegment(-50, -5, 50, -5, 21, 11); ok {
		t.Fatalf("segment above the target accepted")
	}
	if t0, t1, ok := clipSegment(2, 2, 8, 8, 21, 11); !ok || t0 != 0 || t1 != 1 {
		t.Fatalf("inside segment clipped to %v..%v", t0, t1)
	}
}

func TestPolylineClipsFarEndpoints(t *testing.T) {
	ct := &countingTarget{w: 21, h: 21}
	r := NewRenderer(21, 21, false)
	r.Polyline(ct, []Vec3{V3(-1e5, 0, 0), V3(1e5, 0, 0)}, RGB(1, 2, 3))
	if ct.writes != 21 || ct.offscreen != 0 {
		t.Fatalf("writes = %d (offscreen %d), want 21 on screen", ct.writes, ct.offscreen)
	}
}

// saddleGrid is an n*n grid over [-1,1]^2 lifted onto z = x^2 - y^2.
func saddleGrid(n int) Mesh {
	var m Mesh
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := -1 + 2*Scalar(j)/Scalar(n-1)
			y := -1 + 2*Scalar(i)/Scalar(n-1)
			m.Vertices = append(m.Vertices, Vertex{Pos: V3(x, y, x*x-y*y), Color: RGB(255, 255, 255)})
		}
	}
	for i := 0; i+1 < n; i++ {
		for j := 0; j+1 < n; j++ {
			a := uint32(i*n + j)
			b, c, d := a+1, a+uint32(n), a+uint32(n)+1
			m.Indices = append(m.Indices, a, b, d, a, d, c)
		}
	}
	return m
}

func TestMaxScaleWorkBounded(t *testing.T) {
	const w, h, n = 800, 600, 30
	edges := (n - 1) * (n - 1) * 2 * 3

	for _, tc := range []struct {
		name  string
		mode  RenderMode
		depth bool
	}{
		{"wireframe", RenderWireframe, false},
		{"edges", RenderSolidVertexColor, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for rotY := Scalar(0); rotY < 360; rotY += 30 {
				ct := &countingTarget{w: w, h: h}
				r := NewRenderer(w, h, tc.depth)
				r.Mode = tc.mode
				s := CreateScene(1)
				m := saddleGrid(n)
				m.Transform = Mat4Mul(Mat4Mul(Mat4RotateX(15), Mat4RotateY(rotY)), Mat4Scale(MaxScale))
				if tc.mode != RenderWireframe {
					black := RGB(0, 0, 0)
					m.Edges = &black
				}
				s.AddMesh(m)

				if err := r.Render(ct, s); err != nil {
					t.Fatalf("Render: %v", err)
				}
				if ct.offscreen != 0 {
					t.Fatalf("rotY %v: %d offscreen writes", rotY, ct.offscreen)
				}
				// Each clipped segment covers at most w+h pixels; filled triangles are
				// bounded by the screen, once per triangle.
				limit := edges*(w+h) + len(m.Indices)/3*w*h
				if tc.mode == RenderWireframe {
					limit = edges * (w + h)
				}
				if ct.writes > limit {
					t.Fatalf("rotY %v: %d writes, limit %d", rotY, ct.writes, limit)
				}
			}
		})
	}
}
