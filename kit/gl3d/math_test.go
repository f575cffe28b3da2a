package gl3d

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tol = 1e-9

func fromMGL(m mgl64.Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m.At(r, c)
		}
	}
	return out
}

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	if got := Mat4Mul(a, b); got != b {
		t.Fatalf("identity*b mismatch")
	}
	if got := Mat4Mul(b, a); got != b {
		t.Fatalf("b*identity mismatch")
	}
}

func TestMat4TransposeMatchesMathGL(t *testing.T) {
	mm := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(30)))
	if got, want := Mat4Transpose(fromMGL(mm)), fromMGL(mm.Transpose()); got != want {
		t.Fatalf("transpose = %v, want %v", got, want)
	}
	if got := Mat4Transpose(Mat4Transpose(fromMGL(mm))); got != fromMGL(mm) {
		t.Fatalf("double transpose = %v", got)
	}
}

func TestMat4ScaleLeavesHomogeneousRow(t *testing.T) {
	m := Mat4Scale(2.5)
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		t.Fatalf("homogeneous row changed: %v", m)
	}
	p := Mat4MulV4(m, V3(1, -2, 4).Point())
	if p != (Vec4{X: 2.5, Y: -5, Z: 10, W: 1}) {
		t.Fatalf("scaled point = %+v", p)
	}
}

func TestRotateInverse(t *testing.T) {
	for _, deg := range []Scalar{-270, -90, -33.3, 0, 1, 45, 90, 179.5, 360, 725} {
		if got := Mat4Mul(Mat4RotateX(deg), Mat4RotateX(-deg)); !Mat4ApproxEqual(got, Mat4Identity(), tol) {
			t.Errorf("rotateX(%v)*rotateX(-%v) = %v", deg, deg, got)
		}
		if got := Mat4Mul(Mat4RotateY(deg), Mat4RotateY(-deg)); !Mat4ApproxEqual(got, Mat4Identity(), tol) {
			t.Errorf("rotateY(%v)*rotateY(-%v) = %v", deg, deg, got)
		}
	}
}

func TestRotateMatchesMathGL(t *testing.T) {
	for _, deg := range []Scalar{-60, 15, 90, 200} {
		if !Mat4ApproxEqual(Mat4RotateX(deg), fromMGL(mgl64.HomogRotate3DX(mgl64.DegToRad(deg))), tol) {
			t.Errorf("rotateX(%v) differs from mgl64", deg)
		}
		if !Mat4ApproxEqual(Mat4RotateY(deg), fromMGL(mgl64.HomogRotate3DY(mgl64.DegToRad(deg))), tol) {
			t.Errorf("rotateY(%v) differs from mgl64", deg)
		}
	}
}

func TestRotateAxisMatchesAxisBuilders(t *testing.T) {
	got, err := Mat4RotateAxis(Mat4Identity(), 30, V3(2, 0, 0))
	if err != nil {
		t.Fatalf("RotateAxis: %v", err)
	}
	if !Mat4ApproxEqual(got, Mat4RotateX(30), tol) {
		t.Fatalf("axis X rotation mismatch: %v", got)
	}

	base := Mat4RotateX(10)
	got, err = Mat4RotateAxis(base, -75, V3(0, 1, 0))
	if err != nil {
		t.Fatalf("RotateAxis: %v", err)
	}
	if want := Mat4Mul(base, Mat4RotateY(-75)); !Mat4ApproxEqual(got, want, tol) {
		t.Fatalf("composition mismatch:\n got %v\nwant %v", got, want)
	}

	axis := V3(1, 2, 3)
	got, _ = Mat4RotateAxis(Mat4Identity(), 42, axis)
	want := fromMGL(mgl64.HomogRotate3D(mgl64.DegToRad(42), mgl64.Vec3{1, 2, 3}.Normalize()))
	if !Mat4ApproxEqual(got, want, tol) {
		t.Fatalf("arbitrary axis mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestRotateAxisZeroAxis(t *testing.T) {
	if _, err := Mat4RotateAxis(Mat4Identity(), 10, Vec3{}); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("err = %v, want ErrDegenerate", err)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	cases := []struct{ eye, target, up Vec3 }{
		{V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0)},
		{V3(4, -2, 7), V3(1, 1, 1), V3(0, 1, 0)},
		{V3(-3, 5, 0.5), V3(0, 0, -2), V3(0.2, 1, 0)},
	}
	for _, c := range cases {
		m, err := Mat4LookAt(c.eye, c.target, c.up)
		if err != nil {
			t.Fatalf("LookAt(%v): %v", c.eye, err)
		}
		p := Mat4MulV4(m, c.eye.Point())
		if math.Abs(p.X) > tol || math.Abs(p.Y) > tol || math.Abs(p.W-1) > tol {
			t.Errorf("eye %v maps to %+v", c.eye, p)
		}
		// Target lies straight ahead on -Z.
		q := Mat4MulV4(m, c.target.Point())
		if math.Abs(q.X) > tol || math.Abs(q.Y) > tol || q.Z >= 0 {
			t.Errorf("target %v maps to %+v", c.target, q)
		}
		want := fromMGL(mgl64.LookAtV(
			mgl64.Vec3{c.eye.X, c.eye.Y, c.eye.Z},
			mgl64.Vec3{c.target.X, c.target.Y, c.target.Z},
			mgl64.Vec3{c.up.X, c.up.Y, c.up.Z}))
		if !Mat4ApproxEqual(m, want, 1e-9) {
			t.Errorf("LookAt(%v) differs from mgl64:\n got %v\nwant %v", c.eye, m, want)
		}
	}
}

func TestLookAtDegenerate(t *testing.T) {
	if _, err := Mat4LookAt(V3(1, 1, 1), V3(1, 1, 1), V3(0, 1, 0)); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("eye==target err = %v", err)
	}

	m, err := Mat4LookAt(V3(0, 5, 0), V3(0, 0, 0), V3(0, 1, 0))
	if err != nil {
		t.Fatalf("parallel up: %v", err)
	}
	for i, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("m[%d] = %v", i, v)
		}
	}
	if p := Mat4MulV4(m, V3(0, 5, 0).Point()); math.Abs(p.X) > tol || math.Abs(p.Y) > tol {
		t.Fatalf("fallback basis does not centre the eye: %+v", p)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 100.0
	m, err := Mat4Perspective(45, 4.0/3.0, near, far)
	if err != nil {
		t.Fatalf("Perspective: %v", err)
	}
	ndcZ := func(depth Scalar) Scalar {
		c := Mat4MulV4(m, V3(0, 0, -depth).Point())
		return c.Z / c.W
	}
	if z := ndcZ(near); math.Abs(z+1) > 1e-9 {
		t.Errorf("near plane z = %v, want -1", z)
	}
	if z := ndcZ(far); math.Abs(z-1) > 1e-9 {
		t.Errorf("far plane z = %v, want 1", z)
	}
	want := fromMGL(mgl64.Perspective(mgl64.DegToRad(45), 4.0/3.0, near, far))
	if !Mat4ApproxEqual(m, want, 1e-9) {
		t.Errorf("perspective differs from mgl64")
	}
}

func TestPerspectivePreconditions(t *testing.T) {
	cases := []struct {
		name                   string
		fov, aspect, near, far Scalar
	}{
		{"zero aspect", 45, 0, 0.1, 100},
		{"negative aspect", 45, -1, 0.1, 100},
		{"nan aspect", 45, math.NaN(), 0.1, 100},
		{"near equals far", 45, 1, 5, 5},
		{"zero near", 45, 1, 0, 100},
		{"zero fov", 0, 1, 0.1, 100},
		{"flat fov", 180, 1, 0.1, 100},
	}
	for _, c := range cases {
		if _, err := Mat4Perspective(c.fov, c.aspect, c.near, c.far); !errors.Is(err, ErrDegenerate) {
			t.Errorf("%s: err = %v", c.name, err)
		}
	}
}

func TestAspectFallback(t *testing.T) {
	if a := Aspect(800, 600); math.Abs(a-4.0/3.0) > tol {
		t.Fatalf("Aspect(800,600) = %v", a)
	}
	if a := Aspect(800, 0); a != 1 {
		t.Fatalf("Aspect(800,0) = %v, want 1", a)
	}
}

func TestNormalMatrix(t *testing.T) {
	m := Mat4Mul(Mat4RotateY(30), Mat4Scale(2))
	n, err := NormalMatrix(m)
	if err != nil {
		t.Fatalf("NormalMatrix: %v", err)
	}
	// A uniform scale only changes the length of a transformed normal.
	got := Normalize(Mat3MulV3(n, V3(0, 0, 1)))
	want := Normalize(Mat4MulV4(Mat4RotateY(30), Vec4{Z: 1}).XYZ())
	if Len(got.Sub(want)) > tol {
		t.Fatalf("normal = %v, want %v", got, want)
	}

	if _, err := NormalMatrix(Mat4Scale(0)); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("singular err = %v", err)
	}
}
