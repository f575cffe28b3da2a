package gl3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrDegenerate is returned by builders whose inputs do not define a transform.
var ErrDegenerate = errors.New("gl3d: degenerate input")

// eps is the length below which a vector is treated as zero.
const eps = 1e-12

// Scalar is the numeric type used by the math operations.
type Scalar = float64

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a homogeneous 4D vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a row-major 4x4 matrix: m[row*4+col].
type Mat4 [16]Scalar

// Mat3 is a row-major 3x3 matrix: m[row*3+col].
type Mat3 [9]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MulV multiplies component-wise.
func (v Vec3) MulV(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Point returns v as a homogeneous point (w=1).
func (v Vec3) Point() Vec4 { return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1} }

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 { return Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) Scalar {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l < eps {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Reflect reflects the incident vector i about the unit normal n.
func Reflect(i, n Vec3) Vec3 {
	return i.Sub(n.Mul(2 * Dot(n, i)))
}

func Clamp(v, lo, hi Scalar) Scalar {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v Scalar) Scalar { return Clamp(v, 0, 1) }

func Radians(deg Scalar) Scalar { return deg * math.Pi / 180 }

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) Scalar { return m[r*4+c] }

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row*4+col] =
				a[row*4+0]*b[0*4+col] +
					a[row*4+1]*b[1*4+col] +
					a[row*4+2]*b[2*4+col] +
					a[row*4+3]*b[3*4+col]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		W: m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

func Mat4Transpose(m Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = m[r*4+c]
		}
	}
	return out
}

// Mat4ApproxEqual reports whether every element of a and b differs by at most tol.
func Mat4ApproxEqual(a, b Mat4, tol Scalar) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[3] = v.X
	m[7] = v.Y
	m[11] = v.Z
	return m
}

// Mat4Scale is a uniform scale; the homogeneous row is left untouched.
func Mat4Scale(s Scalar) Mat4 {
	m := Mat4Identity()
	m[0] = s
	m[5] = s
	m[10] = s
	return m
}

func Mat4RotateX(deg Scalar) Mat4 {
	s, c := math.Sincos(Radians(deg))
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

func Mat4RotateY(deg Scalar) Mat4 {
	s, c := math.Sincos(Radians(deg))
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mat4RotateAxis returns m·R where R rotates by deg about axis (Rodrigues form).
// The axis is normalized first.
func Mat4RotateAxis(m Mat4, deg Scalar, axis Vec3) (Mat4, error) {
	a := Normalize(axis)
	if a == (Vec3{}) {
		return m, errors.Wrap(ErrDegenerate, "rotation axis has zero length")
	}
	s, c := math.Sincos(Radians(deg))
	t := 1 - c
	r := Mat4{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	}
	return Mat4Mul(m, r), nil
}

// Mat4LookAt builds a view matrix looking from eye towards target.
//
// When the view direction is parallel to up, +Z (or +X if that is parallel too) is
// used as the up hint instead. eye == target is an error.
func Mat4LookAt(eye, target, up Vec3) (Mat4, error) {
	f := Normalize(target.Sub(eye))
	if f == (Vec3{}) {
		return Mat4{}, errors.Wrap(ErrDegenerate, "look-at: eye equals target")
	}
	r := Normalize(Cross(f, up))
	if r == (Vec3{}) {
		for _, hint := range []Vec3{V3(0, 0, 1), V3(1, 0, 0)} {
			if r = Normalize(Cross(f, hint)); r != (Vec3{}) {
				break
			}
		}
	}
	u := Cross(r, f)

	return Mat4{
		r.X, r.Y, r.Z, -Dot(r, eye),
		u.X, u.Y, u.Z, -Dot(u, eye),
		-f.X, -f.Y, -f.Z, Dot(f, eye),
		0, 0, 0, 1,
	}, nil
}

// Mat4Perspective builds a symmetric-frustum projection mapping z=-near to -1 and
// z=-far to +1 after the perspective divide.
func Mat4Perspective(fovYDeg, aspect, near, far Scalar) (Mat4, error) {
	switch {
	case !(aspect > 0):
		return Mat4{}, errors.Wrapf(ErrDegenerate, "perspective: aspect %g", aspect)
	case !(near > 0) || !(far > 0) || near == far:
		return Mat4{}, errors.Wrapf(ErrDegenerate, "perspective: near %g far %g", near, far)
	case !(fovYDeg > 0 && fovYDeg < 180):
		return Mat4{}, errors.Wrapf(ErrDegenerate, "perspective: fov %g", fovYDeg)
	}
	f := 1 / math.Tan(Radians(fovYDeg)/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}, nil
}

// Aspect returns w/h, falling back to 1 for an empty viewport.
func Aspect(w, h int) Scalar {
	if h <= 0 || w <= 0 {
		return 1
	}
	return Scalar(w) / Scalar(h)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m, used to carry
// normals through non-uniform transforms.
func NormalMatrix(m Mat4) (Mat3, error) {
	up := mgl64.Mat3FromRows(
		mgl64.Vec3{m[0], m[1], m[2]},
		mgl64.Vec3{m[4], m[5], m[6]},
		mgl64.Vec3{m[8], m[9], m[10]},
	)
	if math.Abs(up.Det()) < eps {
		return Mat3{}, errors.Wrap(ErrDegenerate, "normal matrix: singular model")
	}
	n := up.Inv().Transpose()
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = n.At(r, c)
		}
	}
	return out, nil
}

func Mat3MulV3(m Mat3, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}
