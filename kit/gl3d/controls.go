package gl3d

const (
	// DragDegreesPerPixel converts pointer travel into rotation.
	DragDegreesPerPixel = 0.5
	// WheelScaleStep is the scale change per wheel notch.
	WheelScaleStep = 0.1

	MinScale = 0.1
	MaxScale = 10.0
)

// Trackball is the transform state driven by pointer input: rotation about X and Y in
// degrees, a uniform scale and a translation.
//
// It does not depend on any input system; callers feed it pointer positions and wheel
// notches.
type Trackball struct {
	RotX     Scalar
	RotY     Scalar
	Scale    Scalar
	Position Vec3

	dragging bool
	lastX    int
	lastY    int
}

// NewTrackball returns a trackball at rest with unit scale.
func NewTrackball() *Trackball {
	return &Trackball{Scale: 1}
}

// Press records the pointer position at which a drag starts.
func (c *Trackball) Press(x, y int) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// Release ends the current drag.
func (c *Trackball) Release() {
	c.dragging = false
}

// Dragging reports whether the primary button is held.
func (c *Trackball) Dragging() bool { return c.dragging }

// Move applies the pointer delta since the last recorded position while dragging and
// reports whether the state changed.
func (c *Trackball) Move(x, y int) bool {
	if !c.dragging {
		return false
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return false
	}
	c.Rotate(Scalar(dx), Scalar(dy))
	return true
}

// Rotate applies a pixel delta: horizontal travel turns about Y, vertical about X.
func (c *Trackball) Rotate(dx, dy Scalar) {
	c.RotY += dx * DragDegreesPerPixel
	c.RotX += dy * DragDegreesPerPixel
}

// Wheel changes the scale by notches*WheelScaleStep, clamped to [MinScale, MaxScale].
func (c *Trackball) Wheel(notches Scalar) {
	c.Scale = Clamp(c.Scale+notches*WheelScaleStep, MinScale, MaxScale)
}

// Model composes rotateX · rotateY · scale, translated by Position when set.
//
// The order is fixed: scale first, then Y, then X.
func (c *Trackball) Model() Mat4 {
	s := c.Scale
	if s == 0 {
		s = 1
	}
	m := Mat4Identity()
	m = Mat4Mul(Mat4Scale(s), m)
	m = Mat4Mul(Mat4RotateY(c.RotY), m)
	m = Mat4Mul(Mat4RotateX(c.RotX), m)
	if c.Position != (Vec3{}) {
		m = Mat4Mul(Mat4Translate(c.Position), m)
	}
	return m
}
