package fractal

// Escape iterates z = z² + c from z = 0 and returns the number of iterations completed
// before |z|² exceeds 4, or maxIter when the orbit stays bounded.
func Escape(c complex128, maxIter int) int {
	cr, ci := real(c), imag(c)
	var x, y float64
	for i := 0; i < maxIter; i++ {
		nx := x*x - y*y + cr
		ny := 2*x*y + ci
		if nx*nx+ny*ny > 4 {
			return i
		}
		x, y = nx, ny
	}
	return maxIter
}
