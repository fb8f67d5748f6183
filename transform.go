package canvas

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Lerp blends a toward b by t: a*(1-t) + b*t.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(v, lo))
}

// clampZoom restricts a zoom level to [MinZoom, MaxZoom].
func clampZoom(z float64) float64 {
	return clamp(z, MinZoom, MaxZoom)
}

// viewMatrix builds the world-to-screen matrix for a camera without rotation.
//
//	Translate(w/2, h/2) * Scale(zoom) * Translate(-X, -Y)
//
// Matrix layout: [a, b, c, d, tx, ty]
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func viewMatrix(x, y, zoom, width, height float64) [6]float64 {
	return [6]float64{
		zoom, 0, 0, zoom,
		width*0.5 - x*zoom,
		height*0.5 - y*zoom,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
