package laminate

import "math"

// Matrix is a 3x3 stiffness matrix in contracted (1, 2, 6) notation.
type Matrix [3][3]float64

// Add returns m + o.
func (m Matrix) Add(o Matrix) Matrix {
	var r Matrix
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] + o[i][j]
		}
	}
	return r
}

// Scale returns f*m.
func (m Matrix) Scale(f float64) Matrix {
	var r Matrix
	for i := range m {
		for j := range m[i] {
			r[i][j] = m[i][j] * f
		}
	}
	return r
}

// isSymmetric reports whether m equals its transpose within a relative tolerance.
func (m Matrix) isSymmetric(tol float64) bool {
	scale := math.Max(math.Abs(m[0][0]), math.Abs(m[1][1]))
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[i][j]-m[j][i]) > tol*scale {
				return false
			}
		}
	}
	return true
}

// Rotate transforms a ply stiffness from material axes into laminate axes
// for a fiber angle given in degrees. Any real angle is accepted.
func Rotate(q Matrix, angleDeg float64) Matrix {
	theta := angleDeg * math.Pi / 180
	c := math.Cos(theta)
	s := math.Sin(theta)

	q11, q12, q22, q66 := q[0][0], q[0][1], q[1][1], q[2][2]

	c2 := c * c
	s2 := s * s
	c4 := c2 * c2
	s4 := s2 * s2
	s2c2 := s2 * c2
	sc3 := s * c * c2
	s3c := s * s2 * c

	b11 := q11*c4 + 2*(q12+2*q66)*s2c2 + q22*s4
	b12 := (q11+q22-4*q66)*s2c2 + q12*(c4+s4)
	b22 := q11*s4 + 2*(q12+2*q66)*s2c2 + q22*c4
	b16 := (q11-q12-2*q66)*sc3 + (q12-q22+2*q66)*s3c
	b26 := (q11-q12-2*q66)*s3c + (q12-q22+2*q66)*sc3
	b66 := (q11+q22-2*q12-2*q66)*s2c2 + q66*(c4+s4)

	return Matrix{
		{b11, b12, b16},
		{b12, b22, b26},
		{b16, b26, b66},
	}
}
