package math

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromColumns builds a matrix whose columns are a, b and c.
func Mat3FromColumns(a, b, c PointVector) Mat3 {
	return Mat3{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	}
}

// Columns returns the three column vectors.
func (m Mat3) Columns() [3]PointVector {
	return [3]PointVector{
		{m[0], m[3], m[6]},
		{m[1], m[4], m[7]},
		{m[2], m[5], m[8]},
	}
}

// Det returns the determinant.
func (m Mat3) Det() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) +
		m[1]*(m[5]*m[6]-m[3]*m[8]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse of the matrix.
// ok is false when the determinant is exactly zero.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Det()
	if det == 0 {
		return Mat3{}, false
	}

	inv = Mat3{
		m[4]*m[8] - m[5]*m[7],
		m[2]*m[7] - m[1]*m[8],
		m[1]*m[5] - m[2]*m[4],
		m[5]*m[6] - m[3]*m[8],
		m[0]*m[8] - m[2]*m[6],
		m[2]*m[3] - m[0]*m[5],
		m[3]*m[7] - m[4]*m[6],
		m[1]*m[6] - m[0]*m[7],
		m[0]*m[4] - m[1]*m[3],
	}
	for i := range inv {
		inv[i] /= det
	}
	return inv, true
}

// Solve returns m * v. Called on an inverse, it solves the system the
// original matrix describes.
func (m Mat3) Solve(v PointVector) PointVector {
	return PointVector{
		X: v.X*m[0] + v.Y*m[1] + v.Z*m[2],
		Y: v.X*m[3] + v.Y*m[4] + v.Z*m[5],
		Z: v.X*m[6] + v.Y*m[7] + v.Z*m[8],
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			result[row*3+col] =
				m[row*3+0]*other[0*3+col] +
					m[row*3+1]*other[1*3+col] +
					m[row*3+2]*other[2*3+col]
		}
	}
	return result
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Orthonormalize re-orthogonalizes the columns with Gram-Schmidt, keeping
// the direction of the first column.
func (m Mat3) Orthonormalize() Mat3 {
	cols := m.Columns()
	x := Normalize(cols[0])
	y := Normalize(cols[1].Sub(x.Scale(cols[1].Dot(x))))
	z := cols[2].Sub(x.Scale(cols[2].Dot(x))).Sub(y.Scale(cols[2].Dot(y)))
	z = Normalize(z)
	return Mat3FromColumns(x, y, z)
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat3) ApproxEqual(other Mat3, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}
