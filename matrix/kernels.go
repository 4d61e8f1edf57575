// SPDX-License-Identifier: MIT
// Package matrix - kernels over any Matrix: Sub, Transpose, Mul, MatVec.
//
// Notes:
//   - Every kernel allocates a fresh *Dense result; operands are never mutated.
//   - Operands of another dynamic type are copied into a *Dense once
//     (toDense); all loops then run over flat row-major storage.

package matrix

import "fmt"

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opSub          = "Sub"
	opMul          = "Mul"
	opTranspose    = "Transpose"
	opMatVec       = "MatVec"
	opRowSums      = "RowSums"
	opNormalizeL1  = "NormalizeRowsL1"
	opLeastSquares = "LeastSquares"
	opIdentity     = "Identity"
)

// matrixErrorf tags a non-nil err with the kernel that produced it.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// toDense returns m as *Dense, copying through At when m has another dynamic type.
// Kernels call it once and then work on flat storage.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Sub returns a − b as a fresh *Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r·c).
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	ad, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	out, err := NewDense(ad.r, ad.c)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	for k, v := range ad.data {
		out.data[k] = v - bd.data[k]
	}

	return out, nil
}

// Transpose returns mᵀ, a c×r *Dense.
// Reads go row by row over m; cell (i, j) lands at (j, i).
// Complexity: O(r·c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			out.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return out, nil
}

// Mul returns the product a·b.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when a.Cols() != b.Rows().
//
// The i→k→j order streams rows of b, and zero cells of a are skipped.
// Complexity: O(r·n·c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	ad, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out, err := NewDense(ad.r, bd.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	var aik float64
	for i = 0; i < ad.r; i++ {
		for k = 0; k < ad.c; k++ {
			aik = ad.data[i*ad.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < bd.c; j++ {
				out.data[i*bd.c+j] += aik * bd.data[k*bd.c+j]
			}
		}
	}

	return out, nil
}

// MatVec returns y = m·x. x must be non-nil with len(x) == m.Cols().
// Complexity: O(r·c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var acc float64
	for i := 0; i < d.r; i++ {
		acc = ZeroSum
		for j, v := range d.data[i*d.c : (i+1)*d.c] {
			acc += v * x[j]
		}
		y[i] = acc
	}

	return y, nil
}
