package qsim

import (
	"math"
	"math/cmplx"
)

/*
Single-qubit operators. Every call returns a fresh 2x2 matrix so callers may
modify the result without affecting other gates.
*/

func op2(a, b, c, d complex128) Matrix {
	return Matrix{rows: 2, cols: 2, data: []complex128{a, b, c, d}}
}

// I2 is the single-qubit identity.
func I2() Matrix { return op2(1, 0, 0, 1) }

// PauliX is the bit flip [[0,1],[1,0]].
func PauliX() Matrix { return op2(0, 1, 1, 0) }

// PauliY is [[0,-i],[i,0]].
func PauliY() Matrix { return op2(0, -1i, 1i, 0) }

// PauliZ is the phase flip [[1,0],[0,-1]].
func PauliZ() Matrix { return op2(1, 0, 0, -1) }

// HadamardOp is H = 1/√2 * [[1,1],[1,-1]].
func HadamardOp() Matrix {
	h := complex(1/math.Sqrt2, 0)
	return op2(h, h, h, -h)
}

// PhaseOp is S = [[1,0],[0,i]].
func PhaseOp() Matrix { return op2(1, 0, 0, 1i) }

// PiOver8Op is T = [[1,0],[0,e^{iπ/4}]].
func PiOver8Op() Matrix {
	return op2(1, 0, 0, cmplx.Exp(complex(0, math.Pi/4)))
}

// Projector0 is |0⟩⟨0|.
func Projector0() Matrix { return op2(1, 0, 0, 0) }

// Projector1 is |1⟩⟨1|.
func Projector1() Matrix { return op2(0, 0, 0, 1) }

func isSingleQubit(m Matrix) bool {
	return m.rows == 2 && m.cols == 2 && len(m.data) == 4
}
