package qsim

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

/*
LocalOps maps a qubit index to the 2x2 operator acting on it. Qubits that are
not present get the identity. Every gate in the library is one LocalOps, or a
sum of several, passed through BuildGate.
*/
type LocalOps map[int]Matrix

/*
Compose returns the Kronecker product of ops, left to right. The first operator
is the most significant tensor factor.
*/
func Compose(ops ...Matrix) (Matrix, error) {
	if len(ops) == 0 {
		return Matrix{}, fmt.Errorf("no operators to compose: %w", ErrShape)
	}

	for i, op := range ops {
		if !isSingleQubit(op) {
			return Matrix{}, fmt.Errorf("operator %d is %dx%d: %w", i, op.rows, op.cols, ErrShape)
		}
	}

	gate := ops[0].Clone()
	for _, op := range ops[1:] {
		gate = Kron(gate, op)
	}
	return gate, nil
}

/*
BuildGate expands ops to a 2^n x 2^n matrix. The factors are ordered from
qubit n-1 down to qubit 0, which keeps qubit 0 on the least significant bit of
the basis-state index.
*/
func BuildGate(ops LocalOps, n int) (Matrix, error) {
	if n < 1 {
		return Matrix{}, fmt.Errorf("qubit count %d: %w", n, ErrConfiguration)
	}

	for q, op := range ops {
		if q < 0 || q >= n {
			return Matrix{}, fmt.Errorf("qubit %d not in [0,%d): %w", q, n, ErrIndex)
		}
		if !isSingleQubit(op) {
			return Matrix{}, fmt.Errorf("operator on qubit %d is %dx%d: %w", q, op.rows, op.cols, ErrShape)
		}
	}

	seq := make([]Matrix, 0, n)
	for q := n - 1; q >= 0; q-- {
		if op, ok := ops[q]; ok {
			seq = append(seq, op)
			continue
		}
		seq = append(seq, I2())
	}

	return Compose(seq...)
}

func distinct(qubits ...int) error {
	seen := make(map[int]struct{}, len(qubits))
	for _, q := range qubits {
		if _, ok := seen[q]; ok {
			return fmt.Errorf("qubit %d used twice: %w", q, ErrIndex)
		}
		seen[q] = struct{}{}
	}
	return nil
}

func sumGates(n int, terms ...LocalOps) (Matrix, error) {
	var total Matrix
	for i, term := range terms {
		gate, err := BuildGate(term, n)
		if err != nil {
			return Matrix{}, err
		}
		if i == 0 {
			total = gate
			continue
		}
		if total, err = total.Add(gate); err != nil {
			return Matrix{}, err
		}
	}
	return total, nil
}

func X(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: PauliX()}, n) }

func Y(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: PauliY()}, n) }

func Z(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: PauliZ()}, n) }

func Hadamard(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: HadamardOp()}, n) }

// Phase is the S gate on target.
func Phase(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: PhaseOp()}, n) }

// T is the π/8 gate on target.
func T(target, n int) (Matrix, error) { return BuildGate(LocalOps{target: PiOver8Op()}, n) }

/*
Controlled applies u to target when control is |1⟩. It is the sum of the
"control is 0, do nothing" and "control is 1, apply u" terms; neither term is
unitary on its own, their sum is.
*/
func Controlled(u Matrix, target, control, n int) (Matrix, error) {
	if err := distinct(target, control); err != nil {
		return Matrix{}, err
	}

	return sumGates(n,
		LocalOps{control: Projector0(), target: I2()},
		LocalOps{control: Projector1(), target: u},
	)
}

func CNOT(target, control, n int) (Matrix, error) {
	return Controlled(PauliX(), target, control, n)
}

func CZ(target, control, n int) (Matrix, error) {
	return Controlled(PauliZ(), target, control, n)
}

// CCNOT is the Toffoli gate: X on target when both controls are |1⟩.
func CCNOT(target, c1, c2, n int) (Matrix, error) {
	if err := distinct(target, c1, c2); err != nil {
		return Matrix{}, err
	}

	return sumGates(n,
		LocalOps{c1: Projector0(), c2: Projector0()},
		LocalOps{c1: Projector0(), c2: Projector1()},
		LocalOps{c1: Projector1(), c2: Projector0()},
		LocalOps{c1: Projector1(), c2: Projector1(), target: PauliX()},
	)
}

// Swap exchanges qubits i and j using SWAP = ½ Σ P⊗P over P in {I,X,Y,Z}.
func Swap(i, j, n int) (Matrix, error) {
	if err := distinct(i, j); err != nil {
		return Matrix{}, err
	}

	terms := make([]LocalOps, 0, 4)
	for _, pauli := range []func() Matrix{I2, PauliX, PauliY, PauliZ} {
		terms = append(terms, LocalOps{i: pauli(), j: pauli()})
	}

	sum, err := sumGates(n, terms...)
	if err != nil {
		return Matrix{}, err
	}
	return sum.Scale(0.5), nil
}

type oracleParams struct {
	key   *int
	state Vector
}

// OracleOption selects what an oracle marks.
type OracleOption func(*oracleParams)

// WithKey marks a single basis state.
func WithKey(key int) OracleOption {
	return func(p *oracleParams) {
		p.key = &key
	}
}

// WithState reflects about the given state vector.
func WithState(state Vector) OracleOption {
	return func(p *oracleParams) {
		p.state = state
	}
}

/*
Oracle returns either the phase flip of a single basis state (WithKey) or the
reflection I - 2|v⟩⟨v| about a state (WithState). Exactly one option must be
given. The state is not checked for unit norm; an unnormalized vector yields an
operator that is not a reflection.
*/
func Oracle(n int, opts ...OracleOption) (Matrix, error) {
	var params oracleParams
	for _, opt := range opts {
		opt(&params)
	}

	if (params.key == nil) == (params.state == nil) {
		return Matrix{}, fmt.Errorf("oracle needs exactly one of key or state: %w", ErrConfiguration)
	}
	if n < 1 {
		return Matrix{}, fmt.Errorf("qubit count %d: %w", n, ErrConfiguration)
	}

	dim := 1 << n
	gate := Identity(dim)

	if params.key != nil {
		key := *params.key
		if key < 0 || key >= dim {
			return Matrix{}, fmt.Errorf("key %d not in [0,%d): %w", key, dim, ErrIndex)
		}
		gate.Set(key, key, -1)
		return gate, nil
	}

	if len(params.state) != dim {
		return Matrix{}, fmt.Errorf("state of length %d for %d qubits: %w", len(params.state), n, ErrDimension)
	}
	return gate.Sub(Outer(params.state, params.state).Scale(2))
}

// Diffusion is the Grover diffusion step 2|v⟩⟨v| - I, the negated state oracle.
func Diffusion(state Vector) (Matrix, error) {
	n := 0
	for 1<<n < len(state) {
		n++
	}
	if len(state) == 0 || 1<<n != len(state) {
		return Matrix{}, fmt.Errorf("state of length %d: %w", len(state), ErrDimension)
	}

	reflection, err := Oracle(n, WithState(state))
	if err != nil {
		return Matrix{}, err
	}
	return reflection.Scale(-1), nil
}

// MarkedOracle flips the phase of every basis state in marked.
func MarkedOracle(n int, marked *roaring.Bitmap) (Matrix, error) {
	if n < 1 {
		return Matrix{}, fmt.Errorf("qubit count %d: %w", n, ErrConfiguration)
	}
	if marked == nil || marked.IsEmpty() {
		return Matrix{}, fmt.Errorf("no marked states: %w", ErrConfiguration)
	}

	dim := 1 << n
	if top := marked.Maximum(); uint64(top) >= uint64(dim) {
		return Matrix{}, fmt.Errorf("marked state %d not in [0,%d): %w", top, dim, ErrIndex)
	}

	gate := Identity(dim)
	marked.Iterate(func(key uint32) bool {
		gate.Set(int(key), int(key), -1)
		return true
	})
	return gate, nil
}
