/*
Package algorithms holds textbook circuits built on the qsim public API:
Bell-state preparation, Deutsch–Jozsa and Grover search.
*/
package algorithms

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/theapemachine/qsim"
)

// HadamardAll applies H to every qubit in [from, n).
func HadamardAll(from, n int) (qsim.Matrix, error) {
	ops := make(qsim.LocalOps, n-from)
	for q := from; q < n; q++ {
		ops[q] = qsim.HadamardOp()
	}
	return qsim.BuildGate(ops, n)
}

// Bell prepares (|00⟩ + |11⟩)/√2 on two qubits.
func Bell(opts ...qsim.StateOption) (*qsim.State, error) {
	state, err := qsim.NewState(append(opts, qsim.WithQubits(2))...)
	if err != nil {
		return nil, err
	}

	circuit := qsim.NewCircuit(2)

	h, err := qsim.Hadamard(0, 2)
	if err != nil {
		return nil, err
	}
	cnot, err := qsim.CNOT(1, 0, 2)
	if err != nil {
		return nil, err
	}

	if err := circuit.Add("h(0)", h); err != nil {
		return nil, err
	}
	if err := circuit.Add("cnot(1,0)", cnot); err != nil {
		return nil, err
	}

	return state, circuit.Run(state)
}

// BooleanFunc maps an input register value to a single output bit.
type BooleanFunc func(x int) int

// ConstantFunc always returns bit.
func ConstantFunc(bit int) BooleanFunc {
	return func(int) int { return bit & 1 }
}

/*
BalancedFunc returns the negation of input bit b for an n-qubit DeutschJozsa
run, which is 1 for exactly half of all inputs. Only the n-1 input qubits
give a balanced function, so b must lie in [0, n-1).
*/
func BalancedFunc(b, n int) (BooleanFunc, error) {
	if b < 0 || b >= n-1 {
		return nil, fmt.Errorf("balanced bit %d not in [0,%d): %w", b, n-1, qsim.ErrConfiguration)
	}
	return func(x int) int { return 1 - (x>>b)&1 }, nil
}

/*
DeutschJozsaOracle builds the permutation |x⟩|y⟩ -> |x⟩|y ⊕ f(x)⟩ on n qubits,
with the output bit y on qubit 0 and the input x on qubits 1..n-1. f must
return 0 or 1 and be either constant or balanced over the 2^(n-1) inputs.
*/
func DeutschJozsaOracle(n int, f BooleanFunc) (qsim.Matrix, error) {
	if n < 2 {
		return qsim.Matrix{}, fmt.Errorf("deutsch-jozsa needs at least 2 qubits, got %d: %w", n, qsim.ErrConfiguration)
	}

	inputs := 1 << (n - 1)
	values := make([]int, inputs)
	ones := 0
	for x := range values {
		v := f(x)
		if v != 0 && v != 1 {
			return qsim.Matrix{}, fmt.Errorf("f(%d) = %d is not a bit: %w", x, v, qsim.ErrConfiguration)
		}
		values[x] = v
		ones += v
	}
	if ones != 0 && ones != inputs && 2*ones != inputs {
		return qsim.Matrix{}, fmt.Errorf("f is 1 on %d of %d inputs, neither constant nor balanced: %w", ones, inputs, qsim.ErrConfiguration)
	}

	dim := 1 << n
	gate := qsim.NewMatrix(dim, dim)
	for i := 0; i < dim; i++ {
		gate.Set(i^values[i>>1], i, 1)
	}
	return gate, nil
}

/*
DeutschJozsa runs the algorithm with one output qubit and n-1 input qubits,
and returns the final state. The input register reads all zeros with
probability 1 for a constant f and probability 0 for a balanced f.
*/
func DeutschJozsa(n int, f BooleanFunc, opts ...qsim.StateOption) (*qsim.State, error) {
	oracle, err := DeutschJozsaOracle(n, f)
	if err != nil {
		return nil, err
	}

	flip, err := qsim.X(0, n)
	if err != nil {
		return nil, err
	}
	all, err := HadamardAll(0, n)
	if err != nil {
		return nil, err
	}
	inputs, err := HadamardAll(1, n)
	if err != nil {
		return nil, err
	}

	circuit := qsim.NewCircuit(n)
	for _, st := range []struct {
		name string
		gate qsim.Matrix
	}{
		{"x(output)", flip},
		{"h(all)", all},
		{"oracle", oracle},
		{"h(inputs)", inputs},
	} {
		if err := circuit.Add(st.name, st.gate); err != nil {
			return nil, err
		}
	}

	state, err := qsim.NewState(append(opts, qsim.WithQubits(n))...)
	if err != nil {
		return nil, err
	}
	return state, circuit.Run(state)
}

// InputAllZero is the probability that the input register (qubits 1..n-1)
// reads all zeros, i.e. the basis states 0 and 1.
func InputAllZero(probs []float64) float64 {
	if len(probs) < 2 {
		return 0
	}
	return probs[0] + probs[1]
}

// GroverIterations is ⌊π/4 · √(2^n / marked)⌋.
func GroverIterations(n, marked int) int {
	return int(math.Pi / 4 * math.Sqrt(float64(int(1)<<n)/float64(marked)))
}

// Grover searches for a single key and returns the state after the optimal
// number of oracle and diffusion rounds.
func Grover(n, key int, opts ...qsim.StateOption) (*qsim.State, error) {
	oracle, err := qsim.Oracle(n, qsim.WithKey(key))
	if err != nil {
		return nil, err
	}
	return amplify(n, oracle, GroverIterations(n, 1), opts...)
}

// GroverMarked searches for any key in marked.
func GroverMarked(n int, marked *roaring.Bitmap, opts ...qsim.StateOption) (*qsim.State, error) {
	oracle, err := qsim.MarkedOracle(n, marked)
	if err != nil {
		return nil, err
	}
	return amplify(n, oracle, GroverIterations(n, int(marked.GetCardinality())), opts...)
}

func amplify(n int, oracle qsim.Matrix, iterations int, opts ...qsim.StateOption) (*qsim.State, error) {
	state, err := qsim.NewState(append(opts, qsim.WithQubits(n))...)
	if err != nil {
		return nil, err
	}

	all, err := HadamardAll(0, n)
	if err != nil {
		return nil, err
	}
	if err := state.ApplyGate(all); err != nil {
		return nil, err
	}

	diffusion, err := qsim.Diffusion(state.Amplitudes())
	if err != nil {
		return nil, err
	}

	circuit := qsim.NewCircuit(n)
	for i := 0; i < iterations; i++ {
		if err := circuit.Add(fmt.Sprintf("oracle#%d", i), oracle); err != nil {
			return nil, err
		}
		if err := circuit.Add(fmt.Sprintf("diffusion#%d", i), diffusion); err != nil {
			return nil, err
		}
	}

	return state, circuit.Run(state)
}
