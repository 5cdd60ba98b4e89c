// Package qsim is a dense state-vector simulator for small quantum circuits.
//
// Gates are full 2^n x 2^n matrices built from per-qubit operators with
// BuildGate; a State holds the 2^n amplitudes and evolves by ApplyGate.
// Qubit 0 is always the least significant bit of a basis-state index.
//
//	state, _ := qsim.NewState(qsim.WithQubits(2))
//	h, _ := qsim.Hadamard(0, 2)
//	cnot, _ := qsim.CNOT(1, 0, 2)
//	_ = state.ApplyGate(h)
//	_ = state.ApplyGate(cnot)
//	state.Probabilities() // [0.5 0 0 0.5]
//
// Measurement takes an explicit random source so runs can be reproduced:
//
//	outcome, _ := state.Measure(rand.New(rand.NewPCG(1, 2)))
package qsim
