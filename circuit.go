package qsim

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

type step struct {
	name string
	gate Matrix
}

// Circuit is an ordered list of gates for a fixed number of qubits.
type Circuit struct {
	n     int
	steps []step
}

func NewCircuit(n int) *Circuit {
	errnie.Info("NewCircuit - qubits %d", n)
	return &Circuit{n: n}
}

// Add appends a gate, rejecting matrices that do not span all n qubits.
func (c *Circuit) Add(name string, gate Matrix) error {
	dim := 1 << c.n
	if gate.rows != dim || gate.cols != dim {
		return fmt.Errorf("gate %s is %dx%d, circuit needs %dx%d: %w", name, gate.rows, gate.cols, dim, dim, ErrDimension)
	}

	c.steps = append(c.steps, step{name: name, gate: gate})
	return nil
}

func (c *Circuit) Len() int { return len(c.steps) }

// Steps returns the gate names in application order.
func (c *Circuit) Steps() []string {
	names := make([]string, len(c.steps))
	for i, st := range c.steps {
		names[i] = st.name
	}
	return names
}

// Run applies every gate to state in order and stops at the first failure.
func (c *Circuit) Run(state *State) error {
	if state.NumQubits() != c.n {
		return fmt.Errorf("circuit has %d qubits, state has %d: %w", c.n, state.NumQubits(), ErrDimension)
	}

	for i, st := range c.steps {
		if err := state.ApplyGate(st.gate); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.name, err)
		}
	}

	errnie.Info("Circuit.Run - applied %d gates on %d qubits", len(c.steps), c.n)
	return nil
}
