package qsim

import (
	"fmt"
	"math"
	"time"

	"github.com/theapemachine/errnie"
)

// Source supplies uniform draws in [0, 1). *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

/*
State is the dense amplitude vector of an n-qubit register. Index i of the
vector is the basis state whose bit q is the value of qubit q, so qubit 0 is
the least significant bit. A State is not safe for concurrent mutation.
*/
type State struct {
	amplitudes Vector
	n          int
	config     *Config
	metrics    *Metrics
}

/*
NewState builds a register from either WithQubits or WithClassicalState.
Supplying both, or neither, is a configuration error.
*/
func NewState(opts ...StateOption) (*State, error) {
	var params stateParams
	for _, opt := range opts {
		opt(&params)
	}

	if (params.n == nil) == (params.classical == nil) {
		return nil, fmt.Errorf("state needs exactly one of qubit count or classical state: %w", ErrConfiguration)
	}

	config := params.config
	if config == nil {
		config = NewConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	bits := params.classical
	if params.n != nil {
		if *params.n < 0 {
			return nil, fmt.Errorf("qubit count %d: %w", *params.n, ErrConfiguration)
		}
		bits = make([]int, *params.n)
	}

	n := len(bits)
	if n < 1 || n > config.MaxQubits {
		return nil, fmt.Errorf("qubit count %d not in [1,%d]: %w", n, config.MaxQubits, ErrConfiguration)
	}

	// Qubit n-1 is the leftmost factor, matching BuildGate.
	amplitudes := Vector{1}
	for q := n - 1; q >= 0; q-- {
		switch bits[q] {
		case 0:
			amplitudes = KronVec(amplitudes, Vector{1, 0})
		case 1:
			amplitudes = KronVec(amplitudes, Vector{0, 1})
		default:
			return nil, fmt.Errorf("qubit %d has classical value %d: %w", q, bits[q], ErrConfiguration)
		}
	}

	errnie.Info("NewState - qubits %d, classical state %v", n, bits)

	return &State{
		amplitudes: amplitudes,
		n:          n,
		config:     config,
		metrics:    params.metrics,
	}, nil
}

func (s *State) NumQubits() int { return s.n }

// Amplitudes returns a copy of the amplitude vector.
func (s *State) Amplitudes() Vector { return s.amplitudes.Clone() }

func (s *State) Norm() float64 { return s.amplitudes.Norm() }

/*
ApplyGate replaces the amplitudes with gate * amplitudes. A gate that is not
2^n x 2^n is rejected and the state is left unchanged. Large registers are
multiplied in parallel row blocks according to the Config.
*/
func (s *State) ApplyGate(gate Matrix) error {
	startTime := time.Now()
	dim := len(s.amplitudes)

	if gate.rows != dim || gate.cols != dim {
		err := fmt.Errorf("gate is %dx%d, state has %d amplitudes: %w", gate.rows, gate.cols, dim, ErrDimension)
		s.record(startTime, false, err)
		return err
	}

	parallel := s.config.Workers > 1 && dim >= s.config.ParallelThreshold

	var (
		next Vector
		err  error
	)
	if parallel {
		next, err = gate.MulVecParallel(s.amplitudes, s.config.Workers)
	} else {
		next, err = gate.MulVec(s.amplitudes)
	}

	s.record(startTime, parallel, err)
	if err != nil {
		return err
	}

	s.amplitudes = next
	return nil
}

func (s *State) record(startTime time.Time, parallel bool, err error) {
	if s.metrics != nil {
		s.metrics.recordGate(startTime, len(s.amplitudes), parallel, err)
	}
}

// Probabilities returns |a|^2 for every amplitude.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

func (s *State) distribution() ([]float64, error) {
	probs := s.Probabilities()

	var total float64
	for _, p := range probs {
		total += p
	}
	if math.Abs(total-1) > s.config.Tolerance {
		return nil, fmt.Errorf("probabilities sum to %.12f: %w", total, ErrNormalization)
	}
	return probs, nil
}

// draw picks an index with probability probs[i] using a single uniform draw.
func draw(probs []float64, rng Source) int {
	r := rng.Float64()

	cumulativeProb := 0.0
	last := 0
	for i, prob := range probs {
		if prob == 0 {
			continue
		}
		cumulativeProb += prob
		last = i
		if r < cumulativeProb {
			return i
		}
	}

	// Rounding left the cumulative sum just under r.
	return last
}

/*
Measure samples one basis state from Probabilities and collapses the register
onto it. The superposition is lost; measuring again returns the same index.
*/
func (s *State) Measure(rng Source) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("measure needs a random source: %w", ErrConfiguration)
	}

	probs, err := s.distribution()
	if err != nil {
		return 0, err
	}

	measuredState := draw(probs, rng)

	collapsedVector := make(Vector, len(s.amplitudes))
	collapsedVector[measuredState] = 1
	s.amplitudes = collapsedVector

	if s.metrics != nil {
		s.metrics.recordMeasurement(measuredState)
	}
	return measuredState, nil
}

// Sample draws shots outcomes without collapsing the state and returns the
// count per basis-state index.
func (s *State) Sample(shots int, rng Source) ([]int, error) {
	if rng == nil {
		return nil, fmt.Errorf("sample needs a random source: %w", ErrConfiguration)
	}
	if shots < 0 {
		return nil, fmt.Errorf("shots %d: %w", shots, ErrConfiguration)
	}

	probs, err := s.distribution()
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(probs))
	for range shots {
		counts[draw(probs, rng)]++
	}
	return counts, nil
}
