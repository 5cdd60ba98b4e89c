package qsim

type stateParams struct {
	n         *int
	classical []int
	config    *Config
	metrics   *Metrics
}

// StateOption configures NewState.
type StateOption func(*stateParams)

// WithQubits starts every one of n qubits in |0⟩.
func WithQubits(n int) StateOption {
	return func(p *stateParams) {
		p.n = &n
	}
}

// WithClassicalState starts in the basis state whose qubit i holds bits[i].
func WithClassicalState(bits ...int) StateOption {
	return func(p *stateParams) {
		p.classical = append(make([]int, 0, len(bits)), bits...)
	}
}

func WithConfig(config *Config) StateOption {
	return func(p *stateParams) {
		p.config = config
	}
}

func WithMetrics(metrics *Metrics) StateOption {
	return func(p *stateParams) {
		p.metrics = metrics
	}
}
