package qsim

import (
	"fmt"
	"os"
	"runtime"

	"github.com/theapemachine/errnie"
	"gopkg.in/yaml.v3"
)

/*
Config holds the simulator limits and tuning knobs. Dense gates cost 16*4^n
bytes, so MaxQubits bounds what NewState accepts.
*/
type Config struct {
	MaxQubits         int     `yaml:"max_qubits"`
	Workers           int     `yaml:"workers"`
	ParallelThreshold int     `yaml:"parallel_threshold"`
	Tolerance         float64 `yaml:"tolerance"`
	Seed              uint64  `yaml:"seed"`
}

func NewConfig() *Config {
	return &Config{
		MaxQubits:         12,
		Workers:           runtime.NumCPU(),
		ParallelThreshold: 1 << 9,
		Tolerance:         1e-8,
		Seed:              42,
	}
}

// LoadConfig reads a YAML file over the defaults from NewConfig.
func LoadConfig(path string) (*Config, error) {
	config := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	errnie.Info("LoadConfig - path %s, max qubits %d, workers %d", path, config.MaxQubits, config.Workers)
	return config, nil
}

// Validate rejects limits the simulator cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.MaxQubits < 1:
		return fmt.Errorf("max_qubits %d: %w", c.MaxQubits, ErrConfiguration)
	case c.Workers < 1:
		return fmt.Errorf("workers %d: %w", c.Workers, ErrConfiguration)
	case c.ParallelThreshold < 1:
		return fmt.Errorf("parallel_threshold %d: %w", c.ParallelThreshold, ErrConfiguration)
	case c.Tolerance <= 0:
		return fmt.Errorf("tolerance %g: %w", c.Tolerance, ErrConfiguration)
	}
	return nil
}
