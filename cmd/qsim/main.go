package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/algorithms"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		algorithm  = flag.String("algorithm", "bell", "bell, deutsch-jozsa or grover")
		qubits     = flag.Int("qubits", 4, "qubit count for deutsch-jozsa and grover")
		balanced   = flag.Bool("balanced", false, "use a balanced deutsch-jozsa oracle")
		key        = flag.Int("key", 3, "marked basis state for grover")
		shots      = flag.Int("shots", 0, "sample this many outcomes after the circuit")
		seed       = flag.Uint64("seed", 0, "random seed, overrides the config")
	)
	flag.Parse()

	config := qsim.NewConfig()
	if *configPath != "" {
		var err error
		if config, err = qsim.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *seed != 0 {
		config.Seed = *seed
	}

	metrics := qsim.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		log.Fatal(err)
	}

	opts := []qsim.StateOption{qsim.WithConfig(config), qsim.WithMetrics(metrics)}

	var (
		state *qsim.State
		err   error
	)
	switch *algorithm {
	case "bell":
		state, err = algorithms.Bell(opts...)
	case "deutsch-jozsa":
		f := algorithms.ConstantFunc(0)
		if *balanced {
			f, err = algorithms.BalancedFunc(0, *qubits)
		}
		if err == nil {
			state, err = algorithms.DeutschJozsa(*qubits, f, opts...)
		}
	case "grover":
		state, err = algorithms.Grover(*qubits, *key, opts...)
	default:
		err = fmt.Errorf("unknown algorithm %q", *algorithm)
	}
	if err != nil {
		log.Fatal(err)
	}

	printProbabilities(state)

	if *algorithm == "deutsch-jozsa" {
		fmt.Printf("input register all zero: %.4f\n", algorithms.InputAllZero(state.Probabilities()))
	}

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed))
	if *shots > 0 {
		counts, err := state.Sample(*shots, rng)
		if err != nil {
			log.Fatal(err)
		}
		printCounts(state.NumQubits(), counts)
	}

	outcome, err := state.Measure(rng)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("measured: %0*b\n", state.NumQubits(), outcome)

	printMetrics(metrics)

	if err := printFamilies(registry); err != nil {
		log.Fatal(err)
	}
}

func printProbabilities(state *qsim.State) {
	for i, p := range state.Probabilities() {
		if p < 1e-12 {
			continue
		}
		fmt.Printf("|%0*b⟩ %.6f\n", state.NumQubits(), i, p)
	}
}

func printCounts(n int, counts []int) {
	for i, c := range counts {
		if c == 0 {
			continue
		}
		fmt.Printf("|%0*b⟩ %d\n", n, i, c)
	}
}

func printMetrics(metrics *qsim.Metrics) {
	exported := metrics.ExportMetrics()

	keys := make([]string, 0, len(exported))
	for k := range exported {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, exported[k]))
	}
	fmt.Println(strings.Join(parts, " "))
}

// printFamilies gathers the registry and prints one line per sample.
func printFamilies(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
			}

			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				value = float64(metric.GetHistogram().GetSampleCount())
			}

			fmt.Printf("%s{%s} %g\n", family.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}
