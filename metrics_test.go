package qsim

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given metrics attached to a state", t, func() {
		metrics := NewMetrics()
		state, err := NewState(WithQubits(2), WithMetrics(metrics))
		So(err, ShouldBeNil)

		h, _ := Hadamard(0, 2)
		wide, _ := Hadamard(0, 3)

		So(state.ApplyGate(h), ShouldBeNil)
		So(state.ApplyGate(h), ShouldBeNil)
		So(state.ApplyGate(wide), ShouldNotBeNil)
		_, err = state.Measure(fixedSource(0.1))
		So(err, ShouldBeNil)

		Convey("The counters should reflect what happened", func() {
			exported := metrics.ExportMetrics()
			So(exported["gates_applied"], ShouldEqual, int64(2))
			So(exported["gate_errors"], ShouldEqual, int64(1))
			So(exported["measurements"], ShouldEqual, int64(1))
			So(metrics.P99ApplyLatency, ShouldBeGreaterThanOrEqualTo, metrics.P95ApplyLatency)
		})

		Convey("The collectors should register and gather", func() {
			registry := prometheus.NewRegistry()
			So(metrics.Register(registry), ShouldBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool)
			for _, family := range families {
				names[family.GetName()] = true
			}
			t.Log(spew.Sdump(names))

			So(names["qsim_gates_applied_total"], ShouldBeTrue)
			So(names["qsim_measurements_total"], ShouldBeTrue)
			So(names["qsim_gate_apply_latency_seconds"], ShouldBeTrue)

			Convey("Registering twice should fail", func() {
				So(metrics.Register(registry), ShouldNotBeNil)
			})
		})
	})

	Convey("Given more gate timings than the latency window holds", t, func() {
		metrics := NewMetrics()
		start := time.Now()
		for i := 0; i < metrics.windowSize+5; i++ {
			metrics.recordGate(start, 4, false, nil)
		}

		Convey("Only the most recent timings should be kept", func() {
			So(len(metrics.latencies), ShouldEqual, metrics.windowSize)
			So(metrics.GatesApplied, ShouldEqual, int64(metrics.windowSize+5))
			So(metrics.P99ApplyLatency, ShouldBeGreaterThanOrEqualTo, metrics.P95ApplyLatency)
			So(metrics.P95ApplyLatency, ShouldBeGreaterThan, time.Duration(0))
		})
	})
}
