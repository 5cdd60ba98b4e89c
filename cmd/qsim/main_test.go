package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/algorithms"
)

func TestPrintFamilies(t *testing.T) {
	Convey("Given metrics registered after a Bell run", t, func() {
		metrics := qsim.NewMetrics()
		registry := prometheus.NewRegistry()
		So(metrics.Register(registry), ShouldBeNil)

		_, err := algorithms.Bell(qsim.WithMetrics(metrics))
		So(err, ShouldBeNil)

		Convey("The registry should gather and print without error", func() {
			So(printFamilies(registry), ShouldBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
