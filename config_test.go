package qsim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		config := NewConfig()

		Convey("It should be valid", func() {
			So(config.Validate(), ShouldBeNil)
			So(config.MaxQubits, ShouldEqual, 12)
		})

		Convey("When loading a YAML file", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "qsim.yaml")

			Convey("Given fields should override the defaults", func() {
				So(os.WriteFile(path, []byte("max_qubits: 6\nworkers: 2\nseed: 7\n"), 0o600), ShouldBeNil)

				loaded, err := LoadConfig(path)
				So(err, ShouldBeNil)
				So(loaded.MaxQubits, ShouldEqual, 6)
				So(loaded.Workers, ShouldEqual, 2)
				So(loaded.Seed, ShouldEqual, uint64(7))
				So(loaded.Tolerance, ShouldEqual, config.Tolerance)

				_, err = NewState(WithQubits(7), WithConfig(loaded))
				So(errors.Is(err, ErrConfiguration), ShouldBeTrue)
			})

			Convey("Invalid limits should be rejected", func() {
				So(os.WriteFile(path, []byte("max_qubits: 0\n"), 0o600), ShouldBeNil)

				_, err := LoadConfig(path)
				So(errors.Is(err, ErrConfiguration), ShouldBeTrue)
			})

			Convey("Malformed YAML should be rejected", func() {
				So(os.WriteFile(path, []byte("max_qubits: [\n"), 0o600), ShouldBeNil)

				_, err := LoadConfig(path)
				So(err, ShouldNotBeNil)
			})

			Convey("A missing file should be rejected", func() {
				_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
				So(err, ShouldNotBeNil)
			})
		})
	})
}
