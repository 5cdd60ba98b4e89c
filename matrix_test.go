package qsim

import (
	"errors"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func randomMatrix(rng *rand.Rand, rows, cols int) Matrix {
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, complex(rng.NormFloat64(), rng.NormFloat64()))
		}
	}
	return m
}

func TestMatrix(t *testing.T) {
	Convey("Given dense complex matrices", t, func() {
		Convey("NewMatrixFrom should reject ragged rows", func() {
			_, err := NewMatrixFrom([][]complex128{{1, 2}, {3}})
			So(errors.Is(err, ErrShape), ShouldBeTrue)

			_, err = NewMatrixFrom(nil)
			So(errors.Is(err, ErrShape), ShouldBeTrue)
		})

		Convey("Kron should put the second factor on the fastest index", func() {
			a, _ := NewMatrixFrom([][]complex128{{1, 2}, {3, 4}})
			b, _ := NewMatrixFrom([][]complex128{{0, 5}, {6, 7}})

			k := Kron(a, b)
			So(k.Rows(), ShouldEqual, 4)
			So(k.Cols(), ShouldEqual, 4)
			So(k.At(0, 1), ShouldEqual, complex(5, 0))
			So(k.At(1, 0), ShouldEqual, complex(6, 0))
			So(k.At(0, 3), ShouldEqual, complex(10, 0))
			So(k.At(3, 3), ShouldEqual, complex(28, 0))
			So(k.At(2, 1), ShouldEqual, complex(15, 0))
		})

		Convey("KronVec should match the basis-state ordering", func() {
			v := KronVec(Vector{0, 1}, Vector{1, 0})
			So(v, ShouldResemble, Vector{0, 0, 1, 0})
		})

		Convey("Add, Sub and Mul should check shapes", func() {
			a := Identity(2)
			b := Identity(4)

			_, err := a.Add(b)
			So(errors.Is(err, ErrDimension), ShouldBeTrue)
			_, err = a.Sub(b)
			So(errors.Is(err, ErrDimension), ShouldBeTrue)
			_, err = a.Mul(b)
			So(errors.Is(err, ErrDimension), ShouldBeTrue)
			_, err = a.MulVec(Vector{1, 0, 0})
			So(errors.Is(err, ErrDimension), ShouldBeTrue)
		})

		Convey("Dagger should conjugate and transpose", func() {
			m, _ := NewMatrixFrom([][]complex128{{1, 2i}, {3, 4 + 1i}})
			d := m.Dagger()
			So(d.At(0, 1), ShouldEqual, complex(3, 0))
			So(d.At(1, 0), ShouldEqual, -2i)
			So(d.At(1, 1), ShouldEqual, 4-1i)
		})

		Convey("Outer should conjugate the bra", func() {
			o := Outer(Vector{1, 1i}, Vector{1, 1i})
			So(o.At(0, 1), ShouldEqual, -1i)
			So(o.At(1, 0), ShouldEqual, 1i)
			So(o.At(1, 1), ShouldEqual, complex(1, 0))
		})

		Convey("Clone should not share storage", func() {
			m := Identity(2)
			c := m.Clone()
			c.Set(0, 0, 7)
			So(m.At(0, 0), ShouldEqual, complex(1, 0))
		})

		Convey("MulVecParallel should equal MulVec", func() {
			rng := rand.New(rand.NewPCG(1, 2))
			m := randomMatrix(rng, 37, 37)
			v := make(Vector, 37)
			for i := range v {
				v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}

			serial, err := m.MulVec(v)
			So(err, ShouldBeNil)

			for _, workers := range []int{0, 1, 2, 3, 8, 64} {
				parallel, err := m.MulVecParallel(v, workers)
				So(err, ShouldBeNil)
				So(parallel.ApproxEqual(serial, 1e-12), ShouldBeTrue)
			}
		})

		Convey("Vector norm should be Euclidean", func() {
			So(Vector{3, 4i}.Norm(), ShouldAlmostEqual, 5.0, 1e-12)
		})
	})
}
