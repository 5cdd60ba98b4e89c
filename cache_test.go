package qsim

import (
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGateCache(t *testing.T) {
	Convey("Given a gate cache", t, func() {
		cache := NewGateCache()

		Convey("It should build the same matrix as the factory", func() {
			cached, err := cache.Get(GateCNOT, 3, 0, 2)
			So(err, ShouldBeNil)

			direct, err := CNOT(0, 2, 3)
			So(err, ShouldBeNil)
			So(cached.ApproxEqual(direct, 0), ShouldBeTrue)

			oracle, err := cache.Get(GateOracle, 2, 3)
			So(err, ShouldBeNil)
			So(oracle.At(3, 3), ShouldEqual, complex(-1, 0))
		})

		Convey("Repeated descriptors should hit", func() {
			_, err := cache.Get(GateH, 2, 0)
			So(err, ShouldBeNil)
			_, err = cache.Get(GateH, 2, 0)
			So(err, ShouldBeNil)
			_, err = cache.Get(GateH, 2, 1)
			So(err, ShouldBeNil)

			hits, misses := cache.Stats()
			So(hits, ShouldEqual, int64(1))
			So(misses, ShouldEqual, int64(2))
			So(cache.Len(), ShouldEqual, 2)
		})

		Convey("Descriptors differing only in argument order should not collide", func() {
			a, _ := cache.Get(GateCNOT, 2, 0, 1)
			b, _ := cache.Get(GateCNOT, 2, 1, 0)
			So(a.ApproxEqual(b, 0), ShouldBeFalse)
		})

		Convey("Invalid requests should fail and not be cached", func() {
			_, err := cache.Get("rx", 2, 0)
			So(errors.Is(err, ErrConfiguration), ShouldBeTrue)

			_, err = cache.Get(GateCNOT, 2, 0)
			So(errors.Is(err, ErrConfiguration), ShouldBeTrue)

			_, err = cache.Get(GateX, 2, 7)
			So(errors.Is(err, ErrIndex), ShouldBeTrue)
			So(cache.Len(), ShouldEqual, 0)
		})

		Convey("Concurrent readers should share one entry", func() {
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = cache.Get(GateSwap, 3, 0, 2)
				}()
			}
			wg.Wait()

			hits, misses := cache.Stats()
			So(cache.Len(), ShouldEqual, 1)
			So(hits+misses, ShouldEqual, int64(16))
		})
	})
}
