package behavior_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/okian/huntcast/internal/domain/behavior"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/species"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFactors(t *testing.T) {
	Convey("Given a behavior model over the default registry", t, func() {
		m := behavior.NewModel(species.MustDefault())

		Convey("When computing elk factors on Sep 20 at 2800 m", func() {
			f, err := m.Factors(model.Elk, time.Date(2023, time.September, 20, 12, 0, 0, 0, time.UTC), 2800)

			Convey("Then the rut is under way and the summer band applies", func() {
				So(err, ShouldBeNil)
				So(f.Breeding, ShouldAlmostEqual, 19.0/44.0, 1e-9)
				So(f.Elevation, ShouldAlmostEqual, 0.5333, 1e-3)
				So(f.BirthSeason, ShouldEqual, 0)
				So(f.Migration, ShouldEqual, 0)
			})
		})

		Convey("When computing deer factors on Nov 15", func() {
			f, err := m.Factors(model.Deer, time.Date(2023, time.November, 15, 12, 0, 0, 0, time.UTC), 1500)

			Convey("Then the rut is about half way", func() {
				So(err, ShouldBeNil)
				So(f.Breeding, ShouldAlmostEqual, 0.5, 0.01)
				So(f.Elevation, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When computing moose factors inside the fall migration month", func() {
			f, err := m.Factors(model.Moose, time.Date(2023, time.November, 15, 12, 0, 0, 0, time.UTC), 2000)

			Convey("Then the Oct 31 window runs to Dec 1", func() {
				So(err, ShouldBeNil)
				So(f.Migration, ShouldAlmostEqual, 15.0/31.0, 1e-9)
			})
		})

		Convey("When computing elk activity at dawn", func() {
			f, err := m.Factors(model.Elk, time.Date(2023, time.June, 1, 6, 30, 0, 0, time.UTC), 2500)

			So(err, ShouldBeNil)
			So(f.Activity, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("When the species is unknown", func() {
			_, err := m.Factors("bison", time.Now(), 2000)

			Convey("Then ErrUnknownSpecies is returned", func() {
				So(errors.Is(err, species.ErrUnknownSpecies), ShouldBeTrue)
			})
		})

		Convey("When fuzzing dates and elevations", func() {
			rng := rand.New(rand.NewSource(42))
			base := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

			Convey("Then every factor stays in [0,1]", func() {
				for i := 0; i < 500; i++ {
					at := base.Add(time.Duration(rng.Int63n(int64(2 * 365 * 24 * time.Hour))))
					elev := rng.Float64()*6000 - 1000
					for _, sp := range model.AllSpecies() {
						f, err := m.Factors(sp, at, elev)
						So(err, ShouldBeNil)
						for _, v := range []float64{f.Breeding, f.BirthSeason, f.Migration, f.Elevation, f.Activity} {
							So(v, ShouldBeBetweenOrEqual, 0, 1)
						}
					}
				}
			})
		})
	})
}
