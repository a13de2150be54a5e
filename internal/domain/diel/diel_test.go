package diel_test

import (
	"testing"
	"time"

	"github.com/okian/huntcast/internal/domain/diel"
	. "github.com/smartystreets/goconvey/convey"
)

func at(h, m int) time.Time {
	return time.Date(2023, time.October, 1, h, m, 0, 0, time.UTC)
}

func TestActivityWeights(t *testing.T) {
	Convey("Given the diel curves", t, func() {
		Convey("When it is 06:30", func() {
			w := diel.ActivityWeights(at(6, 30))

			Convey("Then dawn peaks and day has not started", func() {
				So(w.Dawn, ShouldAlmostEqual, 1.0, 1e-12)
				So(w.Day, ShouldAlmostEqual, 0, 1e-12)
				So(w.Night, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When it is 13:00", func() {
			w := diel.ActivityWeights(at(13, 0))

			Convey("Then day peaks and night is zero", func() {
				So(w.Day, ShouldAlmostEqual, 1.0, 1e-12)
				So(w.Night, ShouldAlmostEqual, 0, 1e-12)
			})
		})

		Convey("When it is 19:30", func() {
			So(diel.ActivityWeights(at(19, 30)).Dusk, ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("When it is 02:00", func() {
			w := diel.ActivityWeights(at(2, 0))

			Convey("Then it is fully night", func() {
				So(w.Day, ShouldEqual, 0)
				So(w.Night, ShouldEqual, 1)
			})
		})

		Convey("When sweeping every minute of the day", func() {
			Convey("Then every weight stays in [0,1]", func() {
				for m := 0; m < 24*60; m++ {
					w := diel.ActivityWeights(at(m/60, m%60))
					for _, v := range []float64{w.Dawn, w.Dusk, w.Day, w.Night} {
						So(v, ShouldBeBetweenOrEqual, 0, 1)
					}
				}
			})
		})
	})
}

func TestWeightsMax(t *testing.T) {
	Convey("Given a set of weights", t, func() {
		w := diel.Weights{Dawn: 0.2, Dusk: 0.6, Day: 0.9, Night: 0.1}

		So(w.Max([]diel.Period{diel.Dawn, diel.Dusk}), ShouldEqual, 0.6)
		So(w.Max([]diel.Period{diel.Day, diel.Night}), ShouldEqual, 0.9)
		So(w.Max(nil), ShouldEqual, 0)
		So(w.Of("noon"), ShouldEqual, 0)
	})
}
