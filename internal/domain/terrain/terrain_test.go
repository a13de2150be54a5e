package terrain_test

import (
	"math/rand"
	"testing"

	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/terrain"
	"github.com/okian/huntcast/internal/domain/weather"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAdjuster(t *testing.T) {
	Convey("Given the default adjuster", t, func() {
		a := terrain.NewAdjuster()
		base := model.PreferenceMap{model.Meadow: 0.8, model.ForestEdge: 0.7, model.Forest: 0.4, model.Alpine: 0.3}

		Convey("Then the rules run in a fixed order", func() {
			So(a.RuleNames(), ShouldResemble, []string{"hot", "windy", "rain", "breeding", "migration"})
		})

		Convey("When no rule fires", func() {
			got := a.Adjust(base, weather.Observation{}, model.BehaviorFactors{})

			Convey("Then the base table is only normalized", func() {
				So(got.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
				So(got[model.Meadow], ShouldAlmostEqual, 0.8/2.2, 1e-9)
				So(base[model.Meadow], ShouldEqual, 0.8)
			})
		})

		Convey("When it is hot", func() {
			got := a.Adjust(base, weather.Observation{Temperature: weather.Float(85)}, model.BehaviorFactors{})

			Convey("Then forest gains on meadow", func() {
				total := 0.8*0.8 + 0.7 + 0.4*1.2 + 0.3
				So(got[model.Forest], ShouldAlmostEqual, 0.48/total, 1e-9)
				So(got[model.Meadow], ShouldAlmostEqual, 0.64/total, 1e-9)
			})
		})

		Convey("When the wind is strong and it rains", func() {
			obs := weather.Observation{
				WindSpeed:     weather.Float(20),
				Precipitation: &weather.Precipitation{Amount: 0.3, Type: weather.PrecipRain},
			}
			got := a.Adjust(base, obs, model.BehaviorFactors{})

			Convey("Then both weather rules compound", func() {
				forest := 0.4 * 1.3 * 1.2
				meadow := 0.8 * 0.7 * 0.8
				edge := 0.7 * 1.1
				total := forest + meadow + edge + 0.3
				So(got[model.Forest], ShouldAlmostEqual, forest/total, 1e-9)
				So(got[model.Meadow], ShouldAlmostEqual, meadow/total, 1e-9)
			})
		})

		Convey("When breeding and migration are both high", func() {
			got := a.Adjust(base, weather.Observation{}, model.BehaviorFactors{Breeding: 0.9, Migration: 0.9})

			Convey("Then meadow and forest edge gain", func() {
				meadow := 0.8 * 1.2 * 1.1
				edge := 0.7 * 1.1 * 1.2
				total := meadow + edge + 0.4 + 0.3
				So(got[model.Meadow], ShouldAlmostEqual, meadow/total, 1e-9)
				So(got[model.ForestEdge], ShouldAlmostEqual, edge/total, 1e-9)
			})
		})

		Convey("When a rule targets a terrain absent from the table", func() {
			riparian := model.PreferenceMap{model.Riparian: 0.9, model.Forest: 0.6}
			got := a.Adjust(riparian, weather.Observation{Temperature: weather.Float(90)}, model.BehaviorFactors{})

			Convey("Then no key is added", func() {
				So(got, ShouldHaveLength, 2)
				_, ok := got[model.Meadow]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When fuzzing weather and factors", func() {
			rng := rand.New(rand.NewSource(11))
			types := []weather.PrecipitationType{weather.PrecipNone, weather.PrecipRain, weather.PrecipSnow}

			Convey("Then every adjusted map sums to one", func() {
				for i := 0; i < 500; i++ {
					obs := weather.Observation{
						Temperature:   weather.Float(rng.Float64()*120 - 20),
						WindSpeed:     weather.Float(rng.Float64() * 40),
						Precipitation: &weather.Precipitation{Type: types[rng.Intn(len(types))]},
					}
					f := model.BehaviorFactors{Breeding: rng.Float64(), Migration: rng.Float64()}
					got := a.Adjust(base, obs, f)
					So(got.Sum(), ShouldAlmostEqual, 1.0, 1e-9)
				}
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given maps with no positive weight", t, func() {
		got := terrain.Normalize(model.PreferenceMap{model.Forest: 0, model.Meadow: -1})

		Convey("Then each terrain gets an equal share", func() {
			So(got[model.Forest], ShouldEqual, 0.5)
			So(got[model.Meadow], ShouldEqual, 0.5)
		})
	})

	Convey("Given an empty map", t, func() {
		So(terrain.Normalize(model.PreferenceMap{}), ShouldBeEmpty)
	})
}

func TestCustomRules(t *testing.T) {
	Convey("Given an adjuster with a custom rule", t, func() {
		zero := terrain.Rule{
			Name: "zero",
			Apply: func(_ weather.Observation, _ model.BehaviorFactors, m model.PreferenceMap) model.PreferenceMap {
				out := m.Clone()
				for k := range out {
					out[k] = 0
				}
				return out
			},
		}
		a := terrain.NewAdjuster(zero)

		So(a.RuleNames(), ShouldResemble, []string{"zero"})
		got := a.Adjust(model.PreferenceMap{model.Forest: 1, model.Alpine: 1, model.Meadow: 2, model.Riparian: 3}, weather.Observation{}, model.BehaviorFactors{})
		So(got[model.Riparian], ShouldEqual, 0.25)
	})
}
