package species_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/huntcast/internal/domain/calendar"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/species"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given the default registry", t, func() {
		reg := species.MustDefault()

		Convey("When listing profiles", func() {
			list := reg.List()

			Convey("Then they come back in catalogue order", func() {
				So(list, ShouldHaveLength, 3)
				So(list[0].Species, ShouldEqual, model.Elk)
				So(list[1].Species, ShouldEqual, model.Deer)
				So(list[2].Species, ShouldEqual, model.Moose)
			})
		})

		Convey("When looking up a known species", func() {
			p, err := reg.Lookup(model.Moose)

			So(err, ShouldBeNil)
			So(p.FallMigration, ShouldResemble, calendar.MonthDay{Month: time.October, Day: 31})
		})

		Convey("When resolving a free-form name", func() {
			p, err := reg.Resolve(" DEER ")

			So(err, ShouldBeNil)
			So(p.Species, ShouldEqual, model.Deer)
		})

		Convey("When looking up an unknown species", func() {
			_, err := reg.Lookup("bison")

			Convey("Then it returns ErrUnknownSpecies", func() {
				So(errors.Is(err, species.ErrUnknownSpecies), ShouldBeTrue)
				So(err.Error(), ShouldNotContainSubstring, "did you mean")
			})
		})

		Convey("When looking up a misspelled species", func() {
			_, err := reg.Lookup("mose")

			Convey("Then the error suggests the close match", func() {
				So(errors.Is(err, species.ErrUnknownSpecies), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `did you mean "moose"`)
			})
		})

		Convey("When suggesting", func() {
			s, ok := reg.Suggest("Elks")
			So(ok, ShouldBeTrue)
			So(s, ShouldEqual, model.Elk)

			_, ok = reg.Suggest("")
			So(ok, ShouldBeFalse)

			_, ok = reg.Suggest("pronghorn")
			So(ok, ShouldBeFalse)
		})

		Convey("When asking for a terrain table", func() {
			p, _ := reg.Lookup(model.Elk)
			m, ok := p.TerrainFor(model.Feeding)
			m[model.Meadow] = 0

			Convey("Then a copy is returned", func() {
				So(ok, ShouldBeTrue)
				again, _ := p.TerrainFor(model.Feeding)
				So(again[model.Meadow], ShouldEqual, 0.8)
			})
		})
	})

	Convey("Given invalid profiles", t, func() {
		valid := species.DefaultProfiles()[0]

		Convey("When species are duplicated", func() {
			_, err := species.NewRegistry(valid, valid)
			So(errors.Is(err, species.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When the rut interval is degenerate", func() {
			p := species.DefaultProfiles()[0]
			p.Rut.End = p.Rut.Start

			_, err := species.NewRegistry(p)
			So(errors.Is(err, species.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When an elevation band is missing", func() {
			p := species.DefaultProfiles()[0]
			delete(p.Elevation, calendar.Winter)

			_, err := species.NewRegistry(p)
			So(errors.Is(err, species.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When a terrain weight is out of range", func() {
			p := species.DefaultProfiles()[0]
			p.Terrain[model.Bedding] = model.PreferenceMap{model.Forest: 1.5}

			_, err := species.NewRegistry(p)
			So(errors.Is(err, species.ErrInvalidProfile), ShouldBeTrue)
		})

		Convey("When the species is not modelled", func() {
			p := species.DefaultProfiles()[0]
			p.Species = "bison"

			_, err := species.NewRegistry(p)
			So(errors.Is(err, species.ErrInvalidProfile), ShouldBeTrue)
		})
	})
}

func TestElevationBand(t *testing.T) {
	Convey("Given an elevation band 2000-3500", t, func() {
		b := species.ElevationBand{Min: 2000, Max: 3500}

		So(b.Factor(2800), ShouldAlmostEqual, 800.0/1500.0, 1e-12)
		So(b.Factor(1000), ShouldEqual, 0)
		So(b.Factor(5000), ShouldEqual, 1)
	})

	Convey("Given a zero-width band", t, func() {
		b := species.ElevationBand{Min: 2000, Max: 2000}

		So(b.Factor(2000), ShouldEqual, 1)
		So(b.Factor(1999), ShouldEqual, 0)
	})
}
