package calendar_test

import (
	"testing"
	"time"

	"github.com/okian/huntcast/internal/domain/calendar"
	. "github.com/smartystreets/goconvey/convey"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDepth(t *testing.T) {
	Convey("Given a non-wrapping interval Sep 1 to Oct 15", t, func() {
		iv := calendar.Interval{
			Start: calendar.MonthDay{Month: time.September, Day: 1},
			End:   calendar.MonthDay{Month: time.October, Day: 15},
		}

		Convey("When the date is the start", func() {
			So(calendar.Depth(date(2023, time.September, 1), iv), ShouldEqual, 0)
		})

		Convey("When the date is the end", func() {
			So(calendar.Depth(date(2023, time.October, 15), iv), ShouldEqual, 1)
		})

		Convey("When the date is Sep 20", func() {
			So(calendar.Depth(date(2023, time.September, 20), iv), ShouldAlmostEqual, 19.0/44.0, 1e-12)
		})

		Convey("When the date is outside", func() {
			So(calendar.Depth(date(2023, time.August, 31), iv), ShouldEqual, 0)
			So(calendar.Depth(date(2023, time.October, 16), iv), ShouldEqual, 0)
		})
	})

	Convey("Given an interval that wraps New Year", t, func() {
		iv := calendar.Interval{
			Start: calendar.MonthDay{Month: time.December, Day: 1},
			End:   calendar.MonthDay{Month: time.February, Day: 1},
		}

		So(iv.Wraps(2023), ShouldBeTrue)

		Convey("When the date is Jan 1", func() {
			Convey("Then the depth counts from December", func() {
				So(calendar.Depth(date(2023, time.January, 1), iv), ShouldAlmostEqual, 31.0/62.0, 1e-12)
			})
		})

		Convey("When the date is Dec 1", func() {
			So(calendar.Depth(date(2023, time.December, 1), iv), ShouldEqual, 0)
		})

		Convey("When the date is mid summer", func() {
			So(calendar.Depth(date(2023, time.July, 1), iv), ShouldEqual, 0)
		})
	})

	Convey("Given a degenerate interval", t, func() {
		md := calendar.MonthDay{Month: time.March, Day: 3}
		iv := calendar.Interval{Start: md, End: md}

		Convey("Then every date has depth 0", func() {
			So(iv.Degenerate(2023), ShouldBeTrue)
			So(calendar.Depth(date(2023, time.March, 3), iv), ShouldEqual, 0)
		})
	})

	Convey("Given every day of a year", t, func() {
		iv := calendar.Interval{
			Start: calendar.MonthDay{Month: time.November, Day: 10},
			End:   calendar.MonthDay{Month: time.January, Day: 20},
		}
		start := date(2024, time.January, 1)

		Convey("Then depth stays within [0,1]", func() {
			for i := 0; i < 366; i++ {
				d := calendar.Depth(start.AddDate(0, 0, i), iv)
				So(d, ShouldBeBetweenOrEqual, 0, 1)
			}
		})
	})
}

func TestMonthWindow(t *testing.T) {
	Convey("Given month windows", t, func() {
		Convey("When the start is Apr 1", func() {
			iv := calendar.MonthWindow(2023, calendar.MonthDay{Month: time.April, Day: 1})
			So(iv.End, ShouldResemble, calendar.MonthDay{Month: time.May, Day: 1})
		})

		Convey("When the start is Oct 31", func() {
			iv := calendar.MonthWindow(2023, calendar.MonthDay{Month: time.October, Day: 31})

			Convey("Then the end normalizes past the short month", func() {
				So(iv.End, ShouldResemble, calendar.MonthDay{Month: time.December, Day: 1})
			})
		})

		Convey("When the start is Dec 15", func() {
			iv := calendar.MonthWindow(2023, calendar.MonthDay{Month: time.December, Day: 15})

			Convey("Then the window wraps into January", func() {
				So(iv.End, ShouldResemble, calendar.MonthDay{Month: time.January, Day: 15})
				So(iv.Wraps(2023), ShouldBeTrue)
			})
		})
	})
}

func TestSeasonOf(t *testing.T) {
	Convey("Given dates across the year", t, func() {
		So(calendar.SeasonOf(date(2023, time.March, 31)), ShouldEqual, calendar.Winter)
		So(calendar.SeasonOf(date(2023, time.April, 1)), ShouldEqual, calendar.Summer)
		So(calendar.SeasonOf(date(2023, time.September, 30)), ShouldEqual, calendar.Summer)
		So(calendar.SeasonOf(date(2023, time.October, 1)), ShouldEqual, calendar.Winter)
	})
}
