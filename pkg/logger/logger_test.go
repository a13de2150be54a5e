package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})

		Convey("When initialized with an unknown format", func() {
			So(Init(WithFormat("xml")), ShouldNotBeNil)
		})
	})
}

func TestLoggerText(t *testing.T) {
	Convey("Given a text logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf)), ShouldBeNil)

		Convey("When logging with typed fields", func() {
			Named("predictor").Info(context.Background(), "prediction computed",
				String("species", "elk"),
				Int("hour", 7),
				Float64("confidence", 0.8),
				Bool("interpolated", true),
				Duration("took", 3*time.Millisecond),
				Error(errors.New("boom")),
			)

			Convey("Then the fields and the caller appear in the line", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "prediction computed")
				So(out, ShouldContainSubstring, "logger=predictor")
				So(out, ShouldContainSubstring, "species=elk")
				So(out, ShouldContainSubstring, "interpolated=true")
				So(out, ShouldContainSubstring, "took=3ms")
				So(out, ShouldContainSubstring, "source=logger_test.go:")
			})
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("WARN"), ShouldBeNil)
			Get().Info(context.Background(), "hidden")
			Get().Warn(context.Background(), "shown")

			Convey("Then info lines are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})

		Convey("When the level is unknown", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a json logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat("json"), WithWriter(&buf)), ShouldBeNil)

		Get().Error(context.Background(), "job failed", String("job_id", "abc"))

		Convey("Then each line is a json object", func() {
			var rec map[string]any
			So(json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec), ShouldBeNil)
			So(rec["msg"], ShouldEqual, "job failed")
			So(rec["job_id"], ShouldEqual, "abc")
			So(rec["level"], ShouldEqual, "ERROR")
		})
	})
}
