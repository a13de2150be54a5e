package loadgen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/huntcast/internal/adapters/http/api"
	service "github.com/okian/huntcast/internal/app"
	"github.com/okian/huntcast/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestGenerateSubmissions(t *testing.T) {
	Convey("Given a generator configuration", t, func() {
		ctx := context.Background()
		cfg := &Config{NumJobs: 40, ForecastLen: 4}
		st := &Stats{}

		Convey("When no duplicates are requested", func() {
			subs, err := generateSubmissions(ctx, cfg, st)
			So(err, ShouldBeNil)

			Convey("Then every request id is unique", func() {
				So(subs, ShouldHaveLength, 40)
				So(st.JobsGenerated, ShouldEqual, 40)
				seen := map[string]bool{}
				for _, s := range subs {
					So(seen[s.RequestID], ShouldBeFalse)
					seen[s.RequestID] = true
				}
			})

			Convey("And every observation is fully populated", func() {
				s := subs[0]
				So(s.Forecast, ShouldHaveLength, 4)
				So(s.Current.Temperature, ShouldNotBeNil)
				So(s.Current.Pressure, ShouldNotBeNil)
				So(s.Current.WindDirection, ShouldNotBeEmpty)
				So(s.Forecast[1].Timestamp.After(s.Forecast[0].Timestamp), ShouldBeTrue)
			})
		})

		Convey("When every submission after the first is a replay", func() {
			cfg.DuplicateRate = 1
			subs, err := generateSubmissions(ctx, cfg, st)
			So(err, ShouldBeNil)

			Convey("Then all share the first request id", func() {
				for _, s := range subs {
					So(s.RequestID, ShouldEqual, subs[0].RequestID)
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := generateSubmissions(cctx, cfg, st)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRandomObservation(t *testing.T) {
	Convey("Given random observations", t, func() {
		ts := time.Date(2024, 10, 1, 6, 0, 0, 0, time.UTC)
		for i := 0; i < 200; i++ {
			o := randomObservation(ts)
			So(*o.Temperature, ShouldBeBetweenOrEqual, temperatureMin, temperatureMin+temperatureRange)
			So(*o.WindSpeed, ShouldBeBetweenOrEqual, 0.0, windMax)
			So(*o.Humidity, ShouldBeBetweenOrEqual, 0.0, 100.0)
			So(o.Timestamp, ShouldEqual, ts)
			if o.Precipitation.Wet() && *o.Temperature < snowBelow {
				So(string(o.Precipitation.Type), ShouldEqual, "snow")
			}
		}
	})
}

func TestVerification(t *testing.T) {
	Convey("Given submission outcomes", t, func() {
		a := Submission{RequestID: "a"}
		b := Submission{RequestID: "b"}

		Convey("When replays resolve to the original job", func() {
			outcomes := []Outcome{
				{Submission: a, JobID: "j1"},
				{Submission: b, JobID: "j2"},
				{Submission: a, JobID: "j1", Duplicate: true},
			}
			So(duplicateDrift(outcomes), ShouldEqual, 0)
			So(uniqueJobIDs(outcomes), ShouldResemble, []string{"j1", "j2"})
		})

		Convey("When a replay resolves elsewhere", func() {
			outcomes := []Outcome{
				{Submission: a, JobID: "j1"},
				{Submission: a, JobID: "j9"},
				{Submission: b},
			}
			So(duplicateDrift(outcomes), ShouldEqual, 1)

			st := &Stats{JobsCompleted: 1}
			err := verifyResults(context.Background(), outcomes, []Result{{JobID: "j1", Status: statusDone}}, st)
			So(errors.Is(err, ErrDuplicateDrift), ShouldBeTrue)
		})

		Convey("When nothing completed", func() {
			st := &Stats{}
			err := verifyResults(context.Background(), nil, []Result{{JobID: "j1", Status: statusTimeout}}, st)
			So(err, ShouldEqual, ErrNoCompletions)

			So(verifyResults(context.Background(), nil, nil, st), ShouldEqual, ErrNoJobs)
		})

		Convey("When summarizing finished jobs", func() {
			st := &Stats{}
			summarize([]Result{
				{Status: statusDone, CurrentScore: 40, Latency: 10 * time.Millisecond},
				{Status: statusDone, CurrentScore: 60, Latency: 30 * time.Millisecond},
				{Status: statusFailed, CurrentScore: 0, Latency: time.Second},
			}, st)

			So(st.MeanScore, ShouldEqual, 50)
			So(st.MedianLatency, ShouldEqual, 20*time.Millisecond)
			So(st.P95Latency, ShouldBeGreaterThanOrEqualTo, 20*time.Millisecond)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running huntcast API", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(64))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		out := filepath.Join(t.TempDir(), "subs", "jobs.json")
		cfg := &Config{
			BaseURL:       srv.URL,
			NumJobs:       30,
			DuplicateRate: 0.3,
			ForecastLen:   3,
			Workers:       4,
			Timeout:       5 * time.Second,
			PollInterval:  10 * time.Millisecond,
			PollDeadline:  10 * time.Second,
			OutputFile:    out,
		}

		Convey("When a load run completes", func() {
			st, err := Run(ctx, cfg)
			So(err, ShouldBeNil)

			Convey("Then every submission is accounted for", func() {
				So(st.JobsSubmitted, ShouldEqual, 30)
				So(st.JobsAccepted+st.JobsDuplicate+st.JobsRejected, ShouldEqual, 30)
				So(st.JobsErrored, ShouldEqual, 0)
				So(st.DuplicateDrift, ShouldEqual, 0)
				So(st.JobsCompleted, ShouldEqual, st.JobsAccepted)
				So(st.JobsTimedOut, ShouldEqual, 0)
			})

			Convey("And the submissions are written to disk", func() {
				data, err := os.ReadFile(out)
				So(err, ShouldBeNil)
				var subs []Submission
				So(json.Unmarshal(data, &subs), ShouldBeNil)
				So(subs, ShouldHaveLength, 30)
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		cfg := &Config{BaseURL: "http://127.0.0.1:1", NumJobs: 1, Timeout: 200 * time.Millisecond}
		_, err := Run(context.Background(), cfg)
		So(err, ShouldNotBeNil)
	})
}
