package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every collector is registered under the huntcast namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.jobsSubmitted.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "huntcast_engine_"), ShouldBeTrue)
				}
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.unknownSpecies.Inc()

			Convey("Then names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_sub_unknown_species_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When registering twice on one registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto panics on the duplicate", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording predictions", func() {
			before := testutil.ToFloat64(globalManager.predictions.WithLabelValues("elk", "feeding"))
			RecordPrediction("elk", "feeding", 0.8)

			Convey("Then the labelled counter increments", func() {
				after := testutil.ToFloat64(globalManager.predictions.WithLabelValues("elk", "feeding"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When recording job lifecycle metrics", func() {
			submitted := testutil.ToFloat64(globalManager.jobsSubmitted)
			duplicate := testutil.ToFloat64(globalManager.jobsDuplicate)
			completed := testutil.ToFloat64(globalManager.jobsCompleted)

			RecordJobSubmitted()
			RecordJobDuplicate()
			RecordJobCompleted()
			UpdateStoreJobs(7)

			So(testutil.ToFloat64(globalManager.jobsSubmitted)-submitted, ShouldEqual, 1)
			So(testutil.ToFloat64(globalManager.jobsDuplicate)-duplicate, ShouldEqual, 1)
			So(testutil.ToFloat64(globalManager.jobsCompleted)-completed, ShouldEqual, 1)
			So(testutil.ToFloat64(globalManager.storeJobs), ShouldEqual, 7)
		})

		Convey("When updating queue gauges", func() {
			UpdateQueueCapacity(100)
			UpdateQueueSize(25)
			UpdateQueueUtilization(0.25)

			So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 100)
			So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 25)
			So(testutil.ToFloat64(globalManager.queueUtilization), ShouldEqual, 0.25)
		})

		Convey("When recording the remaining metrics", func() {
			So(func() {
				RecordAnalysis("report")
				RecordUnknownSpecies()
				RecordComputationLatency("predict", 0.4)
				RecordJobFailed()
				RecordHTTPRequest("movement", "POST", "200")
				RecordHTTPRequestDuration("movement", "POST", "200", 1.5)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(4)
				RecordWorkerProcessingLatency(2)
				RecordWorkerError()
				RecordErrorByComponent("queue", "full")
				RecordErrorByEndpoint("jobs", "POST", "rate_limit")
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("When updating system gauges", func() {
			UpdateSystemMemoryUsage(4096)
			UpdateSystemGoroutineCount(12)

			So(testutil.ToFloat64(globalManager.memoryUsage), ShouldEqual, 4096)
			So(testutil.ToFloat64(globalManager.goroutineCount), ShouldEqual, 12)
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then it exposes the service metrics only", func() {
				So(err, ShouldBeNil)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "huntcast_")
				}
			})
		})
	})
}
