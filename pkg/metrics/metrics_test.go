package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)
			})

			Convey("And metric names should carry namespace, subsystem and prefix", func() {
				manager.payloadsBuilt.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_pfx_payloads_built_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When invalid option values are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithRefreshInterval(-time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "fraudboard")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a built payload", func() {
			before := testutil.ToFloat64(globalManager.payloadsBuilt)
			RecordPayloadBuilt(200, 50, 12.5)

			Convey("Then the counters and gauges should move", func() {
				So(testutil.ToFloat64(globalManager.payloadsBuilt), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.recordsAggregated), ShouldEqual, 200)
				So(testutil.ToFloat64(globalManager.fraudRatio), ShouldEqual, 0.25)
			})
		})

		Convey("When recording an empty payload", func() {
			RecordPayloadBuilt(0, 0, 1)

			Convey("Then the fraud ratio is zero rather than NaN", func() {
				So(testutil.ToFloat64(globalManager.fraudRatio), ShouldEqual, 0)
			})
		})

		Convey("When recording store activity", func() {
			rowsBefore := testutil.ToFloat64(globalManager.rowsFetched)
			errBefore := testutil.ToFloat64(globalManager.fetchErrors)
			RecordFetch(42, 3.5)
			RecordFetchError()
			RecordInsert(10, 2)
			UpdateBreakerState(BreakerOpen)
			RecordBreakerRejection()

			Convey("Then store metrics should reflect it", func() {
				So(testutil.ToFloat64(globalManager.rowsFetched), ShouldEqual, rowsBefore+42)
				So(testutil.ToFloat64(globalManager.fetchErrors), ShouldEqual, errBefore+1)
				So(testutil.ToFloat64(globalManager.breakerState), ShouldEqual, BreakerOpen)
			})
			UpdateBreakerState(BreakerClosed)
		})

		Convey("When recording schema errors", func() {
			RecordSchemaError("country")

			Convey("Then the field label is used", func() {
				So(testutil.ToFloat64(globalManager.schemaErrors.WithLabelValues("country")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordHTTPRequest("data", "GET", "200")
					RecordHTTPRequestDuration("data", "GET", "200", 15.0)
					RecordErrorByComponent("repository", "upstream")
					RecordErrorByType("server_error", "high")
					RecordErrorByEndpoint("data", "GET", "server_error")
					RecordErrorLatency("http", "server_error", 4)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			families, err := GetRegistry().Gather()

			Convey("Then only fraudboard metrics are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "fraudboard_dashboard_"), ShouldBeTrue)
				}
			})
		})
	})
}
