package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/slen516-afk/fraudboard/internal/adapters/http/api"
	"github.com/slen516-afk/fraudboard/internal/adapters/repository"
	app "github.com/slen516-afk/fraudboard/internal/app"
	"github.com/slen516-afk/fraudboard/internal/config"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("FRAUDBOARD_ADDR", ":8080")
			_ = os.Setenv("FRAUDBOARD_DB_TABLE", "raw_postings")
			_ = os.Setenv("FRAUDBOARD_MAX_SCATTER_POINTS", "10")
			defer func() {
				_ = os.Unsetenv("FRAUDBOARD_ADDR")
				_ = os.Unsetenv("FRAUDBOARD_DB_TABLE")
				_ = os.Unsetenv("FRAUDBOARD_MAX_SCATTER_POINTS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DBTable, convey.ShouldEqual, "raw_postings")
				convey.So(cfg.MaxScatterPoints, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When opening the store from defaults", func() {
			cfg := config.New()
			store, err := repository.OpenConfig(cfg, repository.WithLogger(logger.Get()))

			convey.Convey("Then a lazy pool is created without dialing", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(store.BreakerState(), convey.ShouldEqual, "closed")
				convey.So(store.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When opening the store with an explicit postgres DSN", func() {
			cfg := config.New()
			cfg.DBDriver = config.DriverPostgres
			cfg.DBDSN = "postgres://u:p@localhost:5432/jobs"
			store, err := repository.OpenConfig(cfg, repository.WithLogger(logger.Get()))

			convey.Convey("Then the DSN is used as given", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the table name is unsafe", func() {
			cfg := config.New()
			cfg.DBTable = "x; DROP TABLE y"
			store, err := repository.OpenConfig(cfg, repository.WithLogger(logger.Get()))

			convey.Convey("Then opening fails", func() {
				convey.So(store, convey.ShouldBeNil)
				convey.So(errors.Is(err, repository.ErrInvalidTable), convey.ShouldBeTrue)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a service wired to a mocked database", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		db, mock, err := sqlmock.New()
		convey.So(err, convey.ShouldBeNil)

		store, err := repository.New(db)
		convey.So(err, convey.ShouldBeNil)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		svc := app.New(app.WithStore(store))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, svc)

		convey.Convey("When the dashboard is requested", func() {
			rows := sqlmock.NewRows(model.RequiredColumns).
				AddRow("Engineer", 0, 1, 1, "Full-time", 0, 1, "US", "IT", "Bachelor's Degree").
				AddRow("Clerk", 1, 0, 0, "Part-time", 1, 1, "GB", "Retail", "High School")
			mock.ExpectQuery("SELECT (.+) FROM temp_raw_data").WillReturnRows(rows)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data", nil))

			convey.Convey("Then a payload is served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"table2"`)
				convey.So(rec.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
				convey.So(mock.ExpectationsWereMet(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the docs are requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

			convey.Convey("Then the docs page is served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the root is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			convey.Convey("Then the liveness message is served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "Backend is running!")
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("FRAUDBOARD_ADDR", "")
			defer func() { _ = os.Unsetenv("FRAUDBOARD_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the service is started without a store", func() {
			convey.So(logger.Init(), convey.ShouldBeNil)
			svc := app.New()

			convey.Convey("Then start fails", func() {
				convey.So(errors.Is(svc.Start(context.Background()), app.ErrNoStore), convey.ShouldBeTrue)
			})
		})
	})
}
