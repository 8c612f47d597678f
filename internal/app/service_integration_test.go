package service_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
	service "github.com/slen516-afk/fraudboard/internal/app"
	"github.com/slen516-afk/fraudboard/internal/adapters/repository"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service backed by a SQL store", t, func() {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		So(err, ShouldBeNil)
		store, err := repository.New(db, repository.WithBreakerThreshold(1), repository.WithBreakerTimeout(time.Minute))
		So(err, ShouldBeNil)

		svc := service.New(service.WithStore(store), service.WithFetchTimeout(5*time.Second))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		query := regexp.QuoteMeta("SELECT " + strings.Join(model.RequiredColumns, ", ") + " FROM temp_raw_data")

		Convey("When the table holds postings", func() {
			rows := sqlmock.NewRows(model.RequiredColumns).
				AddRow("Remote Data Entry", 1, 0, 0, "Unknown", 1, 0, "US", nil, nil).
				AddRow("Remote Data Entry", 1, 0, 1, "Full-time", 1, 0, "us", "IT", nil).
				AddRow("Engineer", 0, 1, 1, "Full-time", 0, 1, "DE", "IT", "Bachelor's Degree").
				AddRow("Nurse", 0, 1, 0, "Part-time", 0, 1, "UNSPECIFIED", "Health Care", "High School")
			mock.ExpectQuery(query).WillReturnRows(rows)

			p, err := svc.Dashboard(context.Background())

			Convey("Then the payload is built end to end", func() {
				So(err, ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
				So(p.Ranking.Labels, ShouldResemble, []string{"Remote Data Entry"})
				So(p.Ranking.Values, ShouldResemble, []int{2})
				So(p.Charts.Section5.ProdA[0]+p.Charts.Section5.ProdA[1]+p.Charts.Section5.ProdB[0]+p.Charts.Section5.ProdB[1], ShouldEqual, 4)
				So(p.Map, ShouldResemble, map[string]int{"USA": 2, "DEU": 1})
				So(len(p.Tables.Table2), ShouldEqual, 6)
			})

			Convey("And it encodes with the exact key set", func() {
				raw, err := json.Marshal(p)
				So(err, ShouldBeNil)
				var top map[string]json.RawMessage
				So(json.Unmarshal(raw, &top), ShouldBeNil)
				So(len(top), ShouldEqual, 5)
				So(string(raw), ShouldNotContainSubstring, "null")
			})
		})

		Convey("When the upstream keeps failing", func() {
			mock.ExpectQuery(query).WillReturnError(errors.New("lost connection"))
			_, err1 := svc.Dashboard(context.Background())
			_, err2 := svc.Dashboard(context.Background())

			Convey("Then the breaker turns failures into unavailability", func() {
				So(errors.Is(err1, repository.ErrFetch), ShouldBeTrue)
				So(errors.Is(err2, repository.ErrUnavailable), ShouldBeTrue)
				So(svc.GetStats()["breakerState"], ShouldEqual, "open")
			})
		})

		Convey("When health is checked", func() {
			mock.ExpectPing()

			Convey("Then the store is pinged", func() {
				So(svc.Health(context.Background()), ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})
	})
}
