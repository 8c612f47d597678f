package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	types "github.com/slen516-afk/fraudboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEmptyPayload(t *testing.T) {
	Convey("Given the empty payload", t, func() {
		p := types.EmptyPayload()

		Convey("When it is encoded", func() {
			raw, err := json.Marshal(p)
			So(err, ShouldBeNil)

			Convey("Then no field is null", func() {
				So(string(raw), ShouldNotContainSubstring, "null")
			})

			Convey("And the top-level key set is exact", func() {
				var top map[string]json.RawMessage
				So(json.Unmarshal(raw, &top), ShouldBeNil)
				So(len(top), ShouldEqual, 5)
				for _, k := range []string{"ranking", "charts", "map", "map_names", "tables"} {
					_, ok := top[k]
					So(ok, ShouldBeTrue)
				}
				So(string(top["map"]), ShouldEqual, "{}")
				So(string(top["tables"]), ShouldEqual, `{"table1":[],"table2":[]}`)
			})

			Convey("And every chart section is present", func() {
				var doc struct {
					Charts map[string]json.RawMessage `json:"charts"`
				}
				So(json.Unmarshal(raw, &doc), ShouldBeNil)
				So(len(doc.Charts), ShouldEqual, 7)
				So(string(doc.Charts["section7"]), ShouldEqual, "[]")
				So(string(doc.Charts["section5"]), ShouldEqual, `{"labels":[],"prodA":[],"prodB":[]}`)
			})
		})
	})
}

func TestRowEncoding(t *testing.T) {
	Convey("Given a table row and a scatter point", t, func() {
		tables := types.Tables{
			Table1: []types.Row{{"Full-time", "3", "75.0%"}},
			Table2: []types.Row{},
		}
		pt := types.ScatterPoint{X: 12.5, Y: 40, Label: "Contract", Count: 4, FraudRate: 25}

		Convey("Then rows encode as three-string arrays", func() {
			raw, err := json.Marshal(tables)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"table1":[["Full-time","3","75.0%"]],"table2":[]}`)
		})

		Convey("Then scatter points carry their optional fields", func() {
			raw, err := json.Marshal(pt)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"x":12.5,"y":40,"label":"Contract","count":4,"fraud_rate":25}`)
		})
	})
}
