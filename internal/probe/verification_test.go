package probe

import (
	"errors"
	"testing"

	"github.com/slen516-afk/fraudboard/internal/domain/aggregate"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func builtPayload(count int, ratio float64, seed uint64) *types.Payload {
	p, err := aggregate.Build(model.NewTable(Generate(count, ratio, seed)))
	if err != nil {
		panic(err)
	}
	return p
}

func TestVerify(t *testing.T) {
	Convey("Given payloads built from generated postings", t, func() {
		Convey("When the payload comes straight from the aggregator", func() {
			Convey("Then every invariant holds", func() {
				So(Verify(builtPayload(500, 0.2, 11)), ShouldBeNil)
				So(Verify(builtPayload(40, 0, 12)), ShouldBeNil)
				So(Verify(builtPayload(40, 1, 13)), ShouldBeNil)
				So(Verify(types.EmptyPayload()), ShouldBeNil)
			})
		})

		Convey("When section5 no longer adds up to section1", func() {
			p := builtPayload(200, 0.2, 1)
			p.Charts.Section5.ProdA[0]++
			err := Verify(p)

			Convey("Then the mismatch is reported", func() {
				So(errors.Is(err, ErrInvariant), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "section1 total")
			})
		})

		Convey("When a lift score is out of range", func() {
			p := builtPayload(200, 0.2, 1)
			p.Tables.Table2 = []types.Row{{"No company logo", "3", "7.5"}, {"Remote position", "1", "x"}}
			err := Verify(p)

			Convey("Then both rows are reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "outside [1, 5]")
				So(err.Error(), ShouldContainSubstring, "non-numeric score")
			})
		})

		Convey("When map keys are malformed or unnamed", func() {
			p := types.EmptyPayload()
			p.Map["us"] = 3
			p.Map["DEU"] = 1
			p.MapNames["us"] = "United States"
			err := Verify(p)

			Convey("Then each key problem is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, `map key "us" is not an alpha-3 code`)
				So(err.Error(), ShouldContainSubstring, `map key "DEU" has no display name`)
			})
		})

		Convey("When series arities disagree", func() {
			p := builtPayload(100, 0.3, 5)
			p.Charts.Section3.Sub = p.Charts.Section3.Sub[:0]
			p.Charts.Section6.Other = append(p.Charts.Section6.Other, 1)
			p.Ranking.Values = append(p.Ranking.Values, 1)
			err := Verify(p)

			Convey("Then every mismatch is reported", func() {
				So(err.Error(), ShouldContainSubstring, "section3 arity")
				So(err.Error(), ShouldContainSubstring, "section6 arity")
				So(err.Error(), ShouldContainSubstring, "ranking has")
			})
		})
	})
}
