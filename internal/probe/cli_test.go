package probe

import (
	"testing"
	"time"

	"github.com/alecthomas/kong"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCLI(t *testing.T) {
	Convey("Given the probe command tree", t, func() {
		cli := &CLI{}
		parser, err := kong.New(cli, kong.Name("probe"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
		So(err, ShouldBeNil)

		Convey("When parsing a seed command", func() {
			kctx, err := parser.Parse([]string{"seed", "--count", "25", "--fraud-ratio", "0.4", "--seed", "9"})

			Convey("Then the flags are bound", func() {
				So(err, ShouldBeNil)
				So(kctx.Command(), ShouldEqual, "seed")
				So(cli.Seed.Count, ShouldEqual, 25)
				So(cli.Seed.FraudRatio, ShouldEqual, 0.4)
				So(cli.Seed.Seed, ShouldEqual, uint64(9))
				So(cli.Seed.BatchSize, ShouldEqual, 1000)
			})
		})

		Convey("When parsing a verify command", func() {
			kctx, err := parser.Parse([]string{"verify", "--url", "http://dash:8001", "--timeout", "2s"})

			Convey("Then the flags are bound", func() {
				So(err, ShouldBeNil)
				So(kctx.Command(), ShouldEqual, "verify")
				So(cli.Verify.URL, ShouldEqual, "http://dash:8001")
				So(cli.Verify.Timeout, ShouldEqual, 2*time.Second)
				So(cli.LogFormat, ShouldEqual, "console")
			})
		})

		Convey("When the log format is unknown", func() {
			_, err := parser.Parse([]string{"--log-format", "xml", "verify"})

			Convey("Then parsing fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
