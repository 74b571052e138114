package keypath

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gobbles/stratum/pkg/stratum"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("dotted string segments", func() {
			kp, err := Parse("artist.name")
			So(err, ShouldBeNil)
			So(len(kp), ShouldEqual, 2)
			So(kp[0].Kind(), ShouldEqual, stratum.KeyKindString)
			So(kp[0].String(), ShouldEqual, "artist")
			So(kp[1].String(), ShouldEqual, "name")
		})

		Convey("bracketed integer segment", func() {
			kp, err := Parse("tracks[2].title")
			So(err, ShouldBeNil)
			So(len(kp), ShouldEqual, 3)
			So(kp[1].Kind(), ShouldEqual, stratum.KeyKindInt)
			So(kp[1].String(), ShouldEqual, "2")
		})

		Convey("bracketed non-numeric segment stays a string key", func() {
			kp, err := Parse("tags[rock]")
			So(err, ShouldBeNil)
			So(len(kp), ShouldEqual, 2)
			So(kp[1].Kind(), ShouldEqual, stratum.KeyKindString)
			So(kp[1].String(), ShouldEqual, "rock")
		})

		Convey("unterminated bracket is a syntax error", func() {
			_, err := Parse("tags[rock")
			So(err, ShouldNotBeNil)
		})

		Convey("round trips through String", func() {
			kp, _ := Parse("a.b[3].c")
			So(String(kp), ShouldEqual, "a.b[3].c")
		})
	})
}
