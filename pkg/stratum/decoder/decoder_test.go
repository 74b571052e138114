package decoder

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gobbles/stratum/pkg/stratum"
)

func TestYAMLDecoder(t *testing.T) {
	Convey("YAMLDecoder", t, func() {
		d := YAMLDecoder{}
		So(d.DefaultExtension(), ShouldEqual, "yml")

		Convey("Parent target requires a mapping", func() {
			schema, err := d.Decode([]byte("title: Album\nyear: 1998\n"), stratum.TargetParent)
			So(err, ShouldBeNil)
			So(schema.Kind(), ShouldEqual, stratum.SchemaOne)

			block, err := schema.One()
			So(err, ShouldBeNil)
			v, ok := block.Get("title")
			So(ok, ShouldBeTrue)
			s, _ := v.AsString()
			So(s, ShouldEqual, "Album")
		})

		Convey("Parent target rejects a sequence", func() {
			_, err := d.Decode([]byte("- one\n- two\n"), stratum.TargetParent)
			So(err, ShouldNotBeNil)
			_, ok := err.(*stratum.SchemaMismatchError)
			So(ok, ShouldBeTrue)
		})

		Convey("Siblings target accepts a sequence of mappings", func() {
			text := []byte(`
- name: track1.flac
  title: Track One
- name: track2.flac
  title: Track Two
`)
			schema, err := d.Decode(text, stratum.TargetSiblings)
			So(err, ShouldBeNil)
			So(schema.Kind(), ShouldEqual, stratum.SchemaSeq)

			blocks, err := schema.Seq()
			So(err, ShouldBeNil)
			So(len(blocks), ShouldEqual, 2)
		})

		Convey("Siblings target accepts a mapping of mappings", func() {
			text := []byte(`
track1.flac:
  title: Track One
track2.flac:
  title: Track Two
`)
			schema, err := d.Decode(text, stratum.TargetSiblings)
			So(err, ShouldBeNil)
			So(schema.Kind(), ShouldEqual, stratum.SchemaMap)

			bm, err := schema.Map()
			So(err, ShouldBeNil)
			So(bm.Len(), ShouldEqual, 2)

			pair := bm.Oldest()
			So(pair.Key, ShouldEqual, "track1.flac")
		})

		Convey("decimal and integer scalars decode to distinct kinds", func() {
			schema, err := d.Decode([]byte("rating: 4.5\ncount: 7\n"), stratum.TargetParent)
			So(err, ShouldBeNil)
			block, _ := schema.One()

			rating, _ := block.Get("rating")
			So(rating.Kind(), ShouldEqual, stratum.KindDecimal)

			count, _ := block.Get("count")
			So(count.Kind(), ShouldEqual, stratum.KindInt)
		})

		Convey("key order is preserved", func() {
			schema, err := d.Decode([]byte("zebra: 1\napple: 2\nmango: 3\n"), stratum.TargetParent)
			So(err, ShouldBeNil)
			block, _ := schema.One()

			var keys []string
			for pair := block.Oldest(); pair != nil; pair = pair.Next() {
				keys = append(keys, pair.Key)
			}
			So(keys, ShouldResemble, []string{"zebra", "apple", "mango"})
		})
	})
}

func TestJSONDecoder(t *testing.T) {
	Convey("JSONDecoder", t, func() {
		d := JSONDecoder{}
		So(d.DefaultExtension(), ShouldEqual, "json")

		Convey("Parent target requires an object", func() {
			schema, err := d.Decode([]byte(`{"title": "Album", "year": 1998}`), stratum.TargetParent)
			So(err, ShouldBeNil)
			So(schema.Kind(), ShouldEqual, stratum.SchemaOne)
		})

		Convey("Siblings target accepts an array of objects", func() {
			text := []byte(`[{"title": "Track One"}, {"title": "Track Two"}]`)
			schema, err := d.Decode(text, stratum.TargetSiblings)
			So(err, ShouldBeNil)
			So(schema.Kind(), ShouldEqual, stratum.SchemaSeq)
		})

		Convey("object key order is preserved", func() {
			schema, err := d.Decode([]byte(`{"zebra": 1, "apple": 2, "mango": 3}`), stratum.TargetParent)
			So(err, ShouldBeNil)
			block, _ := schema.One()

			var keys []string
			for pair := block.Oldest(); pair != nil; pair = pair.Next() {
				keys = append(keys, pair.Key)
			}
			So(keys, ShouldResemble, []string{"zebra", "apple", "mango"})
		})

		Convey("malformed json is reported as a DecodeError", func() {
			_, err := d.Decode([]byte(`{not json`), stratum.TargetParent)
			So(err, ShouldNotBeNil)
			_, ok := err.(*stratum.DecodeError)
			So(ok, ShouldBeTrue)
		})
	})
}
