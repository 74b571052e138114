package script

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gobbles/stratum/pkg/stratum"
)

// tokenDecoder treats each sidecar's whole file content as an opaque
// token and looks up a canned Schema for it, sidestepping real YAML/JSON
// parsing — the same trick processor_test.go uses in package stratum.
type tokenDecoder struct {
	byToken map[string]stratum.Schema
}

func (d tokenDecoder) Decode(text []byte, target stratum.Target) (stratum.Schema, error) {
	s, ok := d.byToken[string(text)]
	if !ok {
		return stratum.Schema{}, &stratum.DecodeError{Err: stratum.ErrNotIterable}
	}
	return s, nil
}

func (d tokenDecoder) DefaultExtension() string { return "yml" }

func oneBlock(field string, v stratum.Value) *stratum.Block {
	b := stratum.NewBlock()
	b.Set(field, v)
	return b
}

// buildAncestryFixture lays out root/child, each carrying a self.yml
// naming the level, so Parents can walk a predictable ancestor chain.
func buildAncestryFixture(t *testing.T, dec *tokenDecoder) (root, child string) {
	t.Helper()
	base := t.TempDir()
	root = filepath.Join(base, "root")
	child = filepath.Join(root, "child")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	rootToken := "root-self"
	childToken := "child-self"
	if err := os.WriteFile(filepath.Join(root, "self.yml"), []byte(rootToken), 0o644); err != nil {
		t.Fatalf("write root self: %v", err)
	}
	if err := os.WriteFile(filepath.Join(child, "self.yml"), []byte(childToken), 0o644); err != nil {
		t.Fatalf("write child self: %v", err)
	}

	dec.byToken[rootToken] = stratum.OneSchema(oneBlock("label", stratum.NewString("root")))
	dec.byToken[childToken] = stratum.OneSchema(oneBlock("label", stratum.NewString("child")))
	return root, child
}

func TestOpParentsWalksAncestorsRootward(t *testing.T) {
	Convey("Given a root/child directory pair each with a self sidecar naming a label", t, func() {
		dec := &tokenDecoder{byToken: map[string]stratum.Schema{}}
		_, child := buildAncestryFixture(t, dec)

		kp, err := parseTestKeyPath("label")
		So(err, ShouldBeNil)

		ctx := &Context{
			ItemPath:  child,
			Selection: stratum.DefaultSelection(),
			Sorter:    stratum.DefaultSorter(),
			Decoder:   dec,
			Naming:    stratum.SidecarNaming{},
			KeyPath:   kp,
		}

		Convey("parents |> collect yields child's own label, then root's, leaf to root", func() {
			program := Program{Op("parents"), Op("collect")}
			result, err := RunToValue(program, nil, ctx)
			So(err, ShouldBeNil)
			seq, err := result.AsSequence()
			So(err, ShouldBeNil)
			So(len(seq), ShouldEqual, 2)
			first, _ := seq[0].AsString()
			second, _ := seq[1].AsString()
			So(first, ShouldEqual, "child")
			So(second, ShouldEqual, "root")
		})
	})
}

func TestOpChildrenWalksDescendantsPreOrder(t *testing.T) {
	Convey("Given a root with two labeled child directories", t, func() {
		dec := &tokenDecoder{byToken: map[string]stratum.Schema{}}
		base := t.TempDir()
		for _, name := range []string{"alpha", "beta"} {
			dir := filepath.Join(base, name)
			So(os.MkdirAll(dir, 0o755), ShouldBeNil)
			token := name + "-self"
			So(os.WriteFile(filepath.Join(dir, "self.yml"), []byte(token), 0o644), ShouldBeNil)
			dec.byToken[token] = stratum.OneSchema(oneBlock("label", stratum.NewString(name)))
		}

		kp, err := parseTestKeyPath("label")
		So(err, ShouldBeNil)

		ctx := &Context{
			ItemPath:  base,
			Selection: stratum.DefaultSelection(),
			Sorter:    stratum.DefaultSorter(),
			Decoder:   dec,
			Naming:    stratum.SidecarNaming{},
			KeyPath:   kp,
		}

		Convey("children |> collect yields both labels in sorted sibling order", func() {
			program := Program{Op("children"), Op("collect")}
			result, err := RunToValue(program, nil, ctx)
			So(err, ShouldBeNil)
			seq, err := result.AsSequence()
			So(err, ShouldBeNil)
			So(len(seq), ShouldEqual, 2)
			first, _ := seq[0].AsString()
			second, _ := seq[1].AsString()
			So(first, ShouldEqual, "alpha")
			So(second, ShouldEqual, "beta")
		})

		Convey("children |> count forces the stream", func() {
			program := Program{Op("children"), Op("count")}
			result, err := RunToValue(program, nil, ctx)
			So(err, ShouldBeNil)
			n, err := result.AsInt()
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})
	})
}

// parseTestKeyPath builds a single-segment string KeyPath without
// depending on the keypath parser package (kept out of script's import
// graph).
func parseTestKeyPath(field string) (stratum.KeyPath, error) {
	return stratum.KeyPath{stratum.StringKey(field)}, nil
}
