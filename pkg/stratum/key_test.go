package stratum

import "testing"

func TestKeyEqual(t *testing.T) {
	if !StringKey("a").Equal(StringKey("a")) {
		t.Fatal("equal string keys should compare equal")
	}
	if StringKey("a").Equal(StringKey("b")) {
		t.Fatal("different string keys should not compare equal")
	}
	if !IntKey(1).Equal(IntKey(1)) {
		t.Fatal("equal int keys should compare equal")
	}
	if IntKey(1).Equal(StringKey("1")) {
		t.Fatal("mixed-kind keys should never compare equal")
	}
}

func TestKeyLessLexicographicAndNumeric(t *testing.T) {
	if !StringKey("a").Less(StringKey("b")) {
		t.Fatal("string keys compare lexicographically")
	}
	if !IntKey(1).Less(IntKey(2)) {
		t.Fatal("int keys compare numerically")
	}
	if IntKey(2).Less(StringKey("a")) {
		t.Fatal("mixed-kind Less should report false, not panic or invert")
	}
}

func TestKeyPathResolve(t *testing.T) {
	inner := NewMappingMap()
	inner.Set(StringKey("y"), NewString("leaf"))
	outer := NewMappingMap()
	outer.Set(StringKey("x"), NewMapping(inner))
	root := NewMapping(outer)

	kp := KeyPath{StringKey("x"), StringKey("y")}
	v, ok := kp.Resolve(root)
	if !ok {
		t.Fatal("expected a resolved value")
	}
	s, err := v.AsString()
	if err != nil || s != "leaf" {
		t.Fatalf("resolved value = %v, %v, want \"leaf\"", s, err)
	}
}

func TestKeyPathResolveMissingYieldsAbsence(t *testing.T) {
	outer := NewMappingMap()
	root := NewMapping(outer)
	kp := KeyPath{StringKey("missing")}
	_, ok := kp.Resolve(root)
	if ok {
		t.Fatal("resolving a missing key should report absence")
	}
}

func TestKeyPathResolveThroughNonMappingYieldsAbsence(t *testing.T) {
	kp := KeyPath{StringKey("x")}
	_, ok := kp.Resolve(NewString("not a mapping"))
	if ok {
		t.Fatal("descending into a non-mapping value should report absence")
	}
}

func TestKeyPathResolveEmptyReturnsInput(t *testing.T) {
	v := NewInt(42)
	got, ok := KeyPath{}.Resolve(v)
	if !ok || !got.Equal(v) {
		t.Fatalf("an empty key path should resolve to the input value unchanged, got %v, %v", got, ok)
	}
}
