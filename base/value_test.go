package base

import (
	"math"
	"reflect"
	"testing"

	"forme.dev/groups/errs"
	"forme.dev/groups/hashing"
	"forme.dev/groups/registry"
	"forme.dev/groups/shape"
)

func TestValue_RoundTrip(t *testing.T) {
	reg := registry.Default()
	for _, raw := range []any{
		true, false,
		int64(0), int64(-7), int64(math.MaxInt64),
		0.0, 3.25, math.Inf(-1),
		"", "héllo",
		[]byte{}, []byte{0, 1, 2},
	} {
		v, err := NewValue(reg, raw)
		if err != nil {
			t.Fatalf("NewValue(%#v): %v", raw, err)
		}
		if !reflect.DeepEqual(v.Raw(), raw) {
			t.Fatalf("Raw()=%#v want %#v", v.Raw(), raw)
		}
		want, err := reg.KindFor(raw)
		if err != nil {
			t.Fatalf("KindFor(%#v): %v", raw, err)
		}
		if v.Kind() != want {
			t.Fatalf("kind=%s want %s", v.Kind(), want)
		}
	}
}

func TestValue_NormalizesNumbers(t *testing.T) {
	reg := registry.Default()
	if got := MustValue(reg, 5).Raw(); got != int64(5) {
		t.Fatalf("int normalized to %#v", got)
	}
	if got := MustValue(reg, float32(0.5)).Raw(); got != 0.5 {
		t.Fatalf("float32 normalized to %#v", got)
	}
	if !MustValue(reg, 5).Equal(MustValue(reg, uint16(5))) {
		t.Fatalf("integers of different Go types must be equal values")
	}
}

func TestValue_CopiesBytes(t *testing.T) {
	reg := registry.Default()
	src := []byte("abc")
	v := MustValue(reg, src)
	src[0] = 'X'
	out := v.Raw().([]byte)
	if string(out) != "abc" {
		t.Fatalf("value aliased its input: %q", out)
	}
	out[1] = 'Y'
	if string(v.Raw().([]byte)) != "abc" {
		t.Fatalf("value exposed its storage")
	}
}

func TestValue_RejectsContainersAndUnsupported(t *testing.T) {
	reg := registry.Default()
	c := MustContainer(reg, []any{int64(1)})
	for _, raw := range []any{c, *c, []any{1}, shape.Tuple{1}, map[string]any{}, nil, struct{}{}} {
		_, err := NewValue(reg, raw)
		if !errs.IsKind(err, errs.KindType) {
			t.Fatalf("NewValue(%T): expected Type error, got %v", raw, err)
		}
	}
	if _, err := NewValue(reg, Value{}); !errs.IsKind(err, errs.KindType) {
		t.Fatalf("zero Value must be rejected, got %v", err)
	}
}

func TestValue_HashIsDeterministicAndKindTagged(t *testing.T) {
	reg := registry.Default()
	a := MustValue(reg, "1").ContentHash()
	b := MustValue(reg, "1").ContentHash()
	if a != b {
		t.Fatalf("hash not deterministic")
	}
	seen := map[hashing.Hash]string{}
	for _, raw := range []any{"1", int64(1), 1.0, true, []byte("1"), []byte{1}} {
		h := MustValue(reg, raw).ContentHash()
		if prev, ok := seen[h]; ok {
			t.Fatalf("%#v and %s share a hash", raw, prev)
		}
		seen[h] = reflect.TypeOf(raw).String()
	}
	if MustValue(reg, "x").ContentHash() != hashing.Sum(append([]byte{byte(registry.String)}, 'x')) {
		t.Fatalf("hash must be the digest of the canonical encoding")
	}
}

func TestValue_HashWith(t *testing.T) {
	reg := registry.Default()
	hs, err := hashing.NewHasher(hashing.BLAKE2b256)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	v := MustValue(reg, "x")
	h := v.HashWith(hs)
	if h.Algorithm() != hashing.BLAKE2b256 {
		t.Fatalf("algorithm=%s", h.Algorithm())
	}
	if h == v.ContentHash() {
		t.Fatalf("algorithms must not collide")
	}
}

func TestValue_String(t *testing.T) {
	reg := registry.Default()
	cases := map[any]string{
		int64(3): "integer(3)",
		"a":      `string("a")`,
		true:     "boolean(true)",
		1.5:      "floating_point(1.5)",
	}
	for raw, want := range cases {
		if got := MustValue(reg, raw).String(); got != want {
			t.Fatalf("String()=%q want %q", got, want)
		}
	}
	if got := MustValue(reg, []byte{0xab}).String(); got != "bytes(0xab)" {
		t.Fatalf("String()=%q", got)
	}
}
