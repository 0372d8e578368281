package schema

import (
	"testing"

	"forme.dev/groups/errs"
	"forme.dev/groups/registry"
)

func TestDecode_YAMLPreservesOrderAndNesting(t *testing.T) {
	s, err := Decode([]byte(`
zeta: str
alpha: list[int]
address:
  street: str
  zip: int
tags: dict[str, list[str]]
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fields := s.Fields()
	want := []string{"zeta", "alpha", "address", "tags"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields", len(fields))
	}
	for i, f := range fields {
		if f.Name != want[i] {
			t.Fatalf("field %d: got %q want %q", i, f.Name, want[i])
		}
	}
	sub, ok := fields[2].Type.(*Schema)
	if !ok || sub.Len() != 2 {
		t.Fatalf("address must decode as a nested schema, got %#v", fields[2].Type)
	}
	if ok, msg := s.Verify(registry.Default()); !ok {
		t.Fatalf("Verify: %s", msg)
	}
}

func TestDecode_JSON(t *testing.T) {
	s, err := Decode([]byte(`{"a": "string", "b": "number", "c": {"d": "notarealtype"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ok, msg := s.Verify(registry.Default())
	if ok {
		t.Fatalf("nested bad token must fail verification")
	}
	if msg == "" {
		t.Fatalf("expected a diagnostic")
	}
}

func TestDecode_Rejects(t *testing.T) {
	for _, doc := range []string{
		"- str\n- int\n",
		"a: [str, int]\n",
		"a: {b: [1]}\n",
		"a: [unterminated\n",
	} {
		if _, err := Decode([]byte(doc)); !errs.IsKind(err, errs.KindParse) {
			t.Fatalf("Decode(%q): expected Parse error, got %v", doc, err)
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	s, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty schema")
	}
	if ok, _ := s.Verify(registry.Default()); !ok {
		t.Fatalf("empty schema is valid")
	}
}
