package registry

import (
	"os"
	"path/filepath"
	"testing"

	"forme.dev/groups/errs"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "registry.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestLoadConfig_ExtendsCatalog(t *testing.T) {
	p := writeConfig(t, `
aliases:
  integer: [i64, long]
  dictionary: [hash_map]
overlaps: [i64]
`)
	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	r, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	for alias, want := range map[string]Kind{"i64": Integer, "long": Integer, "hash_map": Map, "int": Integer} {
		got, err := r.Resolve(alias)
		if err != nil || got != want {
			t.Fatalf("Resolve(%q)=%s,%v want %s", alias, got, err, want)
		}
	}
}

func TestParseConfig_AcceptsJSON(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"aliases": {"string": ["text"]}}`))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	r, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if k, _ := r.Resolve("text"); k != String {
		t.Fatalf("Resolve(text)=%s", k)
	}
}

func TestParseConfig_UnknownKind(t *testing.T) {
	_, err := ParseConfig([]byte("aliases:\n  decimal: [dec]\n"))
	if !errs.IsKind(err, errs.KindConfig) || errs.RuleID(err) != "GRP-CFG-001" {
		t.Fatalf("expected GRP-CFG-001, got %v", err)
	}
}

func TestParseConfig_EmptyAlias(t *testing.T) {
	_, err := ParseConfig([]byte("aliases:\n  string: ['  ']\n"))
	if !errs.IsKind(err, errs.KindConfig) {
		t.Fatalf("expected Config error, got %v", err)
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig([]byte("aliases: [unterminated"))
	if !errs.IsKind(err, errs.KindConfig) {
		t.Fatalf("expected Config error, got %v", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromConfig_CollisionSurfaces(t *testing.T) {
	cfg := Config{Aliases: map[string][]string{"string": {"int"}}}
	_, err := FromConfig(cfg)
	if !errs.IsKind(err, errs.KindCollision) {
		t.Fatalf("expected Collision, got %v", err)
	}
}

func TestConfigOptions_Deterministic(t *testing.T) {
	cfg := Config{Aliases: map[string][]string{
		"tuple":   {"tup"},
		"boolean": {"flag"},
		"list":    {"seq"},
	}}
	for i := 0; i < 10; i++ {
		r, err := New(cfg.Options()...)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		for alias, want := range map[string]Kind{"tup": Tuple, "flag": Boolean, "seq": List} {
			if k, _ := r.Resolve(alias); k != want {
				t.Fatalf("Resolve(%q)=%s want %s", alias, k, want)
			}
		}
	}
}
