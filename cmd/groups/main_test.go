package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forme.dev/groups/model"
)

func testdata(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

const listABRoot = "23dcfe35b1a99964678fe19382cf939fb9699ba9bea36dffaea2bb1289a510c8"

func TestRun_Usage(t *testing.T) {
	if code, _, errOut := runCLI(t); code != 2 || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("no args: code=%d stderr=%q", code, errOut)
	}
	if code, out, _ := runCLI(t, "help"); code != 0 || !strings.Contains(out, "groups hash") {
		t.Fatalf("help: code=%d stdout=%q", code, out)
	}
	if code, _, errOut := runCLI(t, "bogus"); code != 2 || !strings.Contains(errOut, "unknown command: bogus") {
		t.Fatalf("bogus: code=%d stderr=%q", code, errOut)
	}
}

func TestHash_List(t *testing.T) {
	code, out, errOut := runCLI(t, "hash", testdata("documents", "list.yaml"))
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	if strings.TrimSpace(out) != listABRoot {
		t.Fatalf("root=%q", out)
	}

	code, out, _ = runCLI(t, "hash", "--cid", testdata("documents", "list.yaml"))
	if code != 0 || !strings.HasPrefix(strings.TrimSpace(out), "bafkrei") {
		t.Fatalf("--cid: code=%d out=%q", code, out)
	}
}

func TestHash_JSONAndKind(t *testing.T) {
	code, out, errOut := runCLI(t, "hash", "--json", "--kind", "tuple", "--alg", "blake2b-256", testdata("documents", "list.yaml"))
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	var resp model.HashResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Container == nil || resp.Container.Kind != "tuple" || resp.Container.Algorithm != "blake2b-256" {
		t.Fatalf("unexpected response %s", out)
	}
}

func TestHash_Scalar(t *testing.T) {
	code, out, errOut := runCLI(t, "hash", testdata("documents", "scalar.yaml"))
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	if strings.TrimSpace(out) != "5f780febc7eefe7725c849da264e977ec600a667e79e375141d5358d07f01da2" {
		t.Fatalf("hash=%q", out)
	}
}

func TestHash_Errors(t *testing.T) {
	code, _, errOut := runCLI(t, "hash", testdata("documents", "nested.yaml"))
	if code != 1 || !strings.Contains(errOut, "NESTED_CONTAINER") {
		t.Fatalf("nested: code=%d stderr=%q", code, errOut)
	}
	code, _, errOut = runCLI(t, "hash", "--alg", "md5", testdata("documents", "list.yaml"))
	if code != 1 || !strings.Contains(errOut, "md5") {
		t.Fatalf("bad alg: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ := runCLI(t, "hash"); code != 2 {
		t.Fatalf("missing arg: code=%d", code)
	}
	if code, _, _ := runCLI(t, "hash", filepath.Join(t.TempDir(), "missing.yaml")); code != 1 {
		t.Fatalf("missing file: code=%d", code)
	}
}

func TestMember(t *testing.T) {
	doc := testdata("documents", "list.yaml")
	_, out, _ := runCLI(t, "hash", "--json", doc)
	var resp model.HashResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	itemHash := resp.Container.Items[1].Hash

	code, out, errOut := runCLI(t, "member", "--hash", itemHash, doc)
	if code != 0 || strings.TrimSpace(out) != "true" {
		t.Fatalf("member: code=%d out=%q stderr=%q", code, out, errOut)
	}

	code, out, _ = runCLI(t, "member", "--hash", listABRoot, doc)
	if code != 1 || strings.TrimSpace(out) != "false" {
		t.Fatalf("root is not a leaf: code=%d out=%q", code, out)
	}

	code, out, _ = runCLI(t, "member", "--json", "--hash", strings.ToUpper(itemHash), doc)
	if code != 0 {
		t.Fatalf("upper-case hex: code=%d", code)
	}
	var res model.MembershipResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if res.Index != 1 || len(res.Proof) == 0 || res.Root != listABRoot {
		t.Fatalf("unexpected result %s", out)
	}

	if code, _, _ := runCLI(t, "member", doc); code != 2 {
		t.Fatalf("missing --hash: code=%d", code)
	}
}

func TestVerifySchema(t *testing.T) {
	code, out, errOut := runCLI(t, "verify-schema", testdata("schemas", "user.yaml"))
	if code != 0 || strings.TrimSpace(out) != "OK" {
		t.Fatalf("valid schema: code=%d out=%q stderr=%q", code, out, errOut)
	}

	code, _, errOut = runCLI(t, "verify-schema", testdata("schemas", "invalid.yaml"))
	if code != 1 {
		t.Fatalf("invalid schema: code=%d", code)
	}
	for _, tok := range []string{"notarealtype", "bag", "timestamp"} {
		if !strings.Contains(errOut, tok) {
			t.Fatalf("stderr must name %q: %q", tok, errOut)
		}
	}

	code, out, _ = runCLI(t, "verify-schema", "--json", testdata("schemas", "invalid.yaml"))
	if code != 1 {
		t.Fatalf("json: code=%d", code)
	}
	var v model.Verification
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.Valid || v.Message == "" {
		t.Fatalf("unexpected verification %s", out)
	}
}

func TestRegistryFlag(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "s.yaml")
	if err := os.WriteFile(schemaPath, []byte("id: long\nbody: list[text]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if code, _, _ := runCLI(t, "verify-schema", schemaPath); code != 1 {
		t.Fatalf("built-in registry must reject custom aliases: code=%d", code)
	}
	code, out, errOut := runCLI(t, "verify-schema", "--registry", testdata("registry.yaml"), "--verbose", schemaPath)
	if code != 0 || strings.TrimSpace(out) != "OK" {
		t.Fatalf("custom registry: code=%d out=%q stderr=%q", code, out, errOut)
	}
	if !strings.Contains(errOut, "loaded registry") {
		t.Fatalf("--verbose must log registry loading: %q", errOut)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("aliases:\n  string: [int]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, _, errOut = runCLI(t, "kinds", "--registry", bad)
	if code != 1 || !strings.Contains(errOut, "registry:") {
		t.Fatalf("colliding registry: code=%d stderr=%q", code, errOut)
	}
}

func TestKinds(t *testing.T) {
	code, out, errOut := runCLI(t, "kinds")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
	for _, want := range []string{"KIND", "floating_point", "__SYSTEM_RESERVED_DICT__", "frozenset"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table must contain %q:\n%s", want, out)
		}
	}
}
