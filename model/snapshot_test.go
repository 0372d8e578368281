package model

import (
	"encoding/json"
	"testing"

	"forme.dev/groups/registry"
)

func TestSnapshot_ValueHash_JSONShape(t *testing.T) {
	resp, err := Hash(registry.Default(), HashRequest{Data: "x"})
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"value\": {\n" +
		"    \"kind\": \"string\",\n" +
		"    \"value\": \"x\",\n" +
		"    \"hash\": \"5f780febc7eefe7725c849da264e977ec600a667e79e375141d5358d07f01da2\",\n" +
		"    \"cid\": \"bafkreic7pah6xr7o7z3slscj3ite5f36yyakmz7hty3vcqovgwgqp4a5ui\"\n" +
		"  }\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_ContainerHash_JSONShape(t *testing.T) {
	resp, err := Hash(registry.Default(), HashRequest{Data: []any{"a", "b"}})
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	const want = "{\n" +
		"  \"container\": {\n" +
		"    \"kind\": \"list\",\n" +
		"    \"algorithm\": \"sha256\",\n" +
		"    \"root\": \"23dcfe35b1a99964678fe19382cf939fb9699ba9bea36dffaea2bb1289a510c8\",\n" +
		"    \"cid\": \"bafkreibd3t7dlmnjtfsgpd7bsobm7e47xfuzxkn6unw77lvcxmjitjiqza\",\n" +
		"    \"depth\": 3,\n" +
		"    \"items\": [\n" +
		"      {\n" +
		"        \"kind\": \"string\",\n" +
		"        \"value\": \"a\",\n" +
		"        \"hash\": \"19d5f57c8e8b3cd760f853bb8d7900d68e10ef02674383de65a9b4d65e419b26\",\n" +
		"        \"cid\": \"bafkreiaz2x2xzdulhtlwb6ctxogxsagwryio6athiob54znjwtlf4qm3ey\"\n" +
		"      },\n" +
		"      {\n" +
		"        \"kind\": \"string\",\n" +
		"        \"value\": \"b\",\n" +
		"        \"hash\": \"6fe4ff1a836fcb881bbe03ff848bb731a5584708153d9bc6dc1d6430579a6a12\",\n" +
		"        \"cid\": \"bafkreidp4t7rva3pzoebxpqd76cixnzruvmeocavhwn4nxa5mqyfpgtkci\"\n" +
		"      }\n" +
		"    ]\n" +
		"  }\n" +
		"}"

	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}

func TestSnapshot_Verification_JSONShape(t *testing.T) {
	v := Verification{Valid: false, Message: `type "nope" is not valid`, Leaves: []string{"nope", "str"}}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	const want = `{"valid":false,"message":"type \"nope\" is not valid","leaves":["nope","str"]}`
	if string(b) != want {
		t.Fatalf("snapshot mismatch:\n%s", string(b))
	}
}
