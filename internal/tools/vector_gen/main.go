package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"forme.dev/groups/model"
	"forme.dev/groups/registry"
)

type vector struct {
	Name string `yaml:"name"`
	Data string `yaml:"data"`
	Kind string `yaml:"kind,omitempty"`
	Root string `yaml:"root"`
	CID  string `yaml:"cid"`
}

var cases = []vector{
	{Name: "value_string", Data: "x"},
	{Name: "value_integer", Data: "-42"},
	{Name: "value_float", Data: "2.5"},
	{Name: "value_bool", Data: "true"},
	{Name: "list_ab", Data: "[a, b]"},
	{Name: "list_empty", Data: "[]"},
	{Name: "tuple_mixed", Data: "[1, two, 3.5, false]", Kind: "tuple"},
	{Name: "set_ints", Data: "[3, 1, 2, 3]", Kind: "set"},
	{Name: "frozenset_strs", Data: "[b, a]", Kind: "frozenset"},
	{Name: "dict_single", Data: "{k: true}"},
	{Name: "dict_ordered", Data: "{zeta: 1, alpha: 2}"},
}

func main() {
	reg := registry.Default()
	out := make([]vector, 0, len(cases))
	for _, v := range cases {
		doc, err := model.DecodeDocument([]byte(v.Data))
		if err != nil {
			panic(fmt.Sprintf("%s: %v", v.Name, err))
		}
		resp, err := model.Hash(reg, model.HashRequest{Data: doc, Kind: v.Kind})
		if err != nil {
			panic(fmt.Sprintf("%s: %v", v.Name, err))
		}
		if resp.Container != nil {
			v.Root, v.CID = resp.Container.Root, resp.Container.CID
		} else {
			v.Root, v.CID = resp.Value.Hash, resp.Value.CID
		}
		out = append(out, v)
	}

	fmt.Println("# Content hash vectors (sha256). Containers hash their item hashes")
	fmt.Println("# followed by the hash of the kind's reserved marker.")
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
	if err := enc.Close(); err != nil {
		panic(err)
	}
}
